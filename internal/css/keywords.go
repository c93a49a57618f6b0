package css

import "strings"

// pseudoKind is the argument shape of a functional pseudo-class or
// pseudo-element.
type pseudoKind uint8

const (
	pseudoUnknown pseudoKind = iota
	pseudoIdentifier
	pseudoSelector
	pseudoSelectorList
	pseudoCompoundSelector
	pseudoCompoundSelectorList
	pseudoRelativeSelectorList
	pseudoValueList
	pseudoNth
	pseudoIdentifierList
)

var pseudoClassFunctions = map[string]pseudoKind{
	"dir":              pseudoIdentifier,
	"global":           pseudoSelector,
	"local":            pseudoSelector,
	"not":              pseudoSelectorList,
	"is":               pseudoSelectorList,
	"where":            pseudoSelectorList,
	"matches":          pseudoSelectorList,
	"host":             pseudoCompoundSelector,
	"host-context":     pseudoCompoundSelector,
	"any":              pseudoCompoundSelectorList,
	"past":             pseudoCompoundSelectorList,
	"current":          pseudoCompoundSelectorList,
	"future":           pseudoCompoundSelectorList,
	"has":              pseudoRelativeSelectorList,
	"lang":             pseudoValueList,
	"state":            pseudoValueList,
	"nth-child":        pseudoNth,
	"nth-last-child":   pseudoNth,
	"nth-of-type":      pseudoNth,
	"nth-last-of-type": pseudoNth,
	"nth-col":          pseudoNth,
	"nth-last-col":     pseudoNth,
}

var pseudoClassIdentifiers = set(
	"active", "any-link", "autofill", "blank", "buffering", "checked", "closed",
	"current", "default", "defined", "disabled", "empty", "enabled", "first",
	"first-child", "first-of-type", "focus", "focus-visible", "focus-within",
	"fullscreen", "future", "global", "host", "hover", "in-range",
	"indeterminate", "invalid", "last-child", "last-of-type", "left", "link",
	"local", "local-link", "modal", "muted", "only-child", "only-of-type",
	"open", "optional", "out-of-range", "past", "paused", "picture-in-picture",
	"placeholder-shown", "playing", "popover-open", "read-only", "read-write",
	"required", "right", "root", "scope", "seeking", "stalled", "target",
	"target-current", "target-within", "user-invalid", "user-valid", "valid",
	"visited", "volume-locked",
	// scrollbar parts
	"horizontal", "vertical", "decrement", "increment", "start", "end",
	"double-button", "single-button", "no-button", "corner-present",
	"window-inactive",
	// legacy single colon pseudo-elements
	"after", "before", "first-letter", "first-line",
)

var pseudoElementFunctions = map[string]pseudoKind{
	"cue":                        pseudoSelector,
	"cue-region":                 pseudoSelector,
	"slotted":                    pseudoSelector,
	"part":                       pseudoIdentifierList,
	"highlight":                  pseudoIdentifierList,
	"view-transition-group":      pseudoIdentifierList,
	"view-transition-image-pair": pseudoIdentifierList,
	"view-transition-old":        pseudoIdentifierList,
	"view-transition-new":        pseudoIdentifierList,
	"picker":                     pseudoIdentifierList,
}

var pseudoElementIdentifiers = set(
	"after", "backdrop", "before", "checkmark", "column", "cue", "cue-region",
	"details-content", "file-selector-button", "first-letter", "first-line",
	"grammar-error", "marker", "picker-icon", "placeholder", "scroll-marker",
	"scroll-marker-group", "selection", "spelling-error", "target-text",
	"view-transition",
)

func set(names ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(names))
	for _, n := range names {
		out[n] = struct{}{}
	}
	return out
}

// isVendorPrefixed matches -webkit-foo, -moz-foo and friends, which are
// never reported as unknown.
func isVendorPrefixed(name string) bool {
	if !strings.HasPrefix(name, "-") || strings.HasPrefix(name, "--") {
		return false
	}
	rest := name[1:]
	i := strings.IndexByte(rest, '-')
	return i > 0 && i < len(rest)-1
}

// unprefixed drops a vendor prefix so -moz-any and -webkit-any resolve to any.
func unprefixed(name string) string {
	if !isVendorPrefixed(name) {
		return name
	}
	return name[strings.IndexByte(name[1:], '-')+2:]
}

func isKeyframesName(name string) bool {
	return unprefixed(name) == "keyframes"
}
