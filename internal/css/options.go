package css

import "errors"

// ErrGritMetavariables is returned by Validate: GritQL metavariables are
// recognised as an option but the grammar does not parse them.
var ErrGritMetavariables = errors.New("css: grit metavariables are not supported")

// Options toggles dialect features. The zero value parses plain CSS.
type Options struct {
	// CSSModules enables :global, :local and @value.
	CSSModules bool `toml:"css_modules"`
	// AllowWrongLineComments lexes `//` comments as trivia instead of a slash.
	AllowWrongLineComments bool `toml:"allow_wrong_line_comments"`
	GritMetavariables      bool `toml:"grit_metavariables"`
}

func (o Options) Validate() error {
	if o.GritMetavariables {
		return ErrGritMetavariables
	}
	return nil
}
