package css

import "github.com/biomejs/biome-sub019/internal/syntax"

// Token kinds. Identifiers are lexed as Ident whatever their spelling;
// keywords are recognised by the grammar, case-insensitively.
const (
	Ident syntax.Kind = syntax.FirstGrammarKind + iota
	StringLiteral
	NumberLiteral
	// DimensionValue is a number glued to a unit; the grammar remaps it to
	// NumberLiteral once the unit is attached.
	DimensionValue
	// PercentageValue is a number followed by `%`, remapped like DimensionValue.
	PercentageValue
	ColorLiteral
	URLRawLiteral
	// SpaceLiteral is a descendant combinator, only lexed in SelectorContext.
	SpaceLiteral
	CDO // <!--
	CDC // -->

	Semicolon  // ;
	Comma      // ,
	Colon      // :
	ColonColon // ::
	Dot        // .
	Hash       // #
	At         // @
	LParen     // (
	RParen     // )
	LBrace     // {
	RBrace     // }
	LBracket   // [
	RBracket   // ]
	Star       // *
	StarEq     // *=
	Pipe       // |
	PipePipe   // ||
	PipeEq     // |=
	Gt         // >
	GtEq       // >=
	Lt         // <
	LtEq       // <=
	Tilde      // ~
	TildeEq    // ~=
	Caret      // ^
	CaretEq    // ^=
	DollarEq   // $=
	Eq         // =
	Bang       // !
	Percent    // %
	Amp        // &
	Plus       // +
	Minus      // -
	Slash      // /
)

// Node kinds.
const (
	Root syntax.Kind = syntax.MaxTokenKind + iota
	RootItemList
	RuleList
	QualifiedRule
	NestedQualifiedRule
	AtRule
	AtRulePrelude
	ValueAtRule
	KeyframesAtRule
	KeyframesBlock
	KeyframesItemList
	KeyframesItem
	KeyframesSelectorList
	KeyframesSelector
	HTMLCommentDelimiter

	SelectorList
	RelativeSelectorList
	RelativeSelector
	CompoundSelectorList
	ComplexSelector
	CompoundSelector
	NestedSelectorList
	NestedSelector
	SubSelectorList
	TypeSelector
	UniversalSelector
	Namespace
	NamedNamespacePrefix
	UniversalNamespacePrefix
	ClassSelector
	IDSelector
	AttributeSelector
	AttributeName
	AttributeMatcher
	AttributeMatcherValue
	PseudoClassSelector
	PseudoClassIdentifier
	PseudoClassFunctionIdentifier
	PseudoClassFunctionSelector
	PseudoClassFunctionSelectorList
	PseudoClassFunctionCompoundSelector
	PseudoClassFunctionCompoundSelectorList
	PseudoClassFunctionRelativeSelectorList
	PseudoClassFunctionValueList
	PseudoValueList
	PseudoClassFunctionNth
	PseudoClassNthSelector
	PseudoClassNth
	PseudoClassNthNumber
	PseudoClassNthIdentifier
	NthMultiplier
	NthOffset
	PseudoClassOfNthSelector
	PseudoElementSelector
	PseudoElementIdentifier
	PseudoElementFunctionSelector
	PseudoElementFunctionIdentifier

	DeclarationOrRuleBlock
	DeclarationOrRuleList
	DeclarationWithSemicolon
	Declaration
	EmptyDeclaration
	GenericProperty
	DeclarationImportant
	ComponentValueList
	GenericDelimiter
	Identifier
	CustomIdentifier
	DashedIdentifier
	String
	Number
	RegularDimension
	Percentage
	Color
	Function
	ParameterList
	Parameter
	URLFunction
	URLValueRaw
	SimpleBlock

	Bogus
	BogusRule
	BogusAtRule
	BogusSelector
	BogusSubSelector
	BogusPseudoClass
	BogusPseudoElement
	BogusBlock
	BogusDeclarationItem
	BogusPropertyValue
	BogusKeyframesItem
	BogusParameter
)

func tok(name, text string) syntax.KindInfo {
	return syntax.KindInfo{Name: name, Text: text, Flags: syntax.FlagToken}
}

func node(name string) syntax.KindInfo {
	return syntax.KindInfo{Name: name, Flags: syntax.FlagNode}
}

func list(name string) syntax.KindInfo {
	return syntax.KindInfo{Name: name, Flags: syntax.FlagNode | syntax.FlagList}
}

func bogus(name string) syntax.KindInfo {
	return syntax.KindInfo{Name: name, Flags: syntax.FlagNode | syntax.FlagBogus}
}

// orBogus is a node that turns into b when it is rejected.
func orBogus(name string, b syntax.Kind) syntax.KindInfo {
	return syntax.KindInfo{Name: name, Flags: syntax.FlagNode, Bogus: b}
}

// Lang is the CSS kind table.
var Lang = syntax.NewLanguage("css", map[syntax.Kind]syntax.KindInfo{
	Ident:           tok("IDENT", ""),
	StringLiteral:   tok("CSS_STRING_LITERAL", ""),
	NumberLiteral:   tok("CSS_NUMBER_LITERAL", ""),
	DimensionValue:  tok("CSS_DIMENSION_VALUE", ""),
	PercentageValue: tok("CSS_PERCENTAGE_VALUE", ""),
	ColorLiteral:    tok("CSS_COLOR_LITERAL", ""),
	URLRawLiteral:   tok("CSS_URL_VALUE_RAW_LITERAL", ""),
	SpaceLiteral:    tok("CSS_SPACE_LITERAL", " "),
	CDO:             tok("CDO", "<!--"),
	CDC:             tok("CDC", "-->"),
	Semicolon:       tok("SEMICOLON", ";"),
	Comma:           tok("COMMA", ","),
	Colon:           tok("COLON", ":"),
	ColonColon:      tok("COLON2", "::"),
	Dot:             tok("DOT", "."),
	Hash:            tok("HASH", "#"),
	At:              tok("AT", "@"),
	LParen:          tok("L_PAREN", "("),
	RParen:          tok("R_PAREN", ")"),
	LBrace:          tok("L_CURLY", "{"),
	RBrace:          tok("R_CURLY", "}"),
	LBracket:        tok("L_BRACK", "["),
	RBracket:        tok("R_BRACK", "]"),
	Star:            tok("STAR", "*"),
	StarEq:          tok("STAR_EQ", "*="),
	Pipe:            tok("PIPE", "|"),
	PipePipe:        tok("PIPE2", "||"),
	PipeEq:          tok("PIPE_EQ", "|="),
	Gt:              tok("R_ANGLE", ">"),
	GtEq:            tok("GTEQ", ">="),
	Lt:              tok("L_ANGLE", "<"),
	LtEq:            tok("LTEQ", "<="),
	Tilde:           tok("TILDE", "~"),
	TildeEq:         tok("TILDE_EQ", "~="),
	Caret:           tok("CARET", "^"),
	CaretEq:         tok("CARET_EQ", "^="),
	DollarEq:        tok("DOLLAR_EQ", "$="),
	Eq:              tok("EQ", "="),
	Bang:            tok("BANG", "!"),
	Percent:         tok("PERCENT", "%"),
	Amp:             tok("AMP", "&"),
	Plus:            tok("PLUS", "+"),
	Minus:           tok("MINUS", "-"),
	Slash:           tok("SLASH", "/"),

	Root:                  {Name: "CSS_ROOT", Flags: syntax.FlagNode | syntax.FlagRoot},
	RootItemList:          list("CSS_ROOT_ITEM_LIST"),
	RuleList:              list("CSS_RULE_LIST"),
	QualifiedRule:         orBogus("CSS_QUALIFIED_RULE", BogusRule),
	NestedQualifiedRule:   orBogus("CSS_NESTED_QUALIFIED_RULE", BogusRule),
	AtRule:                orBogus("CSS_AT_RULE", BogusAtRule),
	AtRulePrelude:         list("CSS_AT_RULE_PRELUDE"),
	ValueAtRule:           orBogus("CSS_VALUE_AT_RULE", BogusAtRule),
	KeyframesAtRule:       orBogus("CSS_KEYFRAMES_AT_RULE", BogusAtRule),
	KeyframesBlock:        orBogus("CSS_KEYFRAMES_BLOCK", BogusBlock),
	KeyframesItemList:     list("CSS_KEYFRAMES_ITEM_LIST"),
	KeyframesItem:         orBogus("CSS_KEYFRAMES_ITEM", BogusKeyframesItem),
	KeyframesSelectorList: list("CSS_KEYFRAMES_SELECTOR_LIST"),
	KeyframesSelector:     node("CSS_KEYFRAMES_SELECTOR"),
	HTMLCommentDelimiter:  node("CSS_HTML_COMMENT_DELIMITER"),

	SelectorList:                            list("CSS_SELECTOR_LIST"),
	RelativeSelectorList:                    list("CSS_RELATIVE_SELECTOR_LIST"),
	RelativeSelector:                        orBogus("CSS_RELATIVE_SELECTOR", BogusSelector),
	CompoundSelectorList:                    list("CSS_COMPOUND_SELECTOR_LIST"),
	ComplexSelector:                         orBogus("CSS_COMPLEX_SELECTOR", BogusSelector),
	CompoundSelector:                        orBogus("CSS_COMPOUND_SELECTOR", BogusSelector),
	NestedSelectorList:                      list("CSS_NESTED_SELECTOR_LIST"),
	NestedSelector:                          node("CSS_NESTED_SELECTOR"),
	SubSelectorList:                         list("CSS_SUB_SELECTOR_LIST"),
	TypeSelector:                            orBogus("CSS_TYPE_SELECTOR", BogusSelector),
	UniversalSelector:                       orBogus("CSS_UNIVERSAL_SELECTOR", BogusSelector),
	Namespace:                               node("CSS_NAMESPACE"),
	NamedNamespacePrefix:                    node("CSS_NAMED_NAMESPACE_PREFIX"),
	UniversalNamespacePrefix:                node("CSS_UNIVERSAL_NAMESPACE_PREFIX"),
	ClassSelector:                           orBogus("CSS_CLASS_SELECTOR", BogusSubSelector),
	IDSelector:                              orBogus("CSS_ID_SELECTOR", BogusSubSelector),
	AttributeSelector:                       orBogus("CSS_ATTRIBUTE_SELECTOR", BogusSubSelector),
	AttributeName:                           node("CSS_ATTRIBUTE_NAME"),
	AttributeMatcher:                        node("CSS_ATTRIBUTE_MATCHER"),
	AttributeMatcherValue:                   node("CSS_ATTRIBUTE_MATCHER_VALUE"),
	PseudoClassSelector:                     orBogus("CSS_PSEUDO_CLASS_SELECTOR", BogusSubSelector),
	PseudoClassIdentifier:                   orBogus("CSS_PSEUDO_CLASS_IDENTIFIER", BogusPseudoClass),
	PseudoClassFunctionIdentifier:           orBogus("CSS_PSEUDO_CLASS_FUNCTION_IDENTIFIER", BogusPseudoClass),
	PseudoClassFunctionSelector:             orBogus("CSS_PSEUDO_CLASS_FUNCTION_SELECTOR", BogusPseudoClass),
	PseudoClassFunctionSelectorList:         orBogus("CSS_PSEUDO_CLASS_FUNCTION_SELECTOR_LIST", BogusPseudoClass),
	PseudoClassFunctionCompoundSelector:     orBogus("CSS_PSEUDO_CLASS_FUNCTION_COMPOUND_SELECTOR", BogusPseudoClass),
	PseudoClassFunctionCompoundSelectorList: orBogus("CSS_PSEUDO_CLASS_FUNCTION_COMPOUND_SELECTOR_LIST", BogusPseudoClass),
	PseudoClassFunctionRelativeSelectorList: orBogus("CSS_PSEUDO_CLASS_FUNCTION_RELATIVE_SELECTOR_LIST", BogusPseudoClass),
	PseudoClassFunctionValueList:            orBogus("CSS_PSEUDO_CLASS_FUNCTION_VALUE_LIST", BogusPseudoClass),
	PseudoValueList:                         list("CSS_PSEUDO_VALUE_LIST"),
	PseudoClassFunctionNth:                  orBogus("CSS_PSEUDO_CLASS_FUNCTION_NTH", BogusPseudoClass),
	PseudoClassNthSelector:                  node("CSS_PSEUDO_CLASS_NTH_SELECTOR"),
	PseudoClassNth:                          node("CSS_PSEUDO_CLASS_NTH"),
	PseudoClassNthNumber:                    node("CSS_PSEUDO_CLASS_NTH_NUMBER"),
	PseudoClassNthIdentifier:                node("CSS_PSEUDO_CLASS_NTH_IDENTIFIER"),
	NthMultiplier:                           node("CSS_NTH_MULTIPLIER"),
	NthOffset:                               node("CSS_NTH_OFFSET"),
	PseudoClassOfNthSelector:                node("CSS_PSEUDO_CLASS_OF_NTH_SELECTOR"),
	PseudoElementSelector:                   orBogus("CSS_PSEUDO_ELEMENT_SELECTOR", BogusSubSelector),
	PseudoElementIdentifier:                 orBogus("CSS_PSEUDO_ELEMENT_IDENTIFIER", BogusPseudoElement),
	PseudoElementFunctionSelector:           orBogus("CSS_PSEUDO_ELEMENT_FUNCTION_SELECTOR", BogusPseudoElement),
	PseudoElementFunctionIdentifier:         orBogus("CSS_PSEUDO_ELEMENT_FUNCTION_IDENTIFIER", BogusPseudoElement),

	DeclarationOrRuleBlock:   orBogus("CSS_DECLARATION_OR_RULE_BLOCK", BogusBlock),
	DeclarationOrRuleList:    list("CSS_DECLARATION_OR_RULE_LIST"),
	DeclarationWithSemicolon: orBogus("CSS_DECLARATION_WITH_SEMICOLON", BogusDeclarationItem),
	Declaration:              orBogus("CSS_DECLARATION", BogusDeclarationItem),
	EmptyDeclaration:         node("CSS_EMPTY_DECLARATION"),
	GenericProperty:          node("CSS_GENERIC_PROPERTY"),
	DeclarationImportant:     node("CSS_DECLARATION_IMPORTANT"),
	ComponentValueList:       list("CSS_GENERIC_COMPONENT_VALUE_LIST"),
	GenericDelimiter:         node("CSS_GENERIC_DELIMITER"),
	Identifier:               node("CSS_IDENTIFIER"),
	CustomIdentifier:         node("CSS_CUSTOM_IDENTIFIER"),
	DashedIdentifier:         node("CSS_DASHED_IDENTIFIER"),
	String:                   node("CSS_STRING"),
	Number:                   node("CSS_NUMBER"),
	RegularDimension:         node("CSS_REGULAR_DIMENSION"),
	Percentage:               node("CSS_PERCENTAGE"),
	Color:                    node("CSS_COLOR"),
	Function:                 orBogus("CSS_FUNCTION", BogusPropertyValue),
	ParameterList:            list("CSS_PARAMETER_LIST"),
	Parameter:                orBogus("CSS_PARAMETER", BogusParameter),
	URLFunction:              orBogus("CSS_URL_FUNCTION", BogusPropertyValue),
	URLValueRaw:              node("CSS_URL_VALUE_RAW"),
	SimpleBlock:              node("CSS_SIMPLE_BLOCK"),

	Bogus:                bogus("CSS_BOGUS"),
	BogusRule:            bogus("CSS_BOGUS_RULE"),
	BogusAtRule:          bogus("CSS_BOGUS_AT_RULE"),
	BogusSelector:        bogus("CSS_BOGUS_SELECTOR"),
	BogusSubSelector:     bogus("CSS_BOGUS_SUB_SELECTOR"),
	BogusPseudoClass:     bogus("CSS_BOGUS_PSEUDO_CLASS"),
	BogusPseudoElement:   bogus("CSS_BOGUS_PSEUDO_ELEMENT"),
	BogusBlock:           bogus("CSS_BOGUS_BLOCK"),
	BogusDeclarationItem: bogus("CSS_BOGUS_DECLARATION_ITEM"),
	BogusPropertyValue:   bogus("CSS_BOGUS_PROPERTY_VALUE"),
	BogusKeyframesItem:   bogus("CSS_BOGUS_KEYFRAMES_ITEM"),
	BogusParameter:       bogus("CSS_BOGUS_PARAMETER"),
})
