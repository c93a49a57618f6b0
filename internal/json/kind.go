package json

import "github.com/biomejs/biome-sub019/internal/syntax"

// Tokens
const (
	StringLiteral syntax.Kind = syntax.FirstGrammarKind + iota
	NumberLiteral
	Ident
	TrueKw
	FalseKw
	NullKw
	LBrace
	RBrace
	LBracket
	RBracket
	Colon
	Comma
)

// Nodes
const (
	Root syntax.Kind = syntax.MaxTokenKind + iota
	StringValue
	NumberValue
	BooleanValue
	NullValue
	ObjectValue
	MemberList
	Member
	MemberName
	ArrayValue
	ArrayElementList

	BogusValue
	BogusMember
	BogusMemberName
)

// Lang is the JSON kind table.
var Lang = syntax.NewLanguage("json", map[syntax.Kind]syntax.KindInfo{
	StringLiteral: {Name: "JSON_STRING_LITERAL", Flags: syntax.FlagToken},
	NumberLiteral: {Name: "JSON_NUMBER_LITERAL", Flags: syntax.FlagToken},
	Ident:         {Name: "IDENT", Flags: syntax.FlagToken},
	TrueKw:        {Name: "TRUE_KW", Text: "true", Flags: syntax.FlagToken},
	FalseKw:       {Name: "FALSE_KW", Text: "false", Flags: syntax.FlagToken},
	NullKw:        {Name: "NULL_KW", Text: "null", Flags: syntax.FlagToken},
	LBrace:        {Name: "L_CURLY", Text: "{", Flags: syntax.FlagToken},
	RBrace:        {Name: "R_CURLY", Text: "}", Flags: syntax.FlagToken},
	LBracket:      {Name: "L_BRACK", Text: "[", Flags: syntax.FlagToken},
	RBracket:      {Name: "R_BRACK", Text: "]", Flags: syntax.FlagToken},
	Colon:         {Name: "COLON", Text: ":", Flags: syntax.FlagToken},
	Comma:         {Name: "COMMA", Text: ",", Flags: syntax.FlagToken},

	Root:             {Name: "JSON_ROOT", Flags: syntax.FlagNode | syntax.FlagRoot},
	StringValue:      {Name: "JSON_STRING_VALUE", Flags: syntax.FlagNode, Bogus: BogusValue},
	NumberValue:      {Name: "JSON_NUMBER_VALUE", Flags: syntax.FlagNode, Bogus: BogusValue},
	BooleanValue:     {Name: "JSON_BOOLEAN_VALUE", Flags: syntax.FlagNode, Bogus: BogusValue},
	NullValue:        {Name: "JSON_NULL_VALUE", Flags: syntax.FlagNode, Bogus: BogusValue},
	ObjectValue:      {Name: "JSON_OBJECT_VALUE", Flags: syntax.FlagNode, Bogus: BogusValue},
	MemberList:       {Name: "JSON_MEMBER_LIST", Flags: syntax.FlagNode | syntax.FlagList},
	Member:           {Name: "JSON_MEMBER", Flags: syntax.FlagNode, Bogus: BogusMember},
	MemberName:       {Name: "JSON_MEMBER_NAME", Flags: syntax.FlagNode, Bogus: BogusMemberName},
	ArrayValue:       {Name: "JSON_ARRAY_VALUE", Flags: syntax.FlagNode, Bogus: BogusValue},
	ArrayElementList: {Name: "JSON_ARRAY_ELEMENT_LIST", Flags: syntax.FlagNode | syntax.FlagList},

	BogusValue:      {Name: "JSON_BOGUS_VALUE", Flags: syntax.FlagNode | syntax.FlagBogus},
	BogusMember:     {Name: "JSON_BOGUS_MEMBER", Flags: syntax.FlagNode | syntax.FlagBogus},
	BogusMemberName: {Name: "JSON_BOGUS_MEMBER_NAME", Flags: syntax.FlagNode | syntax.FlagBogus},
})

var keywords = map[string]syntax.Kind{
	"true":  TrueKw,
	"false": FalseKw,
	"null":  NullKw,
}
