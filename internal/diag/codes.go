package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexBadEscape                Code = 1005
	LexBadColor                 Code = 1006
	LexLineCommentNotAllowed    Code = 1007
	LexBadUnicodeRange          Code = 1008
	LexBadURL                   Code = 1009
	LexSingleQuotedString       Code = 1010
	LexControlChar              Code = 1011

	// Syntax, shared by every grammar
	SynInfo              Code = 2000
	SynUnexpectedToken   Code = 2001
	SynExpectedToken     Code = 2002
	SynExpectedNode      Code = 2003
	SynUnclosedBrace     Code = 2004
	SynUnclosedBracket   Code = 2005
	SynUnclosedParen     Code = 2006
	SynTrailingSeparator Code = 2007
	SynMissingSeparator  Code = 2008
	SynEmptyElement      Code = 2009
	SynUnsupportedSyntax Code = 2010

	// CSS
	SynCSSInfo                Code = 2100
	SynCSSExpectedSelector    Code = 2101
	SynCSSExpectedDeclaration Code = 2102
	SynCSSUnknownPseudoClass  Code = 2103
	SynCSSUnknownPseudoElem   Code = 2104
	SynCSSExpectedValue       Code = 2105
	SynCSSExpectedBlock       Code = 2106
	SynCSSExpectedIdentifier  Code = 2107
	SynCSSBadNth              Code = 2108
	SynCSSBadAttribute        Code = 2109
	SynCSSModulesOnly         Code = 2110
	SynCSSExpectedRule        Code = 2111

	// JSON
	SynJSONInfo              Code = 2200
	SynJSONExpectedValue     Code = 2201
	SynJSONExpectedProperty  Code = 2202
	SynJSONCommentNotAllowed Code = 2203
	SynJSONTrailingComma     Code = 2204
	SynJSONExtraValue        Code = 2205

	// IO
	IOInfo          Code = 4000
	IOLoadFileError Code = 4001
	IOWriteError    Code = 4002
	IOFileTooLarge  Code = 4003
	IOTimings       Code = 4004

	// Project / configuration
	ProjInfo          Code = 5000
	ProjInvalidConfig Code = 5001
	ProjUnknownLang   Code = 5002

	// Fix engine
	FixInfo     Code = 6000
	FixConflict Code = 6001
	FixStale    Code = 6002
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Bad number",
	LexBadEscape:                "Invalid escape sequence",
	LexBadColor:                 "Invalid color",
	LexLineCommentNotAllowed:    "Line comments are not allowed",
	LexBadUnicodeRange:          "Invalid unicode range",
	LexBadURL:                   "Invalid url",
	LexSingleQuotedString:       "Single quoted string",
	LexControlChar:              "Control character in string",
	SynInfo:                     "Syntax information",
	SynUnexpectedToken:          "Unexpected token",
	SynExpectedToken:            "Expected token",
	SynExpectedNode:             "Expected node",
	SynUnclosedBrace:            "Unclosed brace",
	SynUnclosedBracket:          "Unclosed bracket",
	SynUnclosedParen:            "Unclosed parenthesis",
	SynTrailingSeparator:        "Trailing separator",
	SynMissingSeparator:         "Missing separator",
	SynEmptyElement:             "Empty list element",
	SynUnsupportedSyntax:        "Unsupported syntax",
	SynCSSInfo:                  "CSS syntax information",
	SynCSSExpectedSelector:      "Expected a selector",
	SynCSSExpectedDeclaration:   "Expected a declaration",
	SynCSSUnknownPseudoClass:    "Unknown pseudo-class",
	SynCSSUnknownPseudoElem:     "Unknown pseudo-element",
	SynCSSExpectedValue:         "Expected a value",
	SynCSSExpectedBlock:         "Expected a block",
	SynCSSExpectedIdentifier:    "Expected an identifier",
	SynCSSBadNth:                "Invalid nth expression",
	SynCSSBadAttribute:          "Invalid attribute selector",
	SynCSSModulesOnly:           "CSS Modules syntax",
	SynCSSExpectedRule:          "Expected a rule",
	SynJSONInfo:                 "JSON syntax information",
	SynJSONExpectedValue:        "Expected a value",
	SynJSONExpectedProperty:     "Expected a property",
	SynJSONCommentNotAllowed:    "Comments are not allowed",
	SynJSONTrailingComma:        "Trailing comma",
	SynJSONExtraValue:           "Extra value after the root",
	IOInfo:                      "IO information",
	IOLoadFileError:             "IO load file error",
	IOWriteError:                "IO write error",
	IOFileTooLarge:              "File too large",
	IOTimings:                   "Phase timings",
	ProjInfo:                    "Project information",
	ProjInvalidConfig:           "Invalid configuration",
	ProjUnknownLang:             "Unknown language",
	FixInfo:                     "Fix information",
	FixConflict:                 "Conflicting fix edits",
	FixStale:                    "Fix does not match the source",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("FIX%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
