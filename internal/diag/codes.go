package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexBadLifetime              Code = 1005
	LexTokenTooLong             Code = 1006

	// Парсерные
	SynInfo                  Code = 2000
	SynUnexpectedToken       Code = 2001
	SynUnclosedParen         Code = 2002
	SynUnclosedBracket       Code = 2003
	SynUnclosedAngleBracket  Code = 2004
	SynExpectType            Code = 2005
	SynExpectSemicolon       Code = 2006
	SynExpectIdentifier      Code = 2007
	SynExpectEquals          Code = 2008
	SynPointerMissingMut     Code = 2009
	SynExpectPathSegment     Code = 2010
	SynExpectBound           Code = 2011
	SynExpectArrayLen        Code = 2012
	SynBadQualifiedPath      Code = 2013
	SynExpectFn              Code = 2014
	SynUnexpectedTopLevel    Code = 2015
	SynTrailingInput         Code = 2016
	SynDuplicateAlias        Code = 2017
	SynEmptyTypeSheet        Code = 2018
	SynVariadicNotLast       Code = 2019
	SynLifetimeAfterTypeArgs Code = 2020

	// I/O
	IOLoadFileError Code = 4001
	IOCacheCorrupt  Code = 4002

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string literal",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Invalid number literal",
	LexBadLifetime:              "Invalid lifetime name",
	LexTokenTooLong:             "Token is too long",
	SynInfo:                     "Syntax information",
	SynUnexpectedToken:          "Unexpected token",
	SynUnclosedParen:            "Unclosed parenthesis",
	SynUnclosedBracket:          "Unclosed bracket",
	SynUnclosedAngleBracket:     "Unclosed angle bracket",
	SynExpectType:               "Expected type",
	SynExpectSemicolon:          "Expected semicolon",
	SynExpectIdentifier:         "Expected identifier",
	SynExpectEquals:             "Expected '='",
	SynPointerMissingMut:        "Raw pointer needs 'const' or 'mut'",
	SynExpectPathSegment:        "Expected path segment",
	SynExpectBound:              "Expected type bound",
	SynExpectArrayLen:           "Expected array length",
	SynBadQualifiedPath:         "Malformed qualified path",
	SynExpectFn:                 "Expected 'fn'",
	SynUnexpectedTopLevel:       "Unexpected top-level item",
	SynTrailingInput:            "Unexpected input after type",
	SynDuplicateAlias:           "Duplicate type alias",
	SynEmptyTypeSheet:           "Type sheet has no items",
	SynVariadicNotLast:          "Variadic parameter must be last",
	SynLifetimeAfterTypeArgs:    "Lifetime argument after type arguments",
	IOLoadFileError:             "Failed to load file",
	IOCacheCorrupt:              "Cache entry is corrupt",
	ObsInfo:                     "Observability information",
	ObsTimings:                  "Timing report",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
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
