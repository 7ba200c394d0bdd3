package preview

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
)

// tokenCategories maps token types to syntax categories, most specific
// first. The first category with a color set wins.
var tokenCategories = map[chroma.TokenType][]string{
	chroma.Comment:            {"comment"},
	chroma.CommentSingle:      {"lineComment", "comment"},
	chroma.CommentHashbang:    {"lineComment", "comment"},
	chroma.CommentMultiline:   {"blockComment", "comment"},
	chroma.CommentSpecial:     {"docComment", "blockComment", "comment"},
	chroma.CommentPreproc:     {"processingInstruction", "meta"},
	chroma.CommentPreprocFile: {"string", "literal"},

	chroma.Keyword:            {"keyword"},
	chroma.KeywordConstant:    {"atom", "keyword"},
	chroma.KeywordDeclaration: {"definitionKeyword", "keyword"},
	chroma.KeywordNamespace:   {"moduleKeyword", "keyword"},
	chroma.KeywordPseudo:      {"keyword"},
	chroma.KeywordReserved:    {"keyword"},
	chroma.KeywordType:        {"typeName", "name"},

	chroma.Name:                 {"variableName", "name"},
	chroma.NameAttribute:        {"attributeName", "propertyName", "name"},
	chroma.NameBuiltin:          {"standard", "variableName", "name"},
	chroma.NameBuiltinPseudo:    {"self", "keyword"},
	chroma.NameClass:            {"className", "typeName", "name"},
	chroma.NameConstant:         {"constant", "variableName", "name"},
	chroma.NameDecorator:        {"annotation", "meta"},
	chroma.NameEntity:           {"character", "string", "literal"},
	chroma.NameException:        {"className", "typeName", "name"},
	chroma.NameFunction:         {"function", "variableName", "name"},
	chroma.NameFunctionMagic:    {"function", "variableName", "name"},
	chroma.NameLabel:            {"labelName", "name"},
	chroma.NameNamespace:        {"namespace", "name"},
	chroma.NameOther:            {"variableName", "name"},
	chroma.NameProperty:         {"propertyName", "name"},
	chroma.NameTag:              {"tagName", "typeName", "name"},
	chroma.NameVariable:         {"variableName", "name"},
	chroma.NameVariableClass:    {"variableName", "name"},
	chroma.NameVariableGlobal:   {"variableName", "name"},
	chroma.NameVariableInstance: {"local", "variableName", "name"},

	chroma.Literal:                  {"literal"},
	chroma.LiteralDate:              {"literal"},
	chroma.LiteralString:            {"string", "literal"},
	chroma.LiteralStringAffix:       {"modifier", "string", "literal"},
	chroma.LiteralStringBacktick:    {"string", "literal"},
	chroma.LiteralStringChar:        {"character", "string", "literal"},
	chroma.LiteralStringDelimiter:   {"string", "literal"},
	chroma.LiteralStringDoc:         {"docString", "string", "literal"},
	chroma.LiteralStringDouble:      {"string", "literal"},
	chroma.LiteralStringEscape:      {"escape", "literal"},
	chroma.LiteralStringHeredoc:     {"string", "literal"},
	chroma.LiteralStringInterpol:    {"special", "string", "literal"},
	chroma.LiteralStringOther:       {"string", "literal"},
	chroma.LiteralStringRegex:       {"regexp", "literal"},
	chroma.LiteralStringSingle:      {"string", "literal"},
	chroma.LiteralStringSymbol:      {"atom", "literal"},
	chroma.LiteralNumber:            {"number", "literal"},
	chroma.LiteralNumberBin:         {"integer", "number", "literal"},
	chroma.LiteralNumberFloat:       {"float", "number", "literal"},
	chroma.LiteralNumberHex:         {"integer", "number", "literal"},
	chroma.LiteralNumberInteger:     {"integer", "number", "literal"},
	chroma.LiteralNumberIntegerLong: {"integer", "number", "literal"},
	chroma.LiteralNumberOct:         {"integer", "number", "literal"},

	chroma.Operator:     {"operator"},
	chroma.OperatorWord: {"operatorKeyword", "keyword"},
	chroma.Punctuation:  {"punctuation"},

	chroma.Generic:           {"content"},
	chroma.GenericDeleted:    {"deleted"},
	chroma.GenericEmph:       {"emphasis", "content"},
	chroma.GenericError:      {"invalid"},
	chroma.GenericHeading:    {"heading1", "heading", "content"},
	chroma.GenericInserted:   {"inserted"},
	chroma.GenericOutput:     {"monospace", "content"},
	chroma.GenericPrompt:     {"meta"},
	chroma.GenericStrong:     {"strong", "content"},
	chroma.GenericSubheading: {"heading2", "heading", "content"},
	chroma.GenericTraceback:  {"invalid"},

	chroma.Error: {"invalid"},
}

var keywordValues = map[string][]string{
	"true":     {"bool", "literal"},
	"false":    {"bool", "literal"},
	"True":     {"bool", "literal"},
	"False":    {"bool", "literal"},
	"null":     {"null", "keyword"},
	"nil":      {"null", "keyword"},
	"nullptr":  {"null", "keyword"},
	"None":     {"null", "keyword"},
	"NULL":     {"null", "keyword"},
	"this":     {"self", "keyword"},
	"self":     {"self", "keyword"},
	"Self":     {"self", "keyword"},
	"if":       {"controlKeyword", "keyword"},
	"else":     {"controlKeyword", "keyword"},
	"for":      {"controlKeyword", "keyword"},
	"while":    {"controlKeyword", "keyword"},
	"return":   {"controlKeyword", "keyword"},
	"break":    {"controlKeyword", "keyword"},
	"continue": {"controlKeyword", "keyword"},
	"switch":   {"controlKeyword", "keyword"},
	"case":     {"controlKeyword", "keyword"},
	"yield":    {"controlKeyword", "keyword"},
	"match":    {"controlKeyword", "keyword"},
	"new":      {"operatorKeyword", "keyword"},
	"delete":   {"operatorKeyword", "keyword"},
	"in":       {"operatorKeyword", "keyword"},
	"is":       {"operatorKeyword", "keyword"},
	"not":      {"operatorKeyword", "keyword"},
	"and":      {"operatorKeyword", "keyword"},
	"or":       {"operatorKeyword", "keyword"},
	"import":   {"moduleKeyword", "keyword"},
	"from":     {"moduleKeyword", "keyword"},
	"package":  {"moduleKeyword", "keyword"},
	"use":      {"moduleKeyword", "keyword"},
}

var punctuationValues = map[string][]string{
	"(":  {"paren", "bracket", "punctuation"},
	")":  {"paren", "bracket", "punctuation"},
	"[":  {"squareBracket", "bracket", "punctuation"},
	"]":  {"squareBracket", "bracket", "punctuation"},
	"{":  {"brace", "bracket", "punctuation"},
	"}":  {"brace", "bracket", "punctuation"},
	"<":  {"angleBracket", "bracket", "punctuation"},
	">":  {"angleBracket", "bracket", "punctuation"},
	",":  {"separator", "punctuation"},
	";":  {"separator", "punctuation"},
	".":  {"derefOperator", "operator"},
	"->": {"derefOperator", "operator"},
	"::": {"derefOperator", "operator"},
}

var operatorValues = map[string][]string{
	"+":   {"arithmeticOperator", "operator"},
	"-":   {"arithmeticOperator", "operator"},
	"*":   {"arithmeticOperator", "operator"},
	"/":   {"arithmeticOperator", "operator"},
	"%":   {"arithmeticOperator", "operator"},
	"&&":  {"logicOperator", "operator"},
	"||":  {"logicOperator", "operator"},
	"!":   {"logicOperator", "operator"},
	"&":   {"bitwiseOperator", "operator"},
	"|":   {"bitwiseOperator", "operator"},
	"^":   {"bitwiseOperator", "operator"},
	"~":   {"bitwiseOperator", "operator"},
	"<<":  {"bitwiseOperator", "operator"},
	">>":  {"bitwiseOperator", "operator"},
	"==":  {"compareOperator", "operator"},
	"!=":  {"compareOperator", "operator"},
	"===": {"compareOperator", "operator"},
	"<":   {"compareOperator", "operator"},
	">":   {"compareOperator", "operator"},
	"<=":  {"compareOperator", "operator"},
	">=":  {"compareOperator", "operator"},
	"+=":  {"updateOperator", "operator"},
	"-=":  {"updateOperator", "operator"},
	"*=":  {"updateOperator", "operator"},
	"/=":  {"updateOperator", "operator"},
	"++":  {"updateOperator", "operator"},
	"--":  {"updateOperator", "operator"},
	"=":   {"definitionOperator", "operator"},
	":=":  {"definitionOperator", "operator"},
	"=>":  {"controlOperator", "operator"},
	"?":   {"controlOperator", "operator"},
	"->":  {"derefOperator", "operator"},
	".":   {"derefOperator", "operator"},
	"::":  {"derefOperator", "operator"},
}

// categoriesFor returns the candidate categories for a token, most specific
// first, or nil for plain text.
func categoriesFor(token chroma.Token) []string {
	value := strings.TrimSpace(token.Value)
	switch {
	case token.Type.InCategory(chroma.Keyword) || token.Type == chroma.NameBuiltinPseudo:
		if chain, ok := keywordValues[value]; ok {
			return chain
		}
	case token.Type == chroma.Punctuation:
		if chain, ok := punctuationValues[value]; ok {
			return chain
		}
	case token.Type.InCategory(chroma.Operator) && token.Type != chroma.OperatorWord:
		if chain, ok := operatorValues[value]; ok {
			return chain
		}
	}

	for _, candidate := range []chroma.TokenType{token.Type, token.Type.SubCategory(), token.Type.Category()} {
		if chain, ok := tokenCategories[candidate]; ok {
			return chain
		}
	}
	return nil
}
