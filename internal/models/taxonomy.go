package models

// TaxonomyVersion identifies the revision of the role and category sets.
// Bump it whenever EditorRoles or SyntaxCategories change.
const TaxonomyVersion = 1

// Editor surface roles.
const (
	RoleBackground = "background"
	RoleSelection  = "selection"
	RoleCaret      = "caret"
)

// EditorRoles is the closed set of editor-surface roles a scheme colors.
var EditorRoles = []string{
	RoleBackground,
	RoleSelection,
	RoleCaret,
}

// SyntaxCategories is the closed set of syntax token categories a scheme colors.
// Order is the display order used by the editor views.
var SyntaxCategories = []string{
	"comment",
	"lineComment",
	"blockComment",
	"docComment",
	"name",
	"variableName",
	"typeName",
	"tagName",
	"propertyName",
	"attributeName",
	"className",
	"labelName",
	"namespace",
	"macroName",
	"literal",
	"string",
	"docString",
	"character",
	"attributeValue",
	"number",
	"integer",
	"float",
	"bool",
	"regexp",
	"escape",
	"color",
	"url",
	"keyword",
	"self",
	"null",
	"atom",
	"unit",
	"modifier",
	"operatorKeyword",
	"controlKeyword",
	"definitionKeyword",
	"moduleKeyword",
	"operator",
	"derefOperator",
	"arithmeticOperator",
	"logicOperator",
	"bitwiseOperator",
	"compareOperator",
	"updateOperator",
	"definitionOperator",
	"typeOperator",
	"controlOperator",
	"punctuation",
	"separator",
	"bracket",
	"angleBracket",
	"squareBracket",
	"paren",
	"brace",
	"content",
	"heading",
	"heading1",
	"heading2",
	"heading3",
	"heading4",
	"heading5",
	"heading6",
	"contentSeparator",
	"list",
	"quote",
	"emphasis",
	"strong",
	"link",
	"monospace",
	"strikethrough",
	"inserted",
	"deleted",
	"changed",
	"invalid",
	"meta",
	"documentMeta",
	"annotation",
	"processingInstruction",
	"definition",
	"constant",
	"function",
	"standard",
	"local",
	"special",
}

// Namespace identifies which color map of a scheme defines a role.
type Namespace string

const (
	NamespaceEditor Namespace = "editor"
	NamespaceSyntax Namespace = "syntax"
)

var (
	editorRoleSet     = toSet(EditorRoles)
	syntaxCategorySet = toSet(SyntaxCategories)
)

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, value := range values {
		set[value] = struct{}{}
	}
	return set
}

// RoleNamespace reports which namespace defines role.
// Editor roles win if a name ever appears in both sets.
func RoleNamespace(role string) (Namespace, error) {
	if _, ok := editorRoleSet[role]; ok {
		return NamespaceEditor, nil
	}
	if _, ok := syntaxCategorySet[role]; ok {
		return NamespaceSyntax, nil
	}
	return "", &UnknownRoleError{Role: role}
}

// IsEditorRole reports whether role is an editor-surface role.
func IsEditorRole(role string) bool {
	_, ok := editorRoleSet[role]
	return ok
}

// IsSyntaxCategory reports whether name is a known syntax category.
func IsSyntaxCategory(name string) bool {
	_, ok := syntaxCategorySet[name]
	return ok
}

// AllRoles returns editor roles followed by syntax categories.
func AllRoles() []string {
	roles := make([]string, 0, len(EditorRoles)+len(SyntaxCategories))
	roles = append(roles, EditorRoles...)
	roles = append(roles, SyntaxCategories...)
	return roles
}
