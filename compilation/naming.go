package compilation

import (
	"go/token"
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// splitWords breaks an identifier on separators and camel case humps,
// keeping acronyms together: "HTTPServer" -> [HTTP Server].
func splitWords(s string) []string {
	var words []string
	var current []rune

	flush := func() {
		if len(current) > 0 {
			words = append(words, string(current))
			current = current[:0]
		}
	}

	runes := []rune(s)
	for idx, r := range runes {
		if r == '_' || r == '-' || r == '.' || unicode.IsSpace(r) {
			flush()
			continue
		}

		if unicode.IsUpper(r) && len(current) > 0 {
			prev := runes[idx-1]
			nextLower := idx+1 < len(runes) && unicode.IsLower(runes[idx+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush()
			}
		}

		current = append(current, r)
	}
	flush()

	return words
}

// ExportedName: max_keys -> MaxKeys
func ExportedName(name string) string {
	// casers keep state, one per call
	title := cases.Title(language.Und, cases.NoLower)

	var b strings.Builder
	for _, word := range splitWords(name) {
		b.WriteString(title.String(word))
	}
	return b.String()
}

// VarName: max_keys -> maxKeys, type -> type_
func VarName(name string) string {
	words := splitWords(name)
	if len(words) == 0 {
		return ""
	}

	title := cases.Title(language.Und, cases.NoLower)

	var b strings.Builder
	b.WriteString(strings.ToLower(words[0]))
	for _, word := range words[1:] {
		b.WriteString(title.String(word))
	}

	out := b.String()
	if token.IsKeyword(out) {
		out += "_"
	}
	return out
}

// declared or imported by every generated request file
var requestFileIdents = []string{"url", "strconv", "queryParams"}

// ParamVarName is VarName for a parameter of the request whose methods use
// receiver. Names taken by the request file get the same "_" as keywords.
func ParamVarName(name, receiver string) string {
	out := VarName(name)
	if out == receiver || slices.Contains(requestFileIdents, out) {
		out += "_"
	}
	return out
}

// UpperSnake: DatabasePhysicalSpaceState -> DATABASE_PHYSICAL_SPACE_STATE
func UpperSnake(name string) string {
	return strings.ToUpper(strings.Join(splitWords(name), "_"))
}

// SnakeCase: GetBucket -> get_bucket
func SnakeCase(name string) string {
	return strings.ToLower(strings.Join(splitWords(name), "_"))
}
