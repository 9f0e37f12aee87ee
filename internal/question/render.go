package question

import "regexp"

var placeholderRe = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Render substitutes every {name} token in statement with the given of that
// name. Tokens without a matching given are left as written.
func Render(statement string, givens map[string]Value) string {
	return placeholderRe.ReplaceAllStringFunc(statement, func(tok string) string {
		name := tok[1 : len(tok)-1]
		if v, ok := givens[name]; ok {
			return v.String()
		}
		return tok
	})
}

// Placeholders returns the names referenced in statement, in order of
// first appearance.
func Placeholders(statement string) []string {
	var names []string
	seen := map[string]bool{}
	for _, m := range placeholderRe.FindAllStringSubmatch(statement, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}
