// Package prompt holds the operator-editable prompt configuration and the
// {name} placeholder template engine used to build LLM prompts.
package prompt

import "regexp"

// placeholderRe matches a {name} token. Names are simple identifiers; this
// keeps literal braces in prompt text (e.g. JSON examples) untouched.
var placeholderRe = regexp.MustCompile(`\{([a-zA-Z][a-zA-Z0-9_]*)\}`)

// Render substitutes every {name} placeholder whose name is a key in vars,
// replacing all of its occurrences with the mapped value.
//
// Unknown placeholders are left verbatim — operator-edited templates may
// reference variables that are not supplied on every path, and that is not
// an error. Substitution is a single pass over the original template, so a
// value that itself contains {braces} is inserted literally and never
// re-expanded.
func Render(template string, vars map[string]string) string {
	return placeholderRe.ReplaceAllStringFunc(template, func(match string) string {
		name := match[1 : len(match)-1]
		if value, ok := vars[name]; ok {
			return value
		}
		return match
	})
}
