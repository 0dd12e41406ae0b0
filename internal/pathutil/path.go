package pathutil

import "regexp"

// PathParamRegex matches path template parameters like {paramName}.
// It captures the parameter name inside the braces.
var PathParamRegex = regexp.MustCompile(`\{([^}]+)\}`)

// Segment is one piece of a path template: literal text, or a parameter
// placeholder when Param is set.
type Segment struct {
	Text  string
	Param bool
}

// Segments splits a path template into literal text and parameter names,
// in order. An unterminated "{" is kept as literal text.
func Segments(path string) []Segment {
	var out []Segment
	last := 0
	for _, m := range PathParamRegex.FindAllStringSubmatchIndex(path, -1) {
		if m[0] > last {
			out = append(out, Segment{Text: path[last:m[0]]})
		}
		out = append(out, Segment{Text: path[m[2]:m[3]], Param: true})
		last = m[1]
	}
	if last < len(path) {
		out = append(out, Segment{Text: path[last:]})
	}
	return out
}

// TemplateParams returns the parameter names of a path template in order.
func TemplateParams(path string) []string {
	var names []string
	for _, m := range PathParamRegex.FindAllStringSubmatch(path, -1) {
		names = append(names, m[1])
	}
	return names
}
