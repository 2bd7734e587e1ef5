package colors

import (
	"html"
	"regexp"
	"strings"
)

var ansiSequence = regexp.MustCompile(`\x1b\[([0-9;]*)m`)

var htmlClasses = map[string]string{
	"1":  "bold",
	"31": "red",
	"32": "green",
	"33": "yellow",
	"34": "blue",
	"35": "purple",
	"36": "cyan",
	"90": "grey",
}

// ConvertANSIToHTML turns SGR color sequences into nested <span> elements
// with CSS classes (red, bold, ...). Other text is HTML-escaped.
func ConvertANSIToHTML(s string) string {
	var sb strings.Builder
	open := 0

	last := 0
	for _, m := range ansiSequence.FindAllStringSubmatchIndex(s, -1) {
		sb.WriteString(html.EscapeString(s[last:m[0]]))
		last = m[1]

		params := s[m[2]:m[3]]
		if params == "" || params == "0" {
			for ; open > 0; open-- {
				sb.WriteString("</span>")
			}
			continue
		}

		classes := make([]string, 0, 2)
		for _, p := range strings.Split(params, ";") {
			if class, ok := htmlClasses[p]; ok {
				classes = append(classes, class)
			}
		}
		if len(classes) == 0 {
			continue
		}
		sb.WriteString(`<span class="` + strings.Join(classes, " ") + `">`)
		open++
	}
	sb.WriteString(html.EscapeString(s[last:]))

	for ; open > 0; open-- {
		sb.WriteString("</span>")
	}
	return sb.String()
}
