package adapter

import (
	"bytes"
	"encoding/json"
	"html"
	"strings"

	"github.com/teranos/sketchflow/sketch"
)

// CSSDeclarations renders a layout as inline CSS:
//
//	position: absolute; left: 8px; top: 12px; width: 100px; height: 20px
//
// A transform is appended only when the layout carries a rotation.
func CSSDeclarations(l sketch.Layout) string {
	decls := []string{
		"position: absolute",
		"left: " + sketch.FormatNumber(l.X) + "px",
		"top: " + sketch.FormatNumber(l.Y) + "px",
		"width: " + sketch.FormatNumber(l.Width) + "px",
		"height: " + sketch.FormatNumber(l.Height) + "px",
	}
	if l.Rotation != nil {
		decls = append(decls, "transform: rotate("+sketch.FormatNumber(*l.Rotation)+"deg)")
	}
	return strings.Join(decls, "; ")
}

// JSXStyle renders a layout as a JSX style object expression:
//
//	{{ position: "absolute", left: 8, top: 12, width: 100, height: 20 }}
func JSXStyle(l sketch.Layout) string {
	rules := []string{
		`position: "absolute"`,
		"left: " + sketch.FormatNumber(l.X),
		"top: " + sketch.FormatNumber(l.Y),
		"width: " + sketch.FormatNumber(l.Width),
		"height: " + sketch.FormatNumber(l.Height),
	}
	if l.Rotation != nil {
		rules = append(rules, `transform: "rotate(`+sketch.FormatNumber(*l.Rotation)+`deg)"`)
	}
	return "{{ " + strings.Join(rules, ", ") + " }}"
}

// Quote renders s as a double-quoted JavaScript string literal.
func Quote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// Encoding a string cannot fail
	_ = enc.Encode(s)
	return strings.TrimSuffix(buf.String(), "\n")
}

var braceReplacer = strings.NewReplacer("{", "&#123;", "}", "&#125;")

// EscapeTemplateText escapes s as HTML text for template languages that
// interpolate curly braces (Vue, Svelte, Angular).
func EscapeTemplateText(s string) string {
	return braceReplacer.Replace(html.EscapeString(s))
}
