// Package angular renders layouts as a standalone Angular component split
// into .ts, .html and .css files.
package angular

import (
	"context"
	"fmt"
	"strings"

	"github.com/teranos/sketchflow/adapter"
	"github.com/teranos/sketchflow/sketch"
)

const (
	// Framework is the registry name of the Angular adapter.
	Framework = "angular"

	DefaultComponent = "generated-screen"

	// SelectorPrefix is prepended to selectors that would start with a digit.
	SelectorPrefix = "app-"
)

const stylesheet = `.sketchflow-root {
  position: relative;
}

.node {
  position: absolute;
}
`

// Options are the Angular adapter options.
type Options struct {
	ComponentName string `mapstructure:"componentName"`
}

// Adapter generates <name>.ts, <name>.html and <name>.css.
type Adapter struct{}

var _ adapter.Adapter = (*Adapter)(nil)

// New returns the Angular adapter.
func New() *Adapter {
	return &Adapter{}
}

func (*Adapter) Framework() string          { return Framework }
func (*Adapter) Language() adapter.Language { return adapter.LangTS }

func (*Adapter) Introspect(ctx context.Context, actx *adapter.Context) (adapter.Introspection, error) {
	return adapter.Count(actx.Layout, adapter.TopLevel), nil
}

func (*Adapter) Generate(ctx context.Context, actx *adapter.Context) (*adapter.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var opts Options
	if err := adapter.DecodeOptions(actx.Options, &opts); err != nil {
		return nil, err
	}

	stem := strings.ToLower(adapter.SanitizeName(opts.ComponentName, DefaultComponent))
	class := adapter.ComponentSymbol(stem, DefaultComponent) + "Component"

	return &adapter.Result{Files: []adapter.File{
		{Path: stem + ".ts", Contents: component(stem, Selector(stem), class)},
		{Path: stem + ".html", Contents: template(actx.Layout)},
		{Path: stem + ".css", Contents: stylesheet},
	}}, nil
}

// Selector turns a sanitized, lowercased file stem into an element
// selector. Element names must start with a letter.
func Selector(stem string) string {
	if c := stem[0]; c >= '0' && c <= '9' {
		return SelectorPrefix + stem
	}
	return stem
}

func component(stem, selector, class string) string {
	var sb strings.Builder
	sb.WriteString("import { Component } from \"@angular/core\";\n\n")
	sb.WriteString("@Component({\n")
	sb.WriteString(fmt.Sprintf("  selector: \"%s\",\n", selector))
	sb.WriteString("  standalone: true,\n")
	sb.WriteString(fmt.Sprintf("  templateUrl: \"./%s.html\",\n", stem))
	sb.WriteString(fmt.Sprintf("  styleUrls: [\"./%s.css\"]\n", stem))
	sb.WriteString("})\n")
	sb.WriteString(fmt.Sprintf("export class %s {}\n", class))
	return sb.String()
}

func template(nodes []*sketch.Node) string {
	var sb strings.Builder
	sb.WriteString("<div class=\"sketchflow-root\" style=\"position: relative\">\n")
	if body := adapter.Render(nodes, 1, "  ", markup{}); body != "" {
		sb.WriteString(body + "\n")
	}
	sb.WriteString("</div>\n")
	return sb.String()
}

type markup struct{}

func attrs(el adapter.Element) string {
	return fmt.Sprintf(`class="node" data-key="%s" style="%s"`,
		adapter.EscapeTemplateText(el.Key), adapter.CSSDeclarations(el.Node.Layout))
}

func (markup) Text(el adapter.Element, c sketch.TextContent) string {
	return fmt.Sprintf("<span %s>%s</span>", attrs(el), adapter.EscapeTemplateText(c.Text))
}

func (markup) Image(el adapter.Element, c sketch.ImageContent) string {
	return fmt.Sprintf(`<img %s src="%s" alt="%s" />`,
		attrs(el), adapter.EscapeTemplateText(c.Src), adapter.EscapeTemplateText(c.Alt))
}

func (markup) Container(el adapter.Element, children string) string {
	return fmt.Sprintf("<div %s>%s</div>", attrs(el), children)
}
