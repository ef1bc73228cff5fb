// Package solid renders layouts as a SolidJS component.
package solid

import (
	"context"
	"fmt"
	"strings"

	"github.com/teranos/sketchflow/adapter"
	"github.com/teranos/sketchflow/sketch"
)

const (
	// Framework is the registry name of the SolidJS adapter.
	Framework = "solid"

	DefaultComponent = "GeneratedScreen"
)

// Options are the SolidJS adapter options.
type Options struct {
	ComponentName string `mapstructure:"componentName"`
}

// Adapter generates <Component>.tsx with named and default exports.
type Adapter struct{}

var _ adapter.Adapter = (*Adapter)(nil)

// New returns the SolidJS adapter.
func New() *Adapter {
	return &Adapter{}
}

func (*Adapter) Framework() string          { return Framework }
func (*Adapter) Language() adapter.Language { return adapter.LangTSX }

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
	name := adapter.ComponentSymbol(opts.ComponentName, DefaultComponent)

	var sb strings.Builder
	sb.WriteString("import type { Component } from \"solid-js\";\n\n")
	sb.WriteString(fmt.Sprintf("export const %s: Component = () => {\n", name))
	sb.WriteString("  return (\n")
	sb.WriteString("    <div style={{ position: \"relative\" }}>\n")
	if body := adapter.Render(actx.Layout, 3, "  ", markup{}); body != "" {
		sb.WriteString(body + "\n")
	}
	sb.WriteString("    </div>\n")
	sb.WriteString("  );\n")
	sb.WriteString("};\n\n")
	sb.WriteString(fmt.Sprintf("export default %s;\n", name))

	return &adapter.Result{Files: []adapter.File{{Path: name + ".tsx", Contents: sb.String()}}}, nil
}

// style renders a Solid style object. Solid passes values to the DOM
// untouched, so lengths carry their unit.
func style(l sketch.Layout) string {
	rules := []string{
		`position: "absolute"`,
		`left: "` + sketch.FormatNumber(l.X) + `px"`,
		`top: "` + sketch.FormatNumber(l.Y) + `px"`,
		`width: "` + sketch.FormatNumber(l.Width) + `px"`,
		`height: "` + sketch.FormatNumber(l.Height) + `px"`,
	}
	if l.Rotation != nil {
		rules = append(rules, `transform: "rotate(`+sketch.FormatNumber(*l.Rotation)+`deg)"`)
	}
	return "{{ " + strings.Join(rules, ", ") + " }}"
}

type markup struct{}

func (markup) Text(el adapter.Element, c sketch.TextContent) string {
	return fmt.Sprintf(`<span data-key={%s} style=%s>{%s}</span>`, adapter.Quote(el.Key), style(el.Node.Layout), adapter.Quote(c.Text))
}

func (markup) Image(el adapter.Element, c sketch.ImageContent) string {
	return fmt.Sprintf(`<img data-key={%s} src=%s alt=%s style=%s />`,
		adapter.Quote(el.Key), adapter.Quote(c.Src), adapter.Quote(c.Alt), style(el.Node.Layout))
}

func (markup) Container(el adapter.Element, children string) string {
	if children == "" && el.Node.Type == sketch.TypeShape {
		return fmt.Sprintf(`<div data-key={%s} style=%s />`, adapter.Quote(el.Key), style(el.Node.Layout))
	}
	return fmt.Sprintf(`<div data-key={%s} style=%s>%s</div>`, adapter.Quote(el.Key), style(el.Node.Layout), children)
}
