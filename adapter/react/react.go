// Package react renders layouts as a single React function component.
package react

import (
	"context"
	"fmt"
	"strings"

	"github.com/teranos/sketchflow/adapter"
	"github.com/teranos/sketchflow/sketch"
)

const (
	// Framework is the registry name of the React adapter.
	Framework = "react"

	// DefaultComponent names the component when no componentName is given.
	DefaultComponent = "GeneratedScreen"
)

// Style selects how node positions are expressed.
type Style string

const (
	StyleInline   Style = "inline"
	StyleCSS      Style = "css"
	StyleTailwind Style = "tailwind"
)

// Options are the React adapter options.
type Options struct {
	ComponentName string `mapstructure:"componentName"`
	Style         Style  `mapstructure:"style" validate:"omitempty,oneof=inline css tailwind"`
}

// DecodeOptions reads Options from an adapter option bag.
func DecodeOptions(opts adapter.Options) (Options, error) {
	var o Options
	if err := adapter.DecodeOptions(opts, &o); err != nil {
		return Options{}, err
	}
	if o.Style == "" {
		o.Style = StyleInline
	}
	return o, nil
}

// Adapter generates <Component>.tsx.
type Adapter struct{}

var _ adapter.Adapter = (*Adapter)(nil)

// New returns the React adapter.
func New() *Adapter {
	return &Adapter{}
}

func (*Adapter) Framework() string          { return Framework }
func (*Adapter) Language() adapter.Language { return adapter.LangTSX }

// Introspect counts top-level nodes.
func (*Adapter) Introspect(ctx context.Context, actx *adapter.Context) (adapter.Introspection, error) {
	return adapter.Count(actx.Layout, adapter.TopLevel), nil
}

func (a *Adapter) Generate(ctx context.Context, actx *adapter.Context) (*adapter.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	opts, err := DecodeOptions(actx.Options)
	if err != nil {
		return nil, err
	}
	return &adapter.Result{Files: Component(actx.Layout, opts)}, nil
}

// Component renders nodes as the component file and, in css style, its
// stylesheet module. The component file always comes first.
func Component(nodes []*sketch.Node, opts Options) []adapter.File {
	name := adapter.ComponentSymbol(opts.ComponentName, DefaultComponent)
	m := &markup{style: opts.Style}
	body := adapter.Render(nodes, 3, "  ", m)

	var sb strings.Builder
	sb.WriteString("import React from \"react\";\n")
	if opts.Style == StyleCSS {
		sb.WriteString(fmt.Sprintf("import styles from \"./%s.module.css\";\n", name))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("export const %s: React.FC = () => {\n", name))
	sb.WriteString("  return (\n")
	sb.WriteString(fmt.Sprintf("    <div %s>\n", m.rootAttr()))
	if body != "" {
		sb.WriteString(body + "\n")
	}
	sb.WriteString("    </div>\n")
	sb.WriteString("  );\n")
	sb.WriteString("};\n")

	files := []adapter.File{{Path: name + ".tsx", Contents: sb.String()}}
	if opts.Style == StyleCSS {
		files = append(files, adapter.File{Path: name + ".module.css", Contents: m.stylesheet()})
	}
	return files
}

// RenderNodes renders nodes as inline-styled JSX at depth, two spaces per
// level.
func RenderNodes(nodes []*sketch.Node, depth int) string {
	return adapter.Render(nodes, depth, "  ", &markup{style: StyleInline})
}

type markup struct {
	style Style
	rules []string
}

func (m *markup) Text(el adapter.Element, c sketch.TextContent) string {
	return fmt.Sprintf(`<span key={%s} %s>{%s}</span>`, adapter.Quote(el.Key), m.styleAttr(el), adapter.Quote(c.Text))
}

func (m *markup) Image(el adapter.Element, c sketch.ImageContent) string {
	return fmt.Sprintf(`<img key={%s} src=%s alt=%s %s />`,
		adapter.Quote(el.Key), adapter.Quote(c.Src), adapter.Quote(c.Alt), m.styleAttr(el))
}

func (m *markup) Container(el adapter.Element, children string) string {
	if children == "" && el.Node.Type == sketch.TypeShape {
		return fmt.Sprintf(`<div key={%s} %s />`, adapter.Quote(el.Key), m.styleAttr(el))
	}
	return fmt.Sprintf(`<div key={%s} %s>%s</div>`, adapter.Quote(el.Key), m.styleAttr(el), children)
}

func (m *markup) styleAttr(el adapter.Element) string {
	l := el.Node.Layout
	switch m.style {
	case StyleCSS:
		// Ids may sanitize to the same name; tree positions never collide
		class := el.PathName("n")
		m.rules = append(m.rules, cssRule(class, adapter.CSSDeclarations(l)))
		return fmt.Sprintf("className={styles[%s]}", adapter.Quote(class))
	case StyleTailwind:
		return fmt.Sprintf("className=%s", adapter.Quote(TailwindClasses(l)))
	default:
		return "style=" + adapter.JSXStyle(l)
	}
}

func (m *markup) rootAttr() string {
	switch m.style {
	case StyleCSS:
		return "className={styles.root}"
	case StyleTailwind:
		return `className="relative"`
	default:
		return `style={{ position: "relative" }}`
	}
}

func (m *markup) stylesheet() string {
	rules := append([]string{cssRule("root", "position: relative")}, m.rules...)
	return strings.Join(rules, "\n\n") + "\n"
}

func cssRule(class, decls string) string {
	return "." + class + " {\n  " + strings.ReplaceAll(decls, "; ", ";\n  ") + ";\n}"
}

// TailwindClasses expresses a layout with arbitrary-value utilities:
//
//	absolute left-[8px] top-[12px] w-[100px] h-[20px] rotate-[45deg]
func TailwindClasses(l sketch.Layout) string {
	classes := []string{
		"absolute",
		"left-[" + sketch.FormatNumber(l.X) + "px]",
		"top-[" + sketch.FormatNumber(l.Y) + "px]",
		"w-[" + sketch.FormatNumber(l.Width) + "px]",
		"h-[" + sketch.FormatNumber(l.Height) + "px]",
	}
	if l.Rotation != nil {
		classes = append(classes, "rotate-["+sketch.FormatNumber(*l.Rotation)+"deg]")
	}
	return strings.Join(classes, " ")
}
