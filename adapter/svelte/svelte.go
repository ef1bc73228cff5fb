// Package svelte renders layouts as a Svelte component.
package svelte

import (
	"context"
	"fmt"
	"strings"

	"github.com/teranos/sketchflow/adapter"
	"github.com/teranos/sketchflow/sketch"
)

const (
	// Framework is the registry name of the Svelte adapter.
	Framework = "svelte"

	DefaultComponent = "GeneratedScreen"
)

// Options are the Svelte adapter options.
type Options struct {
	ComponentName string `mapstructure:"componentName"`
}

// Adapter generates <Component>.svelte.
type Adapter struct{}

var _ adapter.Adapter = (*Adapter)(nil)

// New returns the Svelte adapter.
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
	name := adapter.ComponentSymbol(opts.ComponentName, DefaultComponent)

	var sb strings.Builder
	sb.WriteString("<script lang=\"ts\">\n")
	sb.WriteString("</script>\n\n")
	sb.WriteString("<div class=\"sketchflow-root\" style=\"position: relative\">\n")
	if body := adapter.Render(actx.Layout, 1, "  ", markup{}); body != "" {
		sb.WriteString(body + "\n")
	}
	sb.WriteString("</div>\n")

	return &adapter.Result{Files: []adapter.File{{Path: name + ".svelte", Contents: sb.String()}}}, nil
}

type markup struct{}

func attrs(el adapter.Element) string {
	return fmt.Sprintf(`data-key="%s" style="%s"`, adapter.EscapeTemplateText(el.Key), adapter.CSSDeclarations(el.Node.Layout))
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
