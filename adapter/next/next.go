// Package next wraps the React component in a Next.js app router page.
package next

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/teranos/sketchflow/adapter"
	"github.com/teranos/sketchflow/adapter/react"
)

const (
	// Framework is the registry name of the Next.js adapter.
	Framework = "next"

	PagePath     = "app/page.tsx"
	ComponentDir = "app/components"
)

// Options are the Next.js adapter options. React options (componentName,
// style) apply to the embedded component.
type Options struct {
	Title string `mapstructure:"title"`
}

// Adapter generates app/components/<Component>.tsx and app/page.tsx.
type Adapter struct {
	component *react.Adapter
}

var _ adapter.Adapter = (*Adapter)(nil)

// New returns the Next.js adapter.
func New() *Adapter {
	return &Adapter{component: react.New()}
}

func (*Adapter) Framework() string          { return Framework }
func (*Adapter) Language() adapter.Language { return adapter.LangTSX }

// Introspect reports what the embedded React component renders.
func (a *Adapter) Introspect(ctx context.Context, actx *adapter.Context) (adapter.Introspection, error) {
	return a.component.Introspect(ctx, actx)
}

func (a *Adapter) Generate(ctx context.Context, actx *adapter.Context) (*adapter.Result, error) {
	var opts Options
	if err := adapter.DecodeOptions(actx.Options, &opts); err != nil {
		return nil, err
	}
	if opts.Title == "" {
		opts.Title = "Generated"
	}

	component, err := a.component.Generate(ctx, actx)
	if err != nil {
		return nil, err
	}

	files := make([]adapter.File, 0, len(component.Files)+1)
	for _, f := range component.Files {
		files = append(files, adapter.File{Path: path.Join(ComponentDir, f.Path), Contents: f.Contents})
	}

	// The component file is always first
	symbol := strings.TrimSuffix(component.Files[0].Path, ".tsx")
	files = append(files, adapter.File{Path: PagePath, Contents: page(symbol, opts.Title)})
	return &adapter.Result{Files: files}, nil
}

func page(symbol, title string) string {
	var sb strings.Builder
	sb.WriteString("import type { Metadata } from \"next\";\n")
	sb.WriteString("import dynamic from \"next/dynamic\";\n\n")
	sb.WriteString(fmt.Sprintf("const GeneratedComponent = dynamic(() => import(\"./components/%s\").then((m) => m.%s));\n\n", symbol, symbol))
	sb.WriteString("export const metadata: Metadata = {\n")
	sb.WriteString(fmt.Sprintf("  title: %s\n", adapter.Quote(title)))
	sb.WriteString("};\n\n")
	sb.WriteString("export default function Page() {\n")
	sb.WriteString("  return <GeneratedComponent />;\n")
	sb.WriteString("}\n")
	return sb.String()
}
