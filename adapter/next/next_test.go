package next

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/sketchflow/adapter"
	"github.com/teranos/sketchflow/adapter/adaptertest"
	"github.com/teranos/sketchflow/adapter/react"
)

func TestConformance(t *testing.T) {
	adaptertest.Conformance(t, New(), adaptertest.Profile{
		Policy:   adapter.TopLevel,
		Keys:     true,
		Rotation: "rotate(",
	})
}

func TestGenerate_Layout(t *testing.T) {
	actx := adaptertest.Context(adaptertest.ScenarioDocument(), nil)
	res, _ := adaptertest.Generate(t, New(), actx)
	require.Len(t, res.Files, 2)

	assert.Equal(t, "app/components/GeneratedScreen.tsx", res.Files[0].Path)
	assert.Equal(t, PagePath, res.Files[1].Path)

	component, err := react.New().Generate(context.Background(), actx)
	require.NoError(t, err)
	assert.Equal(t, component.Files[0].Contents, res.Files[0].Contents)
}

func TestGenerate_Page(t *testing.T) {
	res, _ := adaptertest.Generate(t, New(),
		adaptertest.Context(adaptertest.ScenarioDocument(), adapter.Options{"componentName": "Landing", "title": "Welcome"}))

	want := `import type { Metadata } from "next";
import dynamic from "next/dynamic";

const GeneratedComponent = dynamic(() => import("./components/Landing").then((m) => m.Landing));

export const metadata: Metadata = {
  title: "Welcome"
};

export default function Page() {
  return <GeneratedComponent />;
}
`
	assert.Equal(t, "app/components/Landing.tsx", res.Files[0].Path)
	assert.Equal(t, want, res.Files[1].Contents)
}

func TestGenerate_CSSStyleKeepsStylesheetBesideComponent(t *testing.T) {
	res, _ := adaptertest.Generate(t, New(),
		adaptertest.Context(adaptertest.ScenarioDocument(), adapter.Options{"style": "css"}))
	require.Len(t, res.Files, 3)
	assert.Equal(t, "app/components/GeneratedScreen.module.css", res.Files[1].Path)
	assert.Contains(t, res.Files[2].Contents, `title: "Generated"`)
}

func TestIntrospect_MatchesReact(t *testing.T) {
	actx := adaptertest.Context(adaptertest.SampleDocument(), nil)
	got, err := New().Introspect(context.Background(), actx)
	require.NoError(t, err)
	want, err := react.New().Introspect(context.Background(), actx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
