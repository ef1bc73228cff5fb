package builtin

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/sketchflow/adapter"
	"github.com/teranos/sketchflow/adapter/adaptertest"
	"github.com/teranos/sketchflow/errors"
)

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry()
	assert.Equal(t, []string{"react", "next", "vue", "svelte", "angular", "solid", "three"}, reg.Frameworks())
}

func TestRegister_Twice(t *testing.T) {
	reg := NewRegistry()
	err := Register(reg)
	require.Error(t, err)
	assert.True(t, errors.IsConflictError(err))
}

func TestLanguages(t *testing.T) {
	want := map[string]adapter.Language{
		"react":   adapter.LangTSX,
		"next":    adapter.LangTSX,
		"vue":     adapter.LangTS,
		"svelte":  adapter.LangTS,
		"angular": adapter.LangTS,
		"solid":   adapter.LangTSX,
		"three":   adapter.LangTS,
	}
	for _, a := range Adapters() {
		assert.Equal(t, want[a.Framework()], a.Language(), a.Framework())
	}
}

// Every adapter renders the scenario text and treats nil options as empty.
func TestAllAdapters_Scenario(t *testing.T) {
	for _, a := range Adapters() {
		t.Run(a.Framework(), func(t *testing.T) {
			res, err := a.Generate(context.Background(), adaptertest.Context(adaptertest.ScenarioDocument(), nil))
			require.NoError(t, err)
			require.NotEmpty(t, res.Files)

			var all strings.Builder
			for _, f := range res.Files {
				assert.NotEmpty(t, f.Path)
				all.WriteString(f.Contents)
			}
			assert.Contains(t, all.String(), "Hi")
		})
	}
}
