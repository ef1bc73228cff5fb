package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInfo(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want string
	}{
		{
			name: "tagged",
			info: Info{Version: "v1.2.3", CommitHash: "abcdef0123", BuildTime: "2026-01-02"},
			want: "sketchflow v1.2.3 (commit abcdef0, built 2026-01-02)",
		},
		{
			name: "development",
			info: Info{Version: "dev", CommitHash: "dev", BuildTime: "unknown"},
			want: "sketchflow dev (commit dev, built unknown)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.info.String())
		})
	}
}

func TestSemver(t *testing.T) {
	v, ok := Info{Version: "0.4.0-rc.1"}.Semver()
	require.True(t, ok)
	assert.Equal(t, uint64(4), v.Minor())
	assert.Equal(t, "rc.1", v.Prerelease())

	_, ok = Info{Version: "dev"}.Semver()
	assert.False(t, ok)
}

func TestGet(t *testing.T) {
	info := Get()
	assert.Equal(t, Version, info.Version)
	assert.NotEmpty(t, info.GoVersion)
	assert.Contains(t, info.Platform, "/")
}
