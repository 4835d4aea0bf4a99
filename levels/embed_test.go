package levels

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultLevel(t *testing.T) {
	lvl, err := LoadLevelFromFS("demo")
	require.NoError(t, err)

	assert.Equal(t, "demo", lvl.Name)
	assert.Equal(t, "player.yaml", lvl.Player)
	assert.Equal(t, "camera.yaml", lvl.Camera)
	require.NotEmpty(t, lvl.Objects)

	var moving, disappearing, anchors int
	for _, o := range lvl.Objects {
		if o.Moving != nil {
			moving++
		}
		if o.Disappearing != nil {
			disappearing++
		}
		if o.Anchor {
			anchors++
		}
	}
	assert.Equal(t, 1, moving)
	assert.Equal(t, 1, disappearing)
	assert.Equal(t, 1, anchors)

	require.NotNil(t, lvl.Water)
	assert.Equal(t, 40, lvl.Water.Cols)
	require.NotNil(t, lvl.Water.Fish)
	assert.Equal(t, 24, lvl.Water.Fish.Count)
	require.NotNil(t, lvl.KillY)
	assert.Equal(t, -20.0, *lvl.KillY)
}

func TestParseRejectsBadExtents(t *testing.T) {
	_, err := Parse([]byte(`
objects:
  - name: Flat
    center: {x: 0, y: 0, z: 0}
    extents: {x: 1, y: 0, z: 1}
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"Flat"`)

	_, err = Parse([]byte("objects: [oops"))
	assert.Error(t, err)
}

func TestKillYIsOptional(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		want *float64
	}{
		{name: "unset", yaml: "name: open\n"},
		{name: "ground level", yaml: "name: pit\nkill_y: 0\n", want: ptr(0.0)},
		{name: "below ground", yaml: "name: deep\nkill_y: -20\n", want: ptr(-20.0)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lvl, err := Parse([]byte(tc.yaml))
			require.NoError(t, err)
			assert.Equal(t, tc.want, lvl.KillY)
		})
	}
}

func ptr[T any](v T) *T { return &v }

func TestLoadFromDiskOverride(t *testing.T) {
	dir := t.TempDir()
	old := Dir
	Dir = dir
	t.Cleanup(func() { Dir = old })

	require.NoError(t, os.WriteFile(filepath.Join(dir, "tiny.yaml"), []byte(`
name: tiny
player: custom.yaml
objects:
  - center: {x: 0, y: -0.5, z: 0}
    extents: {x: 1, y: 0.5, z: 1}
`), 0o644))

	lvl, err := LoadLevelFromFS("levels/tiny.yaml")
	require.NoError(t, err)
	assert.Equal(t, "tiny", lvl.Name)
	assert.Equal(t, "custom.yaml", lvl.Player)
	assert.Nil(t, lvl.Water)

	_, err = LoadLevelFromFS("missing")
	assert.Error(t, err)
}
