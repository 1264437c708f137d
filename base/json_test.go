package base_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/MobRulesGames/tabletop/base"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string
	Cells [][]int
}

func TestJsonRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "field.json")

	in := payload{Name: "marsh", Cells: [][]int{{0, -1}, {2, 3}}}
	require.NoError(t, base.SaveJson(path, in))

	var out payload
	require.NoError(t, base.LoadJson(path, &out))
	assert.Equal(t, in, out)
}

func TestLoadJsonErrors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		var out payload
		err := base.LoadJson(filepath.Join(dir, "nope.json"), &out)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("malformed file", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
		var out payload
		assert.Error(t, base.LoadJson(path, &out))
	})
}
