package genversion_test

import (
	"bytes"
	"go/format"
	"os"
	"path/filepath"
	"testing"

	"github.com/MobRulesGames/tabletop/tools/genversion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const hash = "c0ffeec0ffeec0ffeec0ffeec0ffeec0ffeec0ff"

func TestGeneratedFileIsFormatted(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, genversion.GenFile(hash, buf))

	formatted, err := format.Source(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, buf.String(), string(formatted))
	assert.Contains(t, buf.String(), `return "`+hash+`"`)
}

func TestReadCommit(t *testing.T) {
	t.Run("detached head", func(t *testing.T) {
		dir := t.TempDir()
		head := filepath.Join(dir, "HEAD")
		require.NoError(t, os.WriteFile(head, []byte(hash+"\n"), 0o644))

		commit, err := genversion.ReadCommit(head)
		require.NoError(t, err)
		assert.Equal(t, hash, commit)
	})

	t.Run("branch ref", func(t *testing.T) {
		dir := t.TempDir()
		head := filepath.Join(dir, "HEAD")
		require.NoError(t, os.WriteFile(head, []byte("ref: refs/heads/main\n"), 0o644))
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "refs", "heads"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "refs", "heads", "main"), []byte(hash+"\n"), 0o644))

		commit, err := genversion.ReadCommit(head)
		require.NoError(t, err)
		assert.Equal(t, hash, commit)
	})

	t.Run("missing ref", func(t *testing.T) {
		dir := t.TempDir()
		head := filepath.Join(dir, "HEAD")
		require.NoError(t, os.WriteFile(head, []byte("ref: refs/heads/gone\n"), 0o644))

		_, err := genversion.ReadCommit(head)
		assert.Error(t, err)
	})
}

func TestWriteFileCreatesTheDirectory(t *testing.T) {
	out := filepath.Join(t.TempDir(), "gen", "version.go")
	require.NoError(t, genversion.WriteFile(hash, out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "package gen")
}
