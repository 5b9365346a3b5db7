package filesystem

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/treelab/memfs"
	"github.com/treelab/memfs/config"
)

func TestPrintTree(t *testing.T) {
	fs := NewFS(config.NewDefaultConfig())
	require.NoError(t, fs.Mkdir("/home"))
	require.NoError(t, fs.Mkdir("/home/x"))
	require.NoError(t, fs.Touch("/home/x/f.txt"))
	require.NoError(t, fs.Touch("/readme"))

	var buf bytes.Buffer
	require.NoError(t, fs.PrintTree(&buf))

	want := `/
  home/
    x/
      f.txt
  readme
`
	assert.Equal(t, want, buf.String())
}

func TestPrintTree_Empty(t *testing.T) {
	fs := NewFS(config.NewDefaultConfig())

	var buf bytes.Buffer
	require.NoError(t, fs.PrintTree(&buf))
	assert.Equal(t, "/\n", buf.String())
}

func TestPrintSubtree(t *testing.T) {
	fs := NewFS(config.NewDefaultConfig())
	require.NoError(t, fs.Mkdir("/a"))
	require.NoError(t, fs.Mkdir("/a/b"))
	require.NoError(t, fs.Touch("/a/b/f"))

	var buf bytes.Buffer
	require.NoError(t, fs.PrintSubtree("/a/b", &buf))
	assert.Equal(t, "b/\n  f\n", buf.String())

	err := fs.PrintSubtree("/nope", &buf)
	assert.ErrorIs(t, err, memfs.ErrNotFound)
}
