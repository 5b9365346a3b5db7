package requests

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/treelab/memfs"
	"github.com/treelab/memfs/config"
)

func writeManifest(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadManifestFile_YAML(t *testing.T) {
	path := writeManifest(t, "seed.yaml", `
- path: /docs
  type: dir
- path: /docs/readme.txt
  type: file
  content: "hello"
  perms:
    owner: 7
    group: 4
    others: 4
`)

	dtos, err := LoadManifestFile(path)
	require.NoError(t, err)
	require.Len(t, dtos, 2)

	assert.Equal(t, "/docs", dtos[0].Path)
	assert.Equal(t, memfs.DirNodeType, dtos[0].Type)
	assert.Nil(t, dtos[0].Content)

	assert.Equal(t, memfs.FileNodeType, dtos[1].Type)
	require.NotNil(t, dtos[1].Content)
	assert.Equal(t, "hello", *dtos[1].Content)
	require.NotNil(t, dtos[1].Perms)
	assert.Equal(t, memfs.Permissions{Owner: 7, Group: 4, Others: 4}, *dtos[1].Perms)
}

func TestLoadManifestFile_JSON(t *testing.T) {
	path := writeManifest(t, "seed.json",
		`[{"path": "/a", "type": "dir"}, {"path": "/a/f", "type": "file", "content": "x"}]`)

	dtos, err := LoadManifestFile(path)
	require.NoError(t, err)
	require.Len(t, dtos, 2)
	assert.Equal(t, "/a/f", dtos[1].Path)
}

func TestLoadManifestFile_Errors(t *testing.T) {
	_, err := LoadManifestFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := writeManifest(t, "seed.txt", "whatever")
	_, err = LoadManifestFile(path)
	assert.ErrorContains(t, err, "unknown manifest file extension")
}

func TestConvert_Defaults(t *testing.T) {
	cfg := config.NewDefaultConfig()
	content := "body"
	dtos := []NodeRequestDTO{
		{Path: "/d", Type: memfs.DirNodeType},
		{Path: "/d/f", Type: memfs.FileNodeType, Content: &content},
	}

	dirs, files, err := Convert(dtos, cfg)
	require.NoError(t, err)
	require.Len(t, dirs, 1)
	require.Len(t, files, 1)

	assert.Equal(t, cfg.DirPerms, dirs[0].Perms)
	assert.True(t, dirs[0].Ctime.IsZero()) // zero means construction time downstream

	assert.Equal(t, cfg.FilePerms, files[0].Perms)
	assert.Equal(t, []byte("body"), files[0].Content)
	assert.Empty(t, files[0].UUID)
}

func TestConvert_UnknownType(t *testing.T) {
	_, _, err := Convert([]NodeRequestDTO{{Path: "/x", Type: "symlink"}}, config.NewDefaultConfig())
	assert.ErrorContains(t, err, "unknown node type")
}
