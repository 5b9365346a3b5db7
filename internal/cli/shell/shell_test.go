package shell

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/treelab/memfs"
	"github.com/treelab/memfs/config"
	"github.com/treelab/memfs/filesystem"
)

func newTestShell(t *testing.T) (*Shell, *filesystem.FileSystem, *bytes.Buffer) {
	t.Helper()
	cfg := config.NewDefaultConfig()
	fs := filesystem.NewFS(cfg)
	out := &bytes.Buffer{}
	sh := New(fs, cfg, strings.NewReader(""), out)
	sh.ConfirmFn = func(label string, force bool) (bool, error) { return true, nil }
	return sh, fs, out
}

func TestShell_Exec_BasicFlow(t *testing.T) {
	sh, fs, out := newTestShell(t)

	require.NoError(t, sh.Exec("mkdir /docs"))
	require.NoError(t, sh.Exec("write /docs/note.txt hello world"))
	require.NoError(t, sh.Exec("append /docs/note.txt again"))
	require.NoError(t, sh.Exec("cat /docs/note.txt"))

	assert.Equal(t, "hello worldagain\n", out.String())

	data, err := fs.Read("/docs/note.txt")
	require.NoError(t, err)
	assert.Equal(t, []byte("hello worldagain"), data)
}

func TestShell_Ls(t *testing.T) {
	sh, fs, out := newTestShell(t)
	require.NoError(t, fs.Mkdir("/d"))
	require.NoError(t, fs.Touch("/d/b"))
	require.NoError(t, fs.Touch("/d/a"))

	require.NoError(t, sh.Exec("ls /d"))
	assert.Equal(t, "a\nb\n", out.String())

	out.Reset()
	require.NoError(t, sh.Exec("ls -l /d"))
	long := out.String()
	assert.Contains(t, long, "NAME")
	assert.Contains(t, long, "rw-r--r--")
}

func TestShell_Rm_ConfirmDeclined(t *testing.T) {
	sh, fs, _ := newTestShell(t)
	declined := false
	sh.ConfirmFn = func(label string, force bool) (bool, error) {
		declined = true
		assert.False(t, force)
		return false, nil
	}

	require.NoError(t, fs.Mkdir("/d"))
	require.NoError(t, fs.Touch("/d/f"))

	require.NoError(t, sh.Exec("rm -r /d"))
	assert.True(t, declined)

	// Declining leaves the tree untouched
	_, err := fs.List("/d")
	assert.NoError(t, err)
}

func TestShell_Rm_Confirmed(t *testing.T) {
	sh, fs, _ := newTestShell(t)
	require.NoError(t, fs.Mkdir("/d"))
	require.NoError(t, fs.Touch("/d/f"))

	require.NoError(t, sh.Exec("rm -r /d"))

	_, err := fs.List("/d")
	assert.ErrorIs(t, err, memfs.ErrNotFound)
}

func TestShell_Rm_ForcePassedThrough(t *testing.T) {
	sh, fs, _ := newTestShell(t)
	var gotForce bool
	sh.ConfirmFn = func(label string, force bool) (bool, error) {
		gotForce = force
		return true, nil
	}
	require.NoError(t, fs.Mkdir("/d"))
	require.NoError(t, fs.Touch("/d/f"))

	require.NoError(t, sh.Exec("rm -r -f /d"))
	assert.True(t, gotForce)
}

func TestShell_Rm_NoConfirmForFiles(t *testing.T) {
	sh, fs, _ := newTestShell(t)
	sh.ConfirmFn = func(label string, force bool) (bool, error) {
		t.Fatal("confirm must not be called for plain files")
		return false, nil
	}
	require.NoError(t, fs.Touch("/f"))
	require.NoError(t, sh.Exec("rm /f"))
}

func TestShell_MoveCopy(t *testing.T) {
	sh, fs, _ := newTestShell(t)
	require.NoError(t, fs.Mkdir("/a"))
	require.NoError(t, fs.Mkdir("/b"))
	require.NoError(t, fs.Write("/a/f", []byte("x")))

	require.NoError(t, sh.Exec("cp /a/f /a/g"))
	require.NoError(t, sh.Exec("mv /a/f /b"))

	names, err := fs.List("/a")
	require.NoError(t, err)
	assert.Equal(t, []string{"g"}, names)
	names, err = fs.List("/b")
	require.NoError(t, err)
	assert.Equal(t, []string{"f"}, names)
}

func TestShell_ChmodStat(t *testing.T) {
	sh, fs, out := newTestShell(t)
	require.NoError(t, fs.Touch("/f"))

	require.NoError(t, sh.Exec("chmod 750 /f"))
	require.NoError(t, sh.Exec("stat /f"))

	assert.Contains(t, out.String(), "rwxr-x---")
	assert.Contains(t, out.String(), "750")

	info, err := fs.Stat("/f")
	require.NoError(t, err)
	assert.Equal(t, memfs.Permissions{Owner: 7, Group: 5, Others: 0}, info.Perms)
}

func TestShell_Tree(t *testing.T) {
	sh, fs, out := newTestShell(t)
	require.NoError(t, fs.Mkdir("/a"))
	require.NoError(t, fs.Touch("/a/f"))

	require.NoError(t, sh.Exec("tree"))
	assert.Equal(t, "/\n  a/\n    f\n", out.String())

	out.Reset()
	require.NoError(t, sh.Exec("tree /a"))
	assert.Equal(t, "a/\n  f\n", out.String())
}

func TestShell_Errors(t *testing.T) {
	sh, _, _ := newTestShell(t)

	assert.ErrorContains(t, sh.Exec("frobnicate /x"), "unknown command")
	assert.ErrorContains(t, sh.Exec("mkdir"), "usage")
	assert.ErrorContains(t, sh.Exec("chmod 9z9 /f"), "invalid mode")
	assert.ErrorIs(t, sh.Exec("cat /nope"), memfs.ErrNotFound)
	assert.NoError(t, sh.Exec("   ")) // blank lines are no-ops
}

func TestShell_Run_Exit(t *testing.T) {
	cfg := config.NewDefaultConfig()
	fs := filesystem.NewFS(cfg)
	out := &bytes.Buffer{}
	sh := New(fs, cfg, strings.NewReader("mkdir /a\nexit\n"), out)

	require.NoError(t, sh.Run())
	assert.Contains(t, out.String(), cfg.ShellPrompt+"> ")

	_, err := fs.List("/a")
	assert.NoError(t, err)
}

func TestParseOctalPerms(t *testing.T) {
	perms, err := parseOctalPerms("644")
	require.NoError(t, err)
	assert.Equal(t, memfs.Permissions{Owner: 6, Group: 4, Others: 4}, perms)

	_, err = parseOctalPerms("64")
	assert.Error(t, err)
	_, err = parseOctalPerms("888")
	assert.Error(t, err)
}
