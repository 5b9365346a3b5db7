package config

import "github.com/treelab/memfs/internal/util"

// Default configuration constants. See [Config] for field descriptions.
const (
	// DefaultShellPrompt is printed before each interactive shell line
	DefaultShellPrompt = "memfs"

	// DefaultConfirmRecursiveRemove controls whether the shell asks before
	// removing a populated directory tree
	DefaultConfirmRecursiveRemove = true

	DefaultLogLvl = util.InfoLevel
)

// Default permission triads. Files and directories follow the classic
// rw-r--r-- stance; the root directory is world-traversable but only
// owner-writable.
var (
	DefaultFilePerms = Perms{Owner: 6, Group: 4, Others: 4}
	DefaultDirPerms  = Perms{Owner: 6, Group: 4, Others: 4}
	DefaultRootPerms = Perms{Owner: 7, Group: 5, Others: 5}
)
