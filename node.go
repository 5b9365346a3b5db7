package memfs

import (
	"fmt"
	"io"
	"time"
)

// NodeType discriminates the two node variants. Valid types are
// FileNodeType "file" and DirNodeType "dir"
type NodeType string

const (
	FileNodeType NodeType = "file"
	DirNodeType  NodeType = "dir"
)

// Permissions holds one 0-7 access triad per class. The bits are advisory
// metadata only; no operation enforces them.
type Permissions struct {
	Owner  int `yaml:"owner" json:"owner"`
	Group  int `yaml:"group" json:"group"`
	Others int `yaml:"others" json:"others"`
}

// String renders the triads in the familiar rwxr-xr-x form.
func (p Permissions) String() string {
	return triad(p.Owner) + triad(p.Group) + triad(p.Others)
}

// Octal renders the triads as a three digit octal string, i.e. "644".
func (p Permissions) Octal() string {
	return fmt.Sprintf("%d%d%d", p.Owner&7, p.Group&7, p.Others&7)
}

func triad(bits int) string {
	out := []byte("---")
	if bits&4 != 0 {
		out[0] = 'r'
	}
	if bits&2 != 0 {
		out[1] = 'w'
	}
	if bits&1 != 0 {
		out[2] = 'x'
	}
	return string(out)
}

// NodeInfo is a read-only snapshot of a node for external consumers.
// Size is the byte length for files and the child count for directories.
type NodeInfo struct {
	Name     string
	Type     NodeType
	Size     int
	Perms    Permissions
	UUID     string
	Created  time.Time
	Modified time.Time
}

// IsDir reports whether the snapshot describes a directory.
func (i *NodeInfo) IsDir() bool {
	return i.Type == DirNodeType
}

// FileSystemOperator defines the namespace operations external consumers
// (shell, tree printer, seed loader) build on
type FileSystemOperator interface {
	Mkdir(path string) error
	Touch(path string) error
	Write(path string, data []byte) error
	Append(path string, data []byte) error
	Read(path string) ([]byte, error)
	List(path string) ([]string, error)
	Remove(path string, recursive bool) error
	Move(src, dst string) error
	Copy(src, dst string) error
	Stat(path string) (*NodeInfo, error)
	Chmod(path string, perms Permissions) error
	PrintTree(w io.Writer) error
}
