package requests

import (
	"time"

	"github.com/treelab/memfs"
)

// NodeRequestDTO is the manifest representation of [memfs.NodeRequest].
// A manifest is a list of these, applied directories-first.
type NodeRequestDTO struct {
	Path  string             `json:"path" yaml:"path"`
	Type  memfs.NodeType     `json:"type" yaml:"type"`
	UUID  *string            `json:"uuid,omitempty" yaml:"uuid,omitempty"`   // Optional UUID to pin node identity
	Perms *memfs.Permissions `json:"perms,omitempty" yaml:"perms,omitempty"` // Defaults per node type from config
	Ctime *time.Time         `json:"ctime,omitempty" yaml:"ctime,omitempty"` // Created at (Default current time)
	Mtime *time.Time         `json:"mtime,omitempty" yaml:"mtime,omitempty"` // Last Modified at (Default current time)

	// Content is the initial file content; only meaningful for type "file"
	Content *string `json:"content,omitempty" yaml:"content,omitempty"`
}
