package memfs

import "time"

// NodeRequest has common fields embedded in concrete seed request types
type NodeRequest struct {
	Path  string
	Type  NodeType
	UUID  string // Optional UUID to pin node identity at seed time
	Perms Permissions
	Ctime time.Time // Created at (Default current time)
	Mtime time.Time // Last Modified at (Default current time)
}

// FileCreateRequest seeds a file node, optionally with initial content.
type FileCreateRequest struct {
	NodeRequest
	Content []byte
}

// DirCreateRequest seeds a directory node. Missing ancestors are created
// with the same metadata.
type DirCreateRequest struct {
	NodeRequest
}
