package filesystem

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/treelab/memfs"
)

// Inode carries a node's metadata and, for files, the byte payload.
// Tree linkage lives on [Node]; the split mirrors the usual inode/dentry
// separation so a future hard-link feature would not touch callers.
type Inode struct {
	id       uuid.UUID
	nodeType memfs.NodeType
	perms    memfs.Permissions
	created  time.Time
	modified time.Time
	data     []byte // file payload; nil for directories
	mu       sync.RWMutex
}

// NewInode creates an inode of the given type with a fresh UUID and both
// timestamps set to now.
func NewInode(nodeType memfs.NodeType, perms memfs.Permissions) *Inode {
	now := time.Now()
	return &Inode{
		id:       uuid.New(),
		nodeType: nodeType,
		perms:    perms,
		created:  now,
		modified: now,
	}
}

// ID returns the inode's immutable UUID.
func (n *Inode) ID() uuid.UUID {
	return n.id
}

// Type returns the node variant.
func (n *Inode) Type() memfs.NodeType {
	return n.nodeType
}

// IsDir reports whether the inode is the directory variant.
func (n *Inode) IsDir() bool {
	return n.nodeType == memfs.DirNodeType
}

// Perms returns a copy of the advisory permission triads.
func (n *Inode) Perms() memfs.Permissions {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.perms
}

// SetPerms replaces the permission triads and marks the inode modified.
func (n *Inode) SetPerms(perms memfs.Permissions) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.perms = perms
	n.modified = time.Now()
}

// Created returns the construction timestamp.
func (n *Inode) Created() time.Time {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.created
}

// Modified returns the last mutation timestamp.
func (n *Inode) Modified() time.Time {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.modified
}

// Touch updates the modified timestamp. Directories call this when their
// child table changes.
func (n *Inode) Touch() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.modified = time.Now()
}

// Size returns the payload length in bytes. Always 0 for directories.
func (n *Inode) Size() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.data)
}

// ReadAll returns a copy of the full payload.
func (n *Inode) ReadAll() []byte {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]byte, len(n.data))
	copy(out, n.data)
	return out
}

// WriteAll replaces the full payload and marks the inode modified.
func (n *Inode) WriteAll(data []byte) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.data = make([]byte, len(data))
	copy(n.data, data)
	n.modified = time.Now()
}

// AppendData appends to the payload and marks the inode modified.
func (n *Inode) AppendData(data []byte) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.data = append(n.data, data...)
	n.modified = time.Now()
}

// cloneShallow duplicates metadata and payload but allocates a fresh UUID;
// a copy is a new identity. Directory child tables are copied by
// [Node.clone], not here.
func (n *Inode) cloneShallow() *Inode {
	n.mu.RLock()
	defer n.mu.RUnlock()
	c := &Inode{
		id:       uuid.New(),
		nodeType: n.nodeType,
		perms:    n.perms,
		created:  n.created,
		modified: n.modified,
	}
	if n.data != nil {
		c.data = make([]byte, len(n.data))
		copy(c.data, n.data)
	}
	return c
}
