package filesystem

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/treelab/memfs"
	"github.com/treelab/memfs/config"
	"github.com/treelab/memfs/internal/util"
)

// FileSystem is a single-rooted in-memory namespace. Every operation
// resolves its path against the root before mutating anything, so a failed
// operation leaves the tree untouched.
//
// Per-node structures are safe to read concurrently, but the multi-step
// operation sequences assume one caller; wrap the whole FileSystem in a lock
// if several goroutines must mutate it.
type FileSystem struct {
	cfg  *config.Config
	root *Node // Root of node tree; name "/", no parent
}

// NewFS creates an empty namespace with a root directory named "/".
func NewFS(cfg *config.Config) *FileSystem {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	root := NewNode("/", NewInode(memfs.DirNodeType, cfg.RootPerms))
	return &FileSystem{cfg: cfg, root: root}
}

// Root returns the root node.
func (fs *FileSystem) Root() *Node {
	return fs.root
}

/* ----------------------------- Resolution ----------------------------- */

// splitPath parses an absolute path into its segments. Repeated separators
// collapse, so "//a//b/" and "/a/b" are equivalent. Segments are literal
// names; "." and ".." get no special handling.
func splitPath(path string) ([]string, error) {
	if path == "" || path[0] != '/' {
		return nil, fmt.Errorf("%q: %w", path, memfs.ErrInvalidPath)
	}
	var segs []string
	for _, seg := range strings.Split(path, "/") {
		if seg != "" {
			segs = append(segs, seg)
		}
	}
	return segs, nil
}

// resolveNode walks every segment from the root and returns the node the
// path names. "/" resolves to the root directly.
func (fs *FileSystem) resolveNode(path string) (*Node, error) {
	segs, err := splitPath(path)
	if err != nil {
		return nil, err
	}
	cur := fs.root
	for _, seg := range segs {
		if !cur.IsDir() {
			return nil, fmt.Errorf("%s: %s: %w", path, cur.Name(), memfs.ErrNotADirectory)
		}
		child, ok := cur.GetChild(seg)
		if !ok {
			return nil, fmt.Errorf("%s: %w", path, memfs.ErrNotFound)
		}
		cur = child
	}
	return cur, nil
}

// resolveParent walks all but the last segment and returns the directory
// reached plus the final segment as a bare name, which need not exist yet.
// The root path has no parent/base-name pair and reports ErrInvalidPath.
func (fs *FileSystem) resolveParent(path string) (*Node, string, error) {
	segs, err := splitPath(path)
	if err != nil {
		return nil, "", err
	}
	if len(segs) == 0 {
		return nil, "", fmt.Errorf("%q: root has no parent: %w", path, memfs.ErrInvalidPath)
	}
	cur := fs.root
	for _, seg := range segs[:len(segs)-1] {
		if !cur.IsDir() {
			return nil, "", fmt.Errorf("%s: %s: %w", path, cur.Name(), memfs.ErrNotADirectory)
		}
		child, ok := cur.GetChild(seg)
		if !ok {
			return nil, "", fmt.Errorf("%s: %w", path, memfs.ErrNotFound)
		}
		cur = child
	}
	if !cur.IsDir() {
		return nil, "", fmt.Errorf("%s: %s: %w", path, cur.Name(), memfs.ErrNotADirectory)
	}
	return cur, segs[len(segs)-1], nil
}

// hasSegmentPrefix reports whether dst lies within the subtree named by src,
// src itself included.
func hasSegmentPrefix(dst, src []string) bool {
	if len(dst) < len(src) {
		return false
	}
	for i := range src {
		if dst[i] != src[i] {
			return false
		}
	}
	return true
}

/* ---------------------------- Entry creation ---------------------------- */

// createEntry inserts a new empty node of the given type under the target's
// parent directory.
func (fs *FileSystem) createEntry(path string, nodeType memfs.NodeType) (*Node, error) {
	parent, name, err := fs.resolveParent(path)
	if err != nil {
		return nil, err
	}
	if parent.HasChild(name) {
		return nil, fmt.Errorf("%s: %w", path, memfs.ErrAlreadyExists)
	}

	perms := fs.cfg.FilePerms
	if nodeType == memfs.DirNodeType {
		perms = fs.cfg.DirPerms
	}
	node := NewNode(name, NewInode(nodeType, perms))
	parent.AddChild(node)
	return node, nil
}

// Mkdir creates an empty directory at path. Ancestors must already exist.
func (fs *FileSystem) Mkdir(path string) error {
	logger := util.GetLogger("FS.Mkdir")
	node, err := fs.createEntry(path, memfs.DirNodeType)
	if err != nil {
		logger.Error().Err(err).Str("path", path).Msg("Failed to create directory")
		return err
	}
	logger.Debug().Str("path", path).Str("uuid", node.ID().String()).Msg("Created directory")
	return nil
}

// Touch creates an empty file at path. Ancestors must already exist.
func (fs *FileSystem) Touch(path string) error {
	logger := util.GetLogger("FS.Touch")
	node, err := fs.createEntry(path, memfs.FileNodeType)
	if err != nil {
		logger.Error().Err(err).Str("path", path).Msg("Failed to create file")
		return err
	}
	logger.Debug().Str("path", path).Str("uuid", node.ID().String()).Msg("Created file")
	return nil
}

/* --------------------------- Content operations --------------------------- */

// Write replaces a file's entire content. A missing file is created first
// (write-creates); only a missing final segment triggers creation, a missing
// ancestor still fails.
func (fs *FileSystem) Write(path string, data []byte) error {
	logger := util.GetLogger("FS.Write")

	node, err := fs.resolveNode(path)
	switch {
	case err == nil:
		if node.IsDir() {
			err = fmt.Errorf("%s: %w", path, memfs.ErrIsADirectory)
			logger.Error().Err(err).Str("path", path).Msg("Failed to write")
			return err
		}
	case errors.Is(err, memfs.ErrNotFound):
		// Only a not-found target falls back to creation; anything else
		// (bad path, file in the middle) propagates untouched.
		if node, err = fs.createEntry(path, memfs.FileNodeType); err != nil {
			logger.Error().Err(err).Str("path", path).Msg("Failed to write-create")
			return err
		}
	default:
		logger.Error().Err(err).Str("path", path).Msg("Failed to write")
		return err
	}

	node.WriteAll(data)
	logger.Debug().Str("path", path).Int("bytes", len(data)).Msg("Wrote file")
	return nil
}

// Append appends to a file's content, creating the file first when absent,
// like Write.
func (fs *FileSystem) Append(path string, data []byte) error {
	logger := util.GetLogger("FS.Append")

	node, err := fs.resolveNode(path)
	switch {
	case err == nil:
		if node.IsDir() {
			err = fmt.Errorf("%s: %w", path, memfs.ErrIsADirectory)
			logger.Error().Err(err).Str("path", path).Msg("Failed to append")
			return err
		}
	case errors.Is(err, memfs.ErrNotFound):
		if node, err = fs.createEntry(path, memfs.FileNodeType); err != nil {
			logger.Error().Err(err).Str("path", path).Msg("Failed to append-create")
			return err
		}
	default:
		logger.Error().Err(err).Str("path", path).Msg("Failed to append")
		return err
	}

	node.AppendData(data)
	logger.Debug().Str("path", path).Int("bytes", len(data)).Msg("Appended to file")
	return nil
}

// Read returns a copy of a file's full content.
func (fs *FileSystem) Read(path string) ([]byte, error) {
	node, err := fs.resolveNode(path)
	if err != nil {
		return nil, err
	}
	if node.IsDir() {
		return nil, fmt.Errorf("%s: %w", path, memfs.ErrIsADirectory)
	}
	return node.ReadAll(), nil
}

/* ------------------------------- Listing ------------------------------- */

// List returns a directory's child names sorted ascending. Listing a file
// returns a single-element slice holding the file's own name.
func (fs *FileSystem) List(path string) ([]string, error) {
	node, err := fs.resolveNode(path)
	if err != nil {
		return nil, err
	}
	if !node.IsDir() {
		return []string{node.Name()}, nil
	}
	names := node.ChildNames()
	if names == nil {
		names = []string{}
	}
	return names, nil
}

/* ------------------------------- Removal ------------------------------- */

// Remove detaches the entry at path from its parent, destroying the subtree.
// A populated directory needs recursive=true.
func (fs *FileSystem) Remove(path string, recursive bool) error {
	logger := util.GetLogger("FS.Remove")

	segs, err := splitPath(path)
	if err != nil {
		return err
	}
	if len(segs) == 0 {
		return fmt.Errorf("%s: %w", path, memfs.ErrCannotRemoveRoot)
	}

	parent, name, err := fs.resolveParent(path)
	if err != nil {
		return err
	}
	child, ok := parent.GetChild(name)
	if !ok {
		return fmt.Errorf("%s: %w", path, memfs.ErrNotFound)
	}
	if child.IsDir() && child.NumChildren() > 0 && !recursive {
		return fmt.Errorf("%s: %w", path, memfs.ErrDirectoryNotEmpty)
	}

	parent.RemoveChild(name)
	logger.Debug().Str("path", path).Bool("recursive", recursive).Msg("Removed node")
	return nil
}

/* -------------------------------- Move -------------------------------- */

// Move detaches the node at src and re-attaches it per the destination
// priority: into an existing directory under its original name, onto an
// existing file (which is replaced), or at a not-yet-existing path under the
// destination's parent. Moving a node into its own subtree is rejected with
// ErrInvalidDestination before any mutation.
func (fs *FileSystem) Move(src, dst string) error {
	logger := util.GetLogger("FS.Move")

	srcSegs, err := splitPath(src)
	if err != nil {
		return err
	}
	if len(srcSegs) == 0 {
		return fmt.Errorf("%s: %w", src, memfs.ErrCannotMoveRoot)
	}
	dstSegs, err := splitPath(dst)
	if err != nil {
		return err
	}
	if hasSegmentPrefix(dstSegs, srcSegs) {
		return fmt.Errorf("%s -> %s: %w", src, dst, memfs.ErrInvalidDestination)
	}

	srcParent, srcName, err := fs.resolveParent(src)
	if err != nil {
		return err
	}
	srcNode, ok := srcParent.GetChild(srcName)
	if !ok {
		return fmt.Errorf("%s: %w", src, memfs.ErrNotFound)
	}

	destNode, err := fs.resolveNode(dst)
	switch {
	case err == nil && destNode.IsDir():
		// Attach under the destination directory, keeping the source's name.
		if destNode.HasChild(srcName) {
			return fmt.Errorf("%s/%s: %w", dst, srcName, memfs.ErrDestinationConflict)
		}
		srcParent.RemoveChild(srcName)
		destNode.AddChild(srcNode)

	case err == nil:
		// Destination names an existing file: destroy and replace it.
		dstParent, dstName, perr := fs.resolveParent(dst)
		if perr != nil {
			return perr
		}
		srcParent.RemoveChild(srcName)
		dstParent.RemoveChild(dstName)
		srcNode.rename(dstName)
		dstParent.AddChild(srcNode)

	case errors.Is(err, memfs.ErrNotFound):
		dstParent, dstName, perr := fs.resolveParent(dst)
		if perr != nil {
			return perr
		}
		if dstParent.HasChild(dstName) {
			return fmt.Errorf("%s: %w", dst, memfs.ErrDestinationConflict)
		}
		srcParent.RemoveChild(srcName)
		srcNode.rename(dstName)
		dstParent.AddChild(srcNode)

	default:
		return err
	}

	logger.Debug().Str("src", src).Str("dst", dst).Msg("Moved node")
	return nil
}

/* -------------------------------- Copy -------------------------------- */

// Copy deep-copies the node at src and attaches the copy per the same
// destination priority as Move, except an existing destination file is
// rejected rather than replaced and the source is never detached. Every
// copied node gets a fresh UUID and independent storage.
func (fs *FileSystem) Copy(src, dst string) error {
	logger := util.GetLogger("FS.Copy")

	srcSegs, err := splitPath(src)
	if err != nil {
		return err
	}
	dstSegs, err := splitPath(dst)
	if err != nil {
		return err
	}
	// Copying a directory into its own subtree would recurse forever; the
	// root is everything's ancestor, so it can never be a copy source.
	if hasSegmentPrefix(dstSegs, srcSegs) {
		return fmt.Errorf("%s -> %s: %w", src, dst, memfs.ErrInvalidDestination)
	}

	srcNode, err := fs.resolveNode(src)
	if err != nil {
		return err
	}

	destNode, err := fs.resolveNode(dst)
	switch {
	case err == nil && destNode.IsDir():
		if destNode.HasChild(srcNode.Name()) {
			return fmt.Errorf("%s/%s: %w", dst, srcNode.Name(), memfs.ErrDestinationConflict)
		}
		destNode.AddChild(srcNode.clone())

	case err == nil:
		// Copying onto an existing file is rejected, unlike Move.
		return fmt.Errorf("%s: %w", dst, memfs.ErrDestinationConflict)

	case errors.Is(err, memfs.ErrNotFound):
		dstParent, dstName, perr := fs.resolveParent(dst)
		if perr != nil {
			return perr
		}
		if dstParent.HasChild(dstName) {
			return fmt.Errorf("%s: %w", dst, memfs.ErrDestinationConflict)
		}
		cp := srcNode.clone()
		cp.rename(dstName)
		dstParent.AddChild(cp)

	default:
		return err
	}

	logger.Debug().Str("src", src).Str("dst", dst).Msg("Copied node")
	return nil
}

/* ------------------------------- Metadata ------------------------------- */

// Stat returns a read-only snapshot of the node at path.
func (fs *FileSystem) Stat(path string) (*memfs.NodeInfo, error) {
	node, err := fs.resolveNode(path)
	if err != nil {
		return nil, err
	}
	info := &memfs.NodeInfo{
		Name:     node.Name(),
		Type:     node.Type(),
		Perms:    node.Perms(),
		UUID:     node.ID().String(),
		Created:  node.Created(),
		Modified: node.Modified(),
	}
	if node.IsDir() {
		info.Size = node.NumChildren()
	} else {
		info.Size = node.Size()
	}
	return info, nil
}

// Chmod replaces the advisory permission triads on the node at path.
// The bits are stored and rendered but never enforced.
func (fs *FileSystem) Chmod(path string, perms memfs.Permissions) error {
	node, err := fs.resolveNode(path)
	if err != nil {
		return err
	}
	node.SetPerms(perms)
	return nil
}

/* ------------------------------- Seeding ------------------------------- */

// AddDirNode recursively adds all missing directories starting at the root
// in the request's path and returns the leaf.
// It is equivalent to calling `mkdir -p` from a shell and similarly will only
// create directories that do not already exist and will not error if the
// leaf already exists.
func (fs *FileSystem) AddDirNode(req *memfs.DirCreateRequest) (*Node, error) {
	logger := util.GetLogger("FS.AddDirNode")

	segs, err := splitPath(req.Path)
	if err != nil {
		return nil, err
	}

	cur := fs.root
	newCnt := 0
	leafCreated := false
	// Traverse the path until we get to existing dir and make
	// any missing along the way
	for _, name := range segs {
		if child, ok := cur.GetChild(name); ok {
			if !child.IsDir() {
				return nil, fmt.Errorf("%s: %s: %w", req.Path, name, memfs.ErrNotADirectory)
			}
			cur = child
			leafCreated = false
			continue
		}
		node := NewNode(name, NewInode(memfs.DirNodeType, req.Perms))
		cur.AddChild(node)
		newCnt++
		leafCreated = true
		cur = node
	}
	if leafCreated {
		if err := stampSeed(cur.Inode, req.NodeRequest); err != nil {
			return nil, err
		}
	}
	if newCnt > 0 {
		logger.Debug().Str("path", req.Path).Int("created", newCnt).Msg("Created directories")
	}
	return cur, nil
}

// AddFileNode adds a new file node to the filesystem, creating any missing
// directories in the path, and returns the newly created leaf node.
// If a node already exists at the requested path, it will return an error.
func (fs *FileSystem) AddFileNode(req *memfs.FileCreateRequest) (*Node, error) {
	logger := util.GetLogger("FS.AddFileNode")

	segs, err := splitPath(req.Path)
	if err != nil {
		return nil, err
	}
	if len(segs) == 0 {
		return nil, fmt.Errorf("%q: %w", req.Path, memfs.ErrInvalidPath)
	}

	parent := fs.root
	if len(segs) > 1 {
		// Implicit dir requests reuse the embedded node values with the
		// directory defaults and their own path
		dirReq := memfs.DirCreateRequest{NodeRequest: req.NodeRequest}
		dirReq.Path = "/" + strings.Join(segs[:len(segs)-1], "/")
		dirReq.UUID = "" // pinned identity belongs to the leaf only
		dirReq.Perms = fs.cfg.DirPerms
		dNode, err := fs.AddDirNode(&dirReq)
		if err != nil {
			logger.Error().Err(err).Str("path", dirReq.Path).Msg("Failed to create file's ancestor directory(s)")
			return nil, err
		}
		parent = dNode
	}

	name := segs[len(segs)-1]
	if parent.HasChild(name) {
		err := fmt.Errorf("%s: %w", req.Path, memfs.ErrAlreadyExists)
		logger.Error().Err(err).Str("path", req.Path).Msg("Failed to create file")
		return nil, err
	}

	inode := NewInode(memfs.FileNodeType, req.Perms)
	if len(req.Content) > 0 {
		// Set directly so seeded timestamps survive the content write
		inode.data = append([]byte(nil), req.Content...)
	}
	if err := stampSeed(inode, req.NodeRequest); err != nil {
		return nil, err
	}

	node := NewNode(name, inode)
	parent.AddChild(node)
	logger.Debug().Str("path", req.Path).Msg("Added new file node")
	return node, nil
}

// stampSeed applies optional seed-time identity and timestamps to an inode.
func stampSeed(ino *Inode, req memfs.NodeRequest) error {
	if req.UUID != "" {
		id, err := uuid.Parse(req.UUID)
		if err != nil {
			return fmt.Errorf("invalid uuid %q: %w", req.UUID, err)
		}
		ino.id = id
	}
	ino.mu.Lock()
	defer ino.mu.Unlock()
	if !req.Ctime.IsZero() {
		ino.created = req.Ctime
	}
	if !req.Mtime.IsZero() {
		ino.modified = req.Mtime
	}
	return nil
}
