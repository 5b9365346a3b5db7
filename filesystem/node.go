package filesystem

import (
	"sort"
	"sync"

	"github.com/puzpuzpuz/xsync/v4"
)

// Node ties an [Inode] into the tree: its name, its parent, and (for
// directories) its children. A directory owns its children outright;
// detaching a child from the map drops the whole subtree.
type Node struct {
	name     string                    // Name of the node (last part of the path). Protected by mu
	parent   *Node                     // Protected by mu
	mu       sync.RWMutex              // Protects the fields above
	children *xsync.Map[string, *Node] // child nodes by name; nil for files
	*Inode
}

// NewNode creates a new Node wrapping the given inode
//
// NOTE: Parent node is responsible for adding itself to the returned Node's
// Parent ref when linking as its child
func NewNode(name string, inode *Inode) *Node {
	node := &Node{
		Inode:  inode,
		name:   name,
		parent: nil, // parent node must add this node as child
	}
	if inode.IsDir() {
		node.children = xsync.NewMap[string, *Node]()
	}
	return node
}

// Name returns the node's name.
func (n *Node) Name() string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.name
}

// rename changes the node's stored name. The caller must re-key the parent
// mapping itself; rename before AddChild.
func (n *Node) rename(name string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.name = name
}

// Path returns the absolute path of the node. Detached nodes report their
// bare name.
func (n *Node) Path() string {
	n.mu.RLock()
	p := n.parent
	name := n.name
	n.mu.RUnlock()

	if p == nil {
		return name
	}
	pPath := p.Path()
	if pPath == "/" {
		return pPath + name
	}
	return pPath + "/" + name
}

// IsRoot reports whether the node is the tree root.
func (n *Node) IsRoot() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.parent == nil && n.name == "/"
}

// AddChild adds a child node to the node's children map under the child's
// own name, sets the child's parent, and marks this directory modified.
func (n *Node) AddChild(child *Node) {
	n.children.Store(child.Name(), child)

	child.mu.Lock()
	child.parent = n
	child.mu.Unlock()

	n.Inode.Touch()
}

// GetChild returns a child node by name.
func (n *Node) GetChild(name string) (child *Node, ok bool) {
	if n.children == nil {
		return nil, false
	}
	return n.children.Load(name)
}

// HasChild reports whether a child with the given name exists.
func (n *Node) HasChild(name string) bool {
	_, ok := n.GetChild(name)
	return ok
}

// RemoveChild detaches a child by name and marks this directory modified.
// The detached subtree is destroyed unless the caller re-attaches it.
func (n *Node) RemoveChild(name string) bool {
	if n.children == nil {
		return false
	}
	if child, exists := n.children.LoadAndDelete(name); exists {
		child.mu.Lock()
		child.parent = nil
		child.mu.Unlock()

		n.Inode.Touch()
		return true
	}
	return false
}

// NumChildren returns the number of direct children.
func (n *Node) NumChildren() int {
	if n.children == nil {
		return 0
	}
	return n.children.Size()
}

// ChildNames returns the direct child names sorted ascending. Insertion
// order is never preserved.
func (n *Node) ChildNames() []string {
	if n.children == nil {
		return nil
	}
	names := make([]string, 0, n.children.Size())
	n.children.Range(func(name string, _ *Node) bool {
		names = append(names, name)
		return true
	})
	sort.Strings(names)
	return names
}

// clone deep-copies the node: fresh inode identity, identical metadata, and
// for directories every child cloned recursively. The copy shares no storage
// with the original and is returned detached. Children are attached directly
// so cloned timestamps survive untouched.
func (n *Node) clone() *Node {
	c := NewNode(n.Name(), n.Inode.cloneShallow())
	if n.children != nil {
		n.children.Range(func(name string, child *Node) bool {
			cc := child.clone()
			cc.parent = c
			c.children.Store(name, cc)
			return true
		})
	}
	return c
}
