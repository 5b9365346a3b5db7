package filesystem

import (
	"fmt"
	"io"
)

// PrintTree writes a human-readable indented listing of the whole namespace.
// Siblings print in sorted order so output is deterministic.
func (fs *FileSystem) PrintTree(w io.Writer) error {
	return printSubtree(w, fs.root, 0)
}

// PrintSubtree is PrintTree rooted at an arbitrary path.
func (fs *FileSystem) PrintSubtree(path string, w io.Writer) error {
	node, err := fs.resolveNode(path)
	if err != nil {
		return err
	}
	return printSubtree(w, node, 0)
}

func printSubtree(w io.Writer, node *Node, depth int) error {
	label := node.Name()
	if node.IsDir() && !node.IsRoot() {
		label += "/"
	}
	for i := 0; i < depth; i++ {
		label = "  " + label
	}
	if _, err := fmt.Fprintln(w, label); err != nil {
		return err
	}
	for _, name := range node.ChildNames() {
		child, ok := node.GetChild(name)
		if !ok {
			continue
		}
		if err := printSubtree(w, child, depth+1); err != nil {
			return err
		}
	}
	return nil
}
