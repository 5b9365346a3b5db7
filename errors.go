package memfs

import "errors"

// Error kinds returned by namespace operations. Operations wrap these with
// the offending path; callers branch with [errors.Is].
var (
	// ErrInvalidPath means the path is empty, relative, or otherwise
	// not addressable (e.g. asking for the parent of "/").
	ErrInvalidPath = errors.New("invalid path")

	// ErrNotFound means a path segment or the final target does not exist.
	ErrNotFound = errors.New("no such node")

	// ErrNotADirectory means an intermediate segment names a file.
	ErrNotADirectory = errors.New("not a directory")

	// ErrIsADirectory means a content operation targeted a directory.
	ErrIsADirectory = errors.New("is a directory")

	// ErrAlreadyExists means a create operation hit an occupied name.
	ErrAlreadyExists = errors.New("node already exists")

	// ErrDirectoryNotEmpty means a non-recursive remove hit a populated
	// directory.
	ErrDirectoryNotEmpty = errors.New("directory not empty")

	ErrCannotRemoveRoot = errors.New("cannot remove root directory")
	ErrCannotMoveRoot   = errors.New("cannot move root directory")

	// ErrDestinationConflict means the move/copy destination name is
	// already taken under the resolved destination parent.
	ErrDestinationConflict = errors.New("destination name already taken")

	// ErrInvalidDestination means the move/copy destination lies inside
	// the source subtree (or is the source itself).
	ErrInvalidDestination = errors.New("destination inside source subtree")
)
