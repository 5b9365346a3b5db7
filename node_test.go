package memfs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPermissions_String(t *testing.T) {
	assert.Equal(t, "rw-r--r--", Permissions{Owner: 6, Group: 4, Others: 4}.String())
	assert.Equal(t, "rwxr-xr-x", Permissions{Owner: 7, Group: 5, Others: 5}.String())
	assert.Equal(t, "---------", Permissions{}.String())
	assert.Equal(t, "rwx------", Permissions{Owner: 7}.String())
}

func TestPermissions_Octal(t *testing.T) {
	assert.Equal(t, "644", Permissions{Owner: 6, Group: 4, Others: 4}.Octal())
	assert.Equal(t, "000", Permissions{}.Octal())
}

func TestNodeInfo_IsDir(t *testing.T) {
	assert.True(t, (&NodeInfo{Type: DirNodeType}).IsDir())
	assert.False(t, (&NodeInfo{Type: FileNodeType}).IsDir())
}
