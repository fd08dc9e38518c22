//go:build !unix

package fsutil

import "os"

func openExclusive(path string, perm uint32) (*os.File, error) {
	return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, os.FileMode(perm))
}
