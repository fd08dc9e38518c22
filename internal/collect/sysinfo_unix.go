//go:build linux || darwin || freebsd || netbsd || openbsd

package collect

import (
	"strings"

	"golang.org/x/sys/unix"
)

// uname renders the kernel identification like `uname -srm`
func uname() (string, error) {
	var u unix.Utsname
	if err := unix.Uname(&u); err != nil {
		return "", err
	}
	fields := []string{
		unix.ByteSliceToString(u.Sysname[:]),
		unix.ByteSliceToString(u.Release[:]),
		unix.ByteSliceToString(u.Machine[:]),
	}
	return strings.Join(fields, " "), nil
}
