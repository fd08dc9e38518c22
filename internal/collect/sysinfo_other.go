//go:build !(linux || darwin || freebsd || netbsd || openbsd)

package collect

import "runtime"

func uname() (string, error) {
	return runtime.GOOS + " " + runtime.GOARCH, nil
}
