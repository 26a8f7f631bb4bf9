//go:build linux

package randsrc

import (
	"crypto/rand"

	"golang.org/x/sys/unix"
)

// fillEntropy reads from getrandom(2), falling back to crypto/rand on a short
// read or error.
func fillEntropy(buf []byte) {
	n, err := unix.Getrandom(buf, unix.GRND_NONBLOCK)
	if err == nil && n == len(buf) {
		return
	}
	_, _ = rand.Read(buf)
}
