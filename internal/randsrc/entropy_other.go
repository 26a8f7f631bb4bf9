//go:build !linux

package randsrc

import "crypto/rand"

func fillEntropy(buf []byte) {
	_, _ = rand.Read(buf)
}
