package spiderkit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fwojciec/spiderkit"
)

func TestFingerprint_String(t *testing.T) {
	t.Parallel()

	var fp spiderkit.Fingerprint
	copy(fp[:], []byte{0x00, 0x01, 0xab, 0xcd})

	s := fp.String()
	assert.Len(t, s, 32)
	assert.Equal(t, "0001abcd", s[:8])
}
