package persistence

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// Revision returns a short content hash of a stored value. Pollers compare
// revisions to detect that the other participant changed a record.
func Revision(value []byte) string {
	sum := blake2b.Sum256(value)
	return hex.EncodeToString(sum[:16])
}
