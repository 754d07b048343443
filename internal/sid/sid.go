// Package sid provides stable, content-addressed identifiers used by the
// term interning pool to hash-cons kernel terms.
package sid

import (
	"crypto/sha256"
	"encoding/hex"
)

// SID is a stable identifier derived from a node's canonical structural
// encoding. Two nodes with the same SID are structurally identical and may
// share storage.
type SID string

// Of hashes the given structural key parts into a SID. Callers build the
// key from a node's tag plus its already-computed child SIDs (or other
// canonical scalar fields), so the hash commits to full subterm structure
// without re-serializing already-hashed subterms.
func Of(parts ...string) SID {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte{0}) // separator, avoids ambiguity between concatenated parts
		h.Write([]byte(p))
	}
	return SID(hex.EncodeToString(h.Sum(nil))[:24])
}
