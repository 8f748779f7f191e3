package processor

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
)

const docIDPrefix = "doc:"

// DocID returns a stable record ID for the given path. The same path always
// yields the same ID, so re-processing a file updates the same stored record.
func DocID(path string) string {
	normalized := filepath.Clean(path)
	hash := sha256.Sum256([]byte(normalized))
	return docIDPrefix + hex.EncodeToString(hash[:])
}
