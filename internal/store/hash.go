package store

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// DomainSource is the domain prefix for source-text hashes.
// Version suffix enables future algorithm migration.
const DomainSource = "a2c/source/v1"

// SourceHash computes the content address of a source unit.
// Format: SHA256(domain + 0x00 + normalized source)
// The null byte separator prevents domain/data boundary ambiguity.
//
// The source is normalized before hashing so that representation-only
// differences do not fragment the cache:
//   - Unicode NFC normalization
//   - CRLF and bare CR line endings become LF
func SourceHash(src string) string {
	normalized := norm.NFC.String(src)
	normalized = strings.ReplaceAll(normalized, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")

	h := sha256.New()
	h.Write([]byte(DomainSource))
	h.Write([]byte{0x00})
	h.Write([]byte(normalized))
	return hex.EncodeToString(h.Sum(nil))
}
