package store

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/text/unicode/norm"
)

// DomainProgram prefixes program content hashes.
const DomainProgram = "trajopt/program/v1"

// hashWithDomain computes SHA256(domain + 0x00 + data).
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// ContentHash returns the hash of a program text. The text is
// NFC-normalized first so equivalent Unicode spellings hash alike.
func ContentHash(text string) string {
	return hashWithDomain(DomainProgram, []byte(norm.NFC.String(text)))
}
