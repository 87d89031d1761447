// Package metadata stamps generated pages with an integrity block and checks it.
//
// The block is an HTML comment appended after the page body:
//
//	<!-- METADATA_START
//	PAGE: restaurants/gracies.html
//	VALIDATION: TRUE
//	LAST_MODIFY: 2024-06-01T10:00:00Z
//	HASH: <sha256 of the page without the block>
//	METADATA_END -->
package metadata

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	// TagStart is the start of the metadata block.
	TagStart = "<!-- METADATA_START"
	// TagEnd is the end of the metadata block.
	TagEnd = "METADATA_END -->"
)

// Metadata verification errors.
var (
	ErrNoMetadataBlock = errors.New("no metadata block found")
	ErrNoHashFound     = errors.New("no hash found in metadata")
	ErrHashMismatch    = errors.New("hash mismatch")
)

// Metadata contains the page stamp.
type Metadata struct {
	LastModify time.Time
	Page       string
	Hash       string
	Validation bool
}

var metadataRegex = regexp.MustCompile(`(?s)\s*<!--\s*METADATA_START\s*\n(.*?)\n\s*METADATA_END\s*-->\s*`)

// Extract removes the metadata block from content and returns both the
// metadata and the cleaned content. The cleaned content is what gets hashed.
func Extract(content string) (*Metadata, string) {
	match := metadataRegex.FindStringSubmatch(content)
	clean := strings.TrimRight(metadataRegex.ReplaceAllString(content, "\n"), "\n")

	if len(match) < 2 {
		return nil, clean
	}

	meta := &Metadata{}

	for _, line := range strings.Split(match[1], "\n") {
		key, val, ok := strings.Cut(strings.TrimSpace(line), ":")
		if !ok {
			continue
		}

		val = strings.TrimSpace(val)

		switch strings.TrimSpace(key) {
		case "VALIDATION":
			meta.Validation = strings.EqualFold(val, "TRUE")
		case "LAST_MODIFY":
			if t, err := time.Parse(time.RFC3339, val); err == nil {
				meta.LastModify = t
			}
		case "HASH":
			meta.Hash = val
		case "PAGE":
			meta.Page = val
		}
	}

	return meta, clean
}

// CalculateHash computes the SHA-256 hash of the content without its block.
func CalculateHash(content string) string {
	_, clean := Extract(content)
	hash := sha256.Sum256([]byte(clean))

	return hex.EncodeToString(hash[:])
}

// Sign replaces any existing block with a fresh one for page.
func Sign(content, page string, validated bool, now time.Time) string {
	_, clean := Extract(content)

	valStr := "FALSE"
	if validated {
		valStr = "TRUE"
	}

	block := fmt.Sprintf("\n\n%s\nPAGE: %s\nVALIDATION: %s\nLAST_MODIFY: %s\nHASH: %s\n%s\n",
		TagStart, page, valStr, now.UTC().Format(time.RFC3339), CalculateHash(clean), TagEnd)

	return clean + block
}

// Verify checks that content matches the hash in its block.
func Verify(content string) (*Metadata, error) {
	meta, clean := Extract(content)
	if meta == nil {
		return nil, ErrNoMetadataBlock
	}

	if meta.Hash == "" {
		return meta, ErrNoHashFound
	}

	if calculated := CalculateHash(clean); calculated != meta.Hash {
		return meta, fmt.Errorf("%w: expected %s, got %s", ErrHashMismatch, meta.Hash, calculated)
	}

	return meta, nil
}
