// Package ingest implements vacancy ingestion: feed parsing for RSS, HTML
// and CSV sources, content-hash deduplication, and the merge logic that
// updates existing vacancies in place or inserts new ones while an import
// run tracks the counts.
package ingest

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// DedupKey produces a stable content hash for a vacancy that carries no
// natural external identifier. Each field is trimmed and lowercased;
// empty fields are skipped entirely before the remainder is joined with
// "|" and hashed. Records differing only in case or surrounding
// whitespace therefore collapse onto the same key.
func DedupKey(company, title, location, url string) string {
	parts := make([]string, 0, 4)
	for _, part := range []string{company, title, location, url} {
		normalized := strings.ToLower(strings.TrimSpace(part))
		if normalized != "" {
			parts = append(parts, normalized)
		}
	}
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}
