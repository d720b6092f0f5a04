package ingest

// Record is one vacancy extracted from a source feed, before merging.
// ExternalID is the upstream identifier when the source provides one;
// the merge step substitutes a content hash when it is empty.
type Record struct {
	ExternalID  string
	Title       string
	Company     string
	Location    string
	Description string
	URL         string
}

// untitled is the placeholder for records whose feed entry lacks a title.
const untitled = "Untitled"
