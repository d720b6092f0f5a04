package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ParseCSV extracts vacancy records from CSV content. The first row is a
// header; recognized columns are title, url, location, company,
// description and external_id, matched case-insensitively. Rows that fail
// to parse are skipped — a bad line never aborts the batch. The external
// id falls back to the url column when absent.
func ParseCSV(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var records []Record
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Malformed row: skip it and keep going.
			continue
		}

		field := func(name string) string {
			idx, ok := columns[name]
			if !ok || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}

		title := field("title")
		if title == "" {
			title = untitled
		}
		url := field("url")
		externalID := field("external_id")
		if externalID == "" {
			externalID = url
		}

		records = append(records, Record{
			ExternalID:  externalID,
			Title:       title,
			Company:     field("company"),
			Location:    field("location"),
			Description: field("description"),
			URL:         url,
		})
	}
	return records, nil
}
