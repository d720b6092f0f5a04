package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSV(t *testing.T) {
	content := strings.Join([]string{
		"Title,Company,Location,URL,Description,External_ID",
		"Go Developer,Acme,Berlin,https://jobs.test/1,Backend work,csv-1",
		",Acme,,https://jobs.test/2,,",
	}, "\n")

	records, err := ParseCSV(strings.NewReader(content))

	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, Record{
		ExternalID:  "csv-1",
		Title:       "Go Developer",
		Company:     "Acme",
		Location:    "Berlin",
		Description: "Backend work",
		URL:         "https://jobs.test/1",
	}, records[0])

	// Empty title becomes the placeholder; empty external id falls back
	// to the url column.
	assert.Equal(t, "Untitled", records[1].Title)
	assert.Equal(t, "https://jobs.test/2", records[1].ExternalID)
}

func TestParseCSVRaggedRows(t *testing.T) {
	content := strings.Join([]string{
		"title,url",
		"Go Developer,https://jobs.test/1,extra,columns",
		"Short Row",
	}, "\n")

	records, err := ParseCSV(strings.NewReader(content))

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Go Developer", records[0].Title)
	// The short row has no url column value; title still lands.
	assert.Equal(t, "Short Row", records[1].Title)
	assert.Empty(t, records[1].URL)
}

func TestParseCSVEmpty(t *testing.T) {
	records, err := ParseCSV(strings.NewReader(""))

	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestParseCSVHeaderOnly(t *testing.T) {
	records, err := ParseCSV(strings.NewReader("title,company\n"))

	require.NoError(t, err)
	assert.Empty(t, records)
}
