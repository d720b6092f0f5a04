package ingest

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

type rssFeed struct {
	Channel struct {
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	GUID        string `xml:"guid"`
	Description string `xml:"description"`
	Author      string `xml:"author"`
	Location    string `xml:"location"`
}

// ParseRSS extracts vacancy records from an RSS 2.0 feed. The item guid
// is the external id, falling back to the link; the author maps to the
// company. Items without a title become "Untitled" rather than being
// dropped.
func ParseRSS(r io.Reader) ([]Record, error) {
	var feed rssFeed
	if err := xml.NewDecoder(r).Decode(&feed); err != nil {
		return nil, fmt.Errorf("failed to parse RSS feed: %w", err)
	}

	records := make([]Record, 0, len(feed.Channel.Items))
	for _, item := range feed.Channel.Items {
		title := strings.TrimSpace(item.Title)
		if title == "" {
			title = untitled
		}
		link := strings.TrimSpace(item.Link)
		externalID := strings.TrimSpace(item.GUID)
		if externalID == "" {
			externalID = link
		}
		records = append(records, Record{
			ExternalID:  externalID,
			Title:       title,
			Company:     strings.TrimSpace(item.Author),
			Location:    strings.TrimSpace(item.Location),
			Description: strings.TrimSpace(item.Description),
			URL:         link,
		})
	}
	return records, nil
}
