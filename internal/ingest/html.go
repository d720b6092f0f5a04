package ingest

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Default selectors applied when an HTML source config leaves them unset.
const (
	defaultListSelector  = "article"
	defaultTitleSelector = "h2"
	defaultURLSelector   = "a"
)

// SelectorConfig tells the HTML parser where vacancy fields live on a
// listing page. Only ListSelector, TitleSelector and URLSelector have
// defaults; the rest are skipped when empty.
type SelectorConfig struct {
	ListSelector        string `json:"list_selector"`
	TitleSelector       string `json:"title_selector"`
	LocationSelector    string `json:"location_selector"`
	CompanySelector     string `json:"company_selector"`
	URLSelector         string `json:"url_selector"`
	DescriptionSelector string `json:"description_selector"`
	// ExternalIDAttr names an attribute on the list element that carries
	// the upstream identifier, e.g. "data-job-id".
	ExternalIDAttr string `json:"external_id_attr"`
}

// SelectorConfigFromMap builds a SelectorConfig from a stored source
// config, applying defaults for the selectors that must exist.
func SelectorConfigFromMap(cfg map[string]any) SelectorConfig {
	sc := SelectorConfig{
		ListSelector:        stringValue(cfg, "list_selector", defaultListSelector),
		TitleSelector:       stringValue(cfg, "title_selector", defaultTitleSelector),
		LocationSelector:    stringValue(cfg, "location_selector", ""),
		CompanySelector:     stringValue(cfg, "company_selector", ""),
		URLSelector:         stringValue(cfg, "url_selector", defaultURLSelector),
		DescriptionSelector: stringValue(cfg, "description_selector", ""),
		ExternalIDAttr:      stringValue(cfg, "external_id_attr", ""),
	}
	return sc
}

func stringValue(cfg map[string]any, key, fallback string) string {
	if raw, ok := cfg[key]; ok {
		if s, ok := raw.(string); ok && s != "" {
			return s
		}
	}
	return fallback
}

// ParseHTML extracts vacancy records from a listing page using the
// configured selectors. Relative links resolve against pageURL; elements
// without a link fall back to pageURL itself, so every record stays
// addressable.
func ParseHTML(pageURL string, r io.Reader, cfg SelectorConfig) ([]Record, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("invalid page URL %q: %w", pageURL, err)
	}

	var records []Record
	doc.Find(cfg.ListSelector).Each(func(_ int, item *goquery.Selection) {
		title := selectText(item, cfg.TitleSelector)
		if title == "" {
			title = untitled
		}

		link := pageURL
		if href := selectAttr(item, cfg.URLSelector, "href"); href != "" {
			if resolved, err := base.Parse(href); err == nil {
				link = resolved.String()
			}
		}

		externalID := ""
		if cfg.ExternalIDAttr != "" {
			externalID = strings.TrimSpace(item.AttrOr(cfg.ExternalIDAttr, ""))
		}

		records = append(records, Record{
			ExternalID:  externalID,
			Title:       title,
			Company:     selectText(item, cfg.CompanySelector),
			Location:    selectText(item, cfg.LocationSelector),
			Description: selectText(item, cfg.DescriptionSelector),
			URL:         link,
		})
	})
	return records, nil
}

// selectText returns the trimmed text of the first selector match, or ""
// when the selector is empty or matches nothing.
func selectText(item *goquery.Selection, selector string) string {
	if selector == "" {
		return ""
	}
	found := item.Find(selector)
	if found.Length() == 0 {
		return ""
	}
	return strings.TrimSpace(found.First().Text())
}

// selectAttr returns the trimmed attribute of the first selector match.
func selectAttr(item *goquery.Selection, selector, attr string) string {
	if selector == "" {
		return ""
	}
	found := item.Find(selector)
	if found.Length() == 0 {
		return ""
	}
	return strings.TrimSpace(found.First().AttrOr(attr, ""))
}
