// Package extract turns parsed HTML documents into raw tables and candidate
// child links, and normalizes raw tables into uniform records.
package extract

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/tablescrape/tablescrape/models"
)

// Tables collects every <table> element in document order. Header cells are
// the table's <th> texts; rows are the <td> texts of each <tr>, with rows
// containing no <td> cells discarded (header-only rows).
func Tables(doc *goquery.Document) []models.RawTable {
	var tables []models.RawTable

	doc.Find("table").Each(func(_ int, t *goquery.Selection) {
		var raw models.RawTable

		t.Find("th").Each(func(_ int, th *goquery.Selection) {
			raw.Headers = append(raw.Headers, strings.TrimSpace(th.Text()))
		})

		t.Find("tr").Each(func(_ int, tr *goquery.Selection) {
			cells := tr.Find("td")
			if cells.Length() == 0 {
				return
			}
			row := make([]string, 0, cells.Length())
			cells.Each(func(_ int, td *goquery.Selection) {
				row = append(row, strings.TrimSpace(td.Text()))
			})
			raw.Rows = append(raw.Rows, row)
		})

		tables = append(tables, raw)
	})

	return tables
}

// Links scans every a[href] on the page and returns the hrefs that contain
// at least one keyword substring, resolved to absolute URLs against base.
// Fragment-only self references and non-http(s) schemes are dropped.
//
// The result is deliberately not deduplicated: admission into the frontier
// is the ledger's job, and keeping this pure makes it testable without it.
func Links(doc *goquery.Document, base *url.URL, keywords []string) []string {
	var links []string

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, exists := s.Attr("href")
		if !exists || href == "" || strings.HasPrefix(href, "#") {
			return
		}

		if !containsAny(href, keywords) {
			return
		}

		resolved, err := base.Parse(href)
		if err != nil {
			return
		}
		if resolved.Scheme != "http" && resolved.Scheme != "https" {
			return
		}

		// Same-page fragment links collapse to the page itself.
		resolved.Fragment = ""
		links = append(links, resolved.String())
	})

	return links
}

func containsAny(href string, keywords []string) bool {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(href, kw) {
			return true
		}
	}
	return false
}
