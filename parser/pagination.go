package parser

import (
	"bytes"
	"regexp"
	"strconv"

	"github.com/PuerkitoBio/goquery"
)

var pageIndexPattern = regexp.MustCompile(`page=(\d+)`)

// MaxPage scans the navigation links of an already-fetched page for the
// highest page index referenced by a page=<n> query parameter. Pages
// without pagination links report 1.
func MaxPage(body []byte) int {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return 1
	}

	maxPage := 1
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok {
			return
		}
		match := pageIndexPattern.FindStringSubmatch(href)
		if match == nil {
			return
		}
		if page, err := strconv.Atoi(match[1]); err == nil && page > maxPage {
			maxPage = page
		}
	})
	return maxPage
}
