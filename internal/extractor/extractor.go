// Package extractor implements the Extractor (spec §4.8): parsing an HTML
// document into tables, lists, field maps, or embedded JSON-LD, using
// goquery for DOM traversal and textutil.Sanitize on every returned string.
package extractor

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jinterlante1206/research-assistant/internal/apperr"
	"github.com/jinterlante1206/research-assistant/internal/model"
	"github.com/jinterlante1206/research-assistant/internal/textutil"
)

// Options configures the fields mode's per-field CSS selectors.
type Options struct {
	Selectors map[string]string
	MaxItems  int
}

// Extract parses htmlContent according to kind and returns the result.
func Extract(htmlContent string, kind model.ExtractionKind, opts Options) (model.ExtractionResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return model.ExtractionResult{}, apperr.Wrap(apperr.UpstreamMalformed, err, "parsing html for extraction")
	}

	maxItems := opts.MaxItems
	if maxItems <= 0 {
		maxItems = 100
	}

	switch kind {
	case model.ExtractTable:
		return model.ExtractionResult{Kind: model.ExtractTable, Tables: extractTables(doc, maxItems)}, nil
	case model.ExtractList:
		return model.ExtractionResult{Kind: model.ExtractList, Lists: extractLists(doc, maxItems)}, nil
	case model.ExtractFields:
		return model.ExtractionResult{Kind: model.ExtractFields, Fields: extractFields(doc, opts.Selectors)}, nil
	case model.ExtractJSONLD:
		return model.ExtractionResult{Kind: model.ExtractJSONLD, JSONLD: extractJSONLD(doc)}, nil
	case model.ExtractAuto:
		return extractAuto(doc), nil
	default:
		return model.ExtractionResult{}, apperr.Newf(apperr.InputInvalid, "unknown extraction kind %q", kind)
	}
}

func extractAuto(doc *goquery.Document) model.ExtractionResult {
	result := model.ExtractionResult{Kind: model.ExtractAuto}
	if jsonLD := extractJSONLD(doc); len(jsonLD) > 0 {
		result.JSONLD = jsonLD
	}
	result.Tables = extractTables(doc, 3)
	result.Lists = extractLists(doc, 3)
	return result
}

func extractTables(doc *goquery.Document, maxItems int) []model.TableData {
	var tables []model.TableData
	doc.Find("table").EachWithBreak(func(i int, table *goquery.Selection) bool {
		if i >= maxItems {
			return false
		}
		headers := tableHeaders(table)
		var rows []map[string]string
		table.Find("tbody tr, tr").Each(func(_ int, tr *goquery.Selection) {
			if tr.Find("th").Length() > 0 && tr.Find("td").Length() == 0 {
				return // header row already consumed
			}
			var cells []string
			tr.Find("td").Each(func(_ int, td *goquery.Selection) {
				cells = append(cells, textutil.Sanitize(td.Text()))
			})
			if len(cells) == 0 || len(cells) != len(headers) {
				return
			}
			row := make(map[string]string, len(headers))
			for i, h := range headers {
				row[h] = cells[i]
			}
			rows = append(rows, row)
		})
		caption := textutil.Sanitize(table.Find("caption").First().Text())
		tables = append(tables, model.TableData{Caption: caption, Headers: headers, Rows: rows})
		return true
	})
	return tables
}

func tableHeaders(table *goquery.Selection) []string {
	var headers []string
	theadThs := table.Find("thead th")
	if theadThs.Length() > 0 {
		theadThs.Each(func(_ int, th *goquery.Selection) {
			headers = append(headers, textutil.Sanitize(th.Text()))
		})
		return headers
	}
	firstRowThs := table.Find("tr").First().Find("th")
	firstRowThs.Each(func(_ int, th *goquery.Selection) {
		headers = append(headers, textutil.Sanitize(th.Text()))
	})
	return headers
}

func extractLists(doc *goquery.Document, maxItems int) []model.ListData {
	var lists []model.ListData
	doc.Find("ul, ol, dl").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		if i >= maxItems {
			return false
		}
		title := nearestPrecedingHeading(sel)
		var items []string
		nested := false
		tag := goquery.NodeName(sel)
		if tag == "dl" {
			var pendingTerm string
			sel.Children().Each(func(_ int, child *goquery.Selection) {
				switch goquery.NodeName(child) {
				case "dt":
					pendingTerm = textutil.Sanitize(child.Text())
				case "dd":
					items = append(items, pendingTerm+": "+textutil.Sanitize(child.Text()))
				}
			})
		} else {
			sel.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
				if li.Find("ul, ol").Length() > 0 {
					nested = true
				}
				items = append(items, textutil.Sanitize(directTextOf(li)))
			})
		}
		lists = append(lists, model.ListData{Title: title, Items: items, Nested: nested})
		return true
	})
	return lists
}

func nearestPrecedingHeading(sel *goquery.Selection) string {
	prev := sel.Prev()
	for prev.Length() > 0 {
		switch goquery.NodeName(prev) {
		case "h1", "h2", "h3", "h4", "h5", "h6":
			return textutil.Sanitize(prev.Text())
		}
		prev = prev.Prev()
	}
	return ""
}

// directTextOf returns a <li>'s own text, excluding nested list content,
// so a nested sublist doesn't pollute the parent item's text.
func directTextOf(li *goquery.Selection) string {
	clone := li.Clone()
	clone.Find("ul, ol").Remove()
	return clone.Text()
}

func extractFields(doc *goquery.Document, selectors map[string]string) map[string]any {
	fields := make(map[string]any, len(selectors))
	for name, selector := range selectors {
		matches := doc.Find(selector)
		switch matches.Length() {
		case 0:
			continue
		case 1:
			fields[name] = textutil.Sanitize(matches.First().Text())
		default:
			var values []string
			matches.Each(func(_ int, s *goquery.Selection) {
				values = append(values, textutil.Sanitize(s.Text()))
			})
			fields[name] = values
		}
	}
	return fields
}

func extractJSONLD(doc *goquery.Document) []any {
	var objects []any
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		var parsed any
		if err := json.Unmarshal([]byte(s.Text()), &parsed); err != nil {
			return
		}
		objects = append(objects, parsed)
	})
	return objects
}
