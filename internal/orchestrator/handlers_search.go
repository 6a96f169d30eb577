package orchestrator

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/jinterlante1206/research-assistant/internal/apperr"
	"github.com/jinterlante1206/research-assistant/internal/image"
	"github.com/jinterlante1206/research-assistant/internal/search"
)

func handleWebSearch(ctx context.Context, o *Orchestrator, raw json.RawMessage) (string, string, error) {
	p, err := decodeParams[WebSearchParams](raw)
	if err != nil {
		return "", "", err
	}
	hits, err := o.search.Query(ctx, search.Params{Query: p.Query, Category: orDefault(p.Category, "general"), MaxResults: orDefaultInt(p.MaxResults, 5)})
	if err != nil {
		return p.Reasoning, "", err
	}
	return p.Reasoning, search.FormatHits(hits), nil
}

func handleSearchExamples(ctx context.Context, o *Orchestrator, raw json.RawMessage) (string, string, error) {
	p, err := decodeParams[SearchExamplesParams](raw)
	if err != nil {
		return "", "", err
	}
	contentType := search.ContentBoth
	switch p.ContentType {
	case "code":
		contentType = search.ContentCode
	case "articles":
		contentType = search.ContentArticles
	}
	query := search.AugmentExamplesQuery(p.Query, contentType)
	hits, err := o.search.Query(ctx, search.Params{Query: query, Category: "it", TimeRange: orDefault(p.TimeRange, "all"), MaxResults: orDefaultInt(p.MaxResults, 5)})
	if err != nil {
		return p.Reasoning, "", err
	}
	var b strings.Builder
	for i, h := range hits {
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString(". ")
		b.WriteString(search.HostLabel(h.URL))
		b.WriteString(" ")
		b.WriteString(h.Title)
		b.WriteString("\n   ")
		b.WriteString(h.URL)
		b.WriteString("\n")
		if h.Snippet != "" {
			b.WriteString("   ")
			b.WriteString(h.Snippet)
			b.WriteString("\n")
		}
	}
	if b.Len() == 0 {
		return p.Reasoning, "No results found.", nil
	}
	return p.Reasoning, b.String(), nil
}

func handleSearchImages(ctx context.Context, o *Orchestrator, raw json.RawMessage) (string, string, error) {
	p, err := decodeParams[SearchImagesParams](raw)
	if err != nil {
		return "", "", err
	}
	results, err := o.image.Search(ctx, image.Params{
		Query:       p.Query,
		ImageType:   orDefault(p.ImageType, "all"),
		Orientation: orDefault(p.Orientation, "all"),
		MaxResults:  orDefaultInt(p.MaxResults, 10),
	})
	if err != nil {
		return p.Reasoning, "", err
	}
	body, err := json.Marshal(results)
	if err != nil {
		return p.Reasoning, "", apperr.Wrap(apperr.Internal, err, "marshaling image results")
	}
	return p.Reasoning, string(body), nil
}

func handleCrawlURL(ctx context.Context, o *Orchestrator, raw json.RawMessage) (string, string, error) {
	p, err := decodeParams[CrawlURLParams](raw)
	if err != nil {
		return "", "", err
	}
	markdown, err := o.fetch.FetchMarkdown(ctx, p.URL, orDefaultInt(p.MaxChars, 8000))
	if err != nil {
		return p.Reasoning, "", err
	}
	return p.Reasoning, markdown, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func orDefaultInt(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
