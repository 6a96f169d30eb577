package orchestrator

import (
	"context"
	"encoding/json"

	"github.com/jinterlante1206/research-assistant/internal/apperr"
	"github.com/jinterlante1206/research-assistant/internal/docdiscoverer"
	"github.com/jinterlante1206/research-assistant/internal/errorparser"
	"github.com/jinterlante1206/research-assistant/internal/extractor"
	"github.com/jinterlante1206/research-assistant/internal/model"
)

// maxExtractFetchChars is generous relative to the response clamp: the
// extractor needs the whole page to find tables/lists reliably, and the
// response gets clamped separately once the extraction result is marshaled.
const maxExtractFetchChars = 200000

func handleTranslateError(ctx context.Context, o *Orchestrator, raw json.RawMessage) (string, string, error) {
	p, err := decodeParams[TranslateErrorParams](raw)
	if err != nil {
		return "", "", err
	}
	parsed, hits, err := errorparser.Translate(ctx, o.search, p.ErrorMessage, p.Language, p.Framework, orDefaultInt(p.MaxResults, 5))
	if err != nil {
		return p.Reasoning, "", err
	}
	body, err := json.Marshal(struct {
		Parsed      model.ParsedError `json:"parsed"`
		RelatedHits []model.SearchHit `json:"related_discussions"`
	}{Parsed: parsed, RelatedHits: hits})
	if err != nil {
		return p.Reasoning, "", apperr.Wrap(apperr.Internal, err, "marshaling translated error")
	}
	return p.Reasoning, string(body), nil
}

func handleAPIDocs(ctx context.Context, o *Orchestrator, raw json.RawMessage) (string, string, error) {
	p, err := decodeParams[APIDocsParams](raw)
	if err != nil {
		return "", "", err
	}
	host, err := o.docs.DiscoverHost(ctx, p.APIName)
	if err != nil {
		return p.Reasoning, "", err
	}
	pages, err := o.docs.CrawlTopic(ctx, host, p.Topic, orDefaultInt(p.MaxResults, 3))
	if err != nil {
		return p.Reasoning, "", err
	}
	doc := docdiscoverer.MineApiDoc(p.APIName, p.Topic, host, pages)
	body, err := json.Marshal(doc)
	if err != nil {
		return p.Reasoning, "", apperr.Wrap(apperr.Internal, err, "marshaling api doc")
	}
	return p.Reasoning, string(body), nil
}

func handleExtractData(ctx context.Context, o *Orchestrator, raw json.RawMessage) (string, string, error) {
	p, err := decodeParams[ExtractDataParams](raw)
	if err != nil {
		return "", "", err
	}
	html, err := o.fetch.FetchRaw(ctx, p.URL, maxExtractFetchChars)
	if err != nil {
		return p.Reasoning, "", err
	}
	kind := model.ExtractAuto
	switch p.ExtractType {
	case "table":
		kind = model.ExtractTable
	case "list":
		kind = model.ExtractList
	case "fields":
		kind = model.ExtractFields
	case "json-ld":
		kind = model.ExtractJSONLD
	}
	result, err := extractor.Extract(html, kind, extractor.Options{Selectors: p.Selectors, MaxItems: orDefaultInt(p.MaxItems, 100)})
	if err != nil {
		return p.Reasoning, "", err
	}
	body, err := json.Marshal(result)
	if err != nil {
		return p.Reasoning, "", apperr.Wrap(apperr.Internal, err, "marshaling extraction result")
	}
	return p.Reasoning, string(body), nil
}

func handleCompareTech(ctx context.Context, o *Orchestrator, raw json.RawMessage) (string, string, error) {
	p, err := decodeParams[CompareTechParams](raw)
	if err != nil {
		return "", "", err
	}
	category := model.TechCategory(p.Category)
	if category == "" {
		category = model.CategoryAuto
	}
	comparison, err := o.compare.Compare(ctx, p.Technologies, category, p.Aspects, orDefaultInt(p.MaxResultsPerTech, 3))
	if err != nil {
		return p.Reasoning, "", err
	}
	body, err := json.Marshal(comparison)
	if err != nil {
		return p.Reasoning, "", apperr.Wrap(apperr.Internal, err, "marshaling comparison")
	}
	return p.Reasoning, string(body), nil
}
