package docdiscoverer

import (
	"regexp"
	"strings"

	"github.com/jinterlante1206/research-assistant/internal/model"
	"github.com/jinterlante1206/research-assistant/internal/textutil"
)

var (
	codeFencePattern  = regexp.MustCompile("(?s)```([A-Za-z0-9_+-]*)\\n(.*?)```")
	paramLinePattern  = regexp.MustCompile(`^[-*]?\s*` + "`?" + `([A-Za-z_][A-Za-z0-9_.]*)` + "`?" + `\s*\(([A-Za-z0-9_\[\]<> ,|]+)\)\s*[-:]\s*(.+)$`)
	noteLinePattern   = regexp.MustCompile(`(?i)^\s*(?:>|\*\*)?\s*(note|warning|tip|caution)s?\s*[:\)]\s*(.+)$`)
	markdownLinkRegex = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
)

// MineApiDoc extracts overview, parameters, code examples, notes, and
// related links from a set of crawled markdown pages, following spec
// §4.7/§4.8's mining rules: first substantive paragraph as overview,
// regex-mined name/type/description triples as parameters, fenced code
// blocks as examples, warning/tip lines as notes, and in-page links as
// related links (a relative link is joined to the page's scheme and host,
// not to the page's path).
func MineApiDoc(apiName, topic, docsBaseURL string, pages map[string]string) model.ApiDoc {
	doc := model.ApiDoc{APIName: apiName, Topic: topic, DocsBaseURL: docsBaseURL}

	for sourceURL, markdown := range pages {
		doc.Sources = append(doc.Sources, sourceURL)

		if doc.Overview == "" {
			doc.Overview = firstSubstantiveParagraph(markdown)
		}

		for _, m := range codeFencePattern.FindAllStringSubmatch(markdown, -1) {
			doc.Examples = append(doc.Examples, model.ApiDocExample{
				Language: m[1],
				Code:     strings.TrimSpace(m[2]),
			})
		}

		for _, line := range strings.Split(markdown, "\n") {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" {
				continue
			}
			if m := paramLinePattern.FindStringSubmatch(trimmed); m != nil {
				doc.Parameters = append(doc.Parameters, model.DocParameter{
					Name:        m[1],
					Type:        m[2],
					Description: textutil.Sanitize(m[3]),
				})
				continue
			}
			if m := noteLinePattern.FindStringSubmatch(trimmed); m != nil {
				doc.Notes = append(doc.Notes, textutil.Sanitize(m[2]))
			}
		}

		for _, m := range markdownLinkRegex.FindAllStringSubmatch(markdown, -1) {
			url := resolveLink(sourceURL, m[2])
			if url == "" {
				continue
			}
			doc.RelatedLinks = append(doc.RelatedLinks, model.ApiDocLink{Title: textutil.Sanitize(m[1]), URL: url})
		}
	}

	return doc
}

func firstSubstantiveParagraph(markdown string) string {
	for _, para := range strings.Split(markdown, "\n\n") {
		trimmed := strings.TrimSpace(para)
		if len(trimmed) < 40 {
			continue
		}
		if strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "```") {
			continue
		}
		return textutil.Sanitize(trimmed)
	}
	return ""
}

func resolveLink(base, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return ""
	}
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	idx := strings.Index(base, "://")
	if idx < 0 {
		return href
	}
	schemeHost := base[:idx+3]
	rest := base[idx+3:]
	hostEnd := strings.Index(rest, "/")
	if hostEnd < 0 {
		hostEnd = len(rest)
	}
	host := rest[:hostEnd]
	if strings.HasPrefix(href, "/") {
		return schemeHost + host + href
	}
	return schemeHost + host + "/" + href
}
