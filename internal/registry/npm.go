package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jinterlante1206/research-assistant/internal/apperr"
	"github.com/jinterlante1206/research-assistant/internal/model"
	"github.com/jinterlante1206/research-assistant/internal/textutil"
)

type npmPackageDoc struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	DistTags    struct {
		Latest string `json:"latest"`
	} `json:"dist-tags"`
	Time       map[string]string `json:"time"`
	Repository struct {
		URL string `json:"url"`
	} `json:"repository"`
	Homepage string `json:"homepage"`
	License  any    `json:"license"`
}

type npmDownloadsDoc struct {
	Downloads int `json:"downloads"`
}

type npmSearchResponse struct {
	Objects []struct {
		Package struct {
			Name        string `json:"name"`
			Version     string `json:"version"`
			Description string `json:"description"`
			Date        string `json:"date"`
			Links       struct {
				Repository string `json:"repository"`
				Homepage   string `json:"homepage"`
			} `json:"links"`
		} `json:"package"`
	} `json:"objects"`
}

func (c *Client) getNPMInfo(ctx context.Context, name string) (model.PackageInfo, error) {
	doc, err := c.fetchNPMPackageDoc(ctx, name)
	if err != nil {
		return model.PackageInfo{}, err
	}

	info := model.PackageInfo{
		Name:        doc.Name,
		Registry:    model.RegistryNPM,
		Version:     doc.DistTags.Latest,
		Description: doc.Description,
		Homepage:    doc.Homepage,
		Repository:  normalizeRepoURL(doc.Repository.URL),
		License:     licenseToString(doc.License),
	}
	if updated, ok := doc.Time[doc.DistTags.Latest]; ok {
		info.LastUpdated = formatLastUpdated(updated)
	}

	if downloads, err := c.fetchNPMDownloads(ctx, name); err == nil {
		info.Downloads = textutil.HumanCount(int64(downloads))
	}
	return info, nil
}

func (c *Client) fetchNPMPackageDoc(ctx context.Context, name string) (npmPackageDoc, error) {
	req, err := newRequest(ctx, c.npmBaseURL+"/"+name, c.userAgent)
	if err != nil {
		return npmPackageDoc{}, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return npmPackageDoc{}, classifyHTTPError(ctx, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return npmPackageDoc{}, statusToError(resp.StatusCode)
	}
	var doc npmPackageDoc
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return npmPackageDoc{}, apperr.Wrap(apperr.UpstreamMalformed, err, "decoding npm package doc")
	}
	return doc, nil
}

func (c *Client) fetchNPMDownloads(ctx context.Context, name string) (int, error) {
	req, err := newRequest(ctx, "https://api.npmjs.org/downloads/point/last-week/"+name, c.userAgent)
	if err != nil {
		return 0, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, classifyHTTPError(ctx, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, statusToError(resp.StatusCode)
	}
	var doc npmDownloadsDoc
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return 0, apperr.Wrap(apperr.UpstreamMalformed, err, "decoding npm downloads doc")
	}
	return doc.Downloads, nil
}

func (c *Client) searchNPM(ctx context.Context, query string, maxResults int) ([]model.PackageInfo, error) {
	url := fmt.Sprintf("%s/-/v1/search?text=%s&size=%d", c.npmBaseURL, urlEscape(query), maxResults)
	req, err := newRequest(ctx, url, c.userAgent)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyHTTPError(ctx, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, statusToError(resp.StatusCode)
	}
	var parsed npmSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, apperr.Wrap(apperr.UpstreamMalformed, err, "decoding npm search response")
	}
	out := make([]model.PackageInfo, 0, len(parsed.Objects))
	for _, o := range parsed.Objects {
		out = append(out, model.PackageInfo{
			Name:        o.Package.Name,
			Registry:    model.RegistryNPM,
			Version:     o.Package.Version,
			Description: o.Package.Description,
			LastUpdated: formatLastUpdated(o.Package.Date),
			Repository:  normalizeRepoURL(o.Package.Links.Repository),
			Homepage:    o.Package.Links.Homepage,
		})
	}
	return out, nil
}

func licenseToString(raw any) string {
	switch v := raw.(type) {
	case string:
		return v
	case map[string]any:
		if t, ok := v["type"].(string); ok {
			return t
		}
	}
	return ""
}
