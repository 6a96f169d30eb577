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

type cratesDoc struct {
	Crate struct {
		Name        string `json:"name"`
		MaxVersion  string `json:"max_version"`
		Downloads   int    `json:"downloads"`
		UpdatedAt   string `json:"updated_at"`
		Repository  string `json:"repository"`
		Homepage    string `json:"homepage"`
		Description string `json:"description"`
	} `json:"crate"`
}

type cratesSearchResponse struct {
	Crates []struct {
		Name        string `json:"name"`
		MaxVersion  string `json:"max_version"`
		Description string `json:"description"`
		UpdatedAt   string `json:"updated_at"`
		Repository  string `json:"repository"`
		Homepage    string `json:"homepage"`
	} `json:"crates"`
}

func (c *Client) getCratesInfo(ctx context.Context, name string) (model.PackageInfo, error) {
	req, err := newRequest(ctx, c.cratesBaseURL+"/api/v1/crates/"+name, c.userAgent)
	if err != nil {
		return model.PackageInfo{}, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.PackageInfo{}, classifyHTTPError(ctx, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return model.PackageInfo{}, statusToError(resp.StatusCode)
	}
	var doc cratesDoc
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return model.PackageInfo{}, apperr.Wrap(apperr.UpstreamMalformed, err, "decoding crates doc")
	}
	return model.PackageInfo{
		Name:        doc.Crate.Name,
		Registry:    model.RegistryCrates,
		Version:     doc.Crate.MaxVersion,
		Description: doc.Crate.Description,
		Downloads:   textutil.HumanCount(int64(doc.Crate.Downloads)),
		LastUpdated: formatLastUpdated(doc.Crate.UpdatedAt),
		Repository:  doc.Crate.Repository,
		Homepage:    doc.Crate.Homepage,
	}, nil
}

func (c *Client) searchCrates(ctx context.Context, query string, maxResults int) ([]model.PackageInfo, error) {
	url := fmt.Sprintf("%s/api/v1/crates?q=%s&per_page=%d", c.cratesBaseURL, urlEscape(query), maxResults)
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
	var parsed cratesSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, apperr.Wrap(apperr.UpstreamMalformed, err, "decoding crates search response")
	}
	out := make([]model.PackageInfo, 0, len(parsed.Crates))
	for _, cr := range parsed.Crates {
		out = append(out, model.PackageInfo{
			Name:        cr.Name,
			Registry:    model.RegistryCrates,
			Version:     cr.MaxVersion,
			Description: cr.Description,
			LastUpdated: formatLastUpdated(cr.UpdatedAt),
			Repository:  cr.Repository,
			Homepage:    cr.Homepage,
		})
	}
	return out, nil
}
