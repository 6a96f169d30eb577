package registry

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/jinterlante1206/research-assistant/internal/apperr"
	"github.com/jinterlante1206/research-assistant/internal/model"
)

type pypiDoc struct {
	Info struct {
		Name        string         `json:"name"`
		Version     string         `json:"version"`
		Summary     string         `json:"summary"`
		License     string         `json:"license"`
		HomePage    string         `json:"home_page"`
		ProjectURLs map[string]any `json:"project_urls"`
	} `json:"info"`
	Urls []struct {
		UploadTime string `json:"upload_time_iso_8601"`
	} `json:"urls"`
}

func (c *Client) getPyPIInfo(ctx context.Context, name string) (model.PackageInfo, error) {
	req, err := newRequest(ctx, c.pypiBaseURL+"/pypi/"+name+"/json", c.userAgent)
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

	var doc pypiDoc
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return model.PackageInfo{}, apperr.Wrap(apperr.UpstreamMalformed, err, "decoding pypi doc")
	}

	projectURLs := doc.Info.ProjectURLs
	if projectURLs == nil {
		projectURLs = map[string]any{}
	}
	repo := firstStringOf(projectURLs, "Source", "Repository", "Homepage")
	if repo == "" {
		repo = doc.Info.HomePage
	}

	info := model.PackageInfo{
		Name:        doc.Info.Name,
		Registry:    model.RegistryPyPI,
		Version:     doc.Info.Version,
		Description: doc.Info.Summary,
		License:     truncate(doc.Info.License, 100),
		Homepage:    doc.Info.HomePage,
		Repository:  repo,
	}
	if len(doc.Urls) > 0 {
		info.LastUpdated = formatLastUpdated(doc.Urls[0].UploadTime)
	}
	return info, nil
}

func firstStringOf(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}
