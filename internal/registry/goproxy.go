package registry

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/jinterlante1206/research-assistant/internal/apperr"
	"github.com/jinterlante1206/research-assistant/internal/model"
)

type goProxyLatestDoc struct {
	Version string `json:"Version"`
	Time    string `json:"Time"`
}

func (c *Client) getGoInfo(ctx context.Context, modulePath string) (model.PackageInfo, error) {
	req, err := newRequest(ctx, c.goproxyBaseURL+"/"+modulePath+"/@latest", c.userAgent)
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
	var doc goProxyLatestDoc
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return model.PackageInfo{}, apperr.Wrap(apperr.UpstreamMalformed, err, "decoding go proxy @latest doc")
	}

	info := model.PackageInfo{
		Name:        modulePath,
		Registry:    model.RegistryGo,
		Version:     doc.Version,
		LastUpdated: formatLastUpdated(doc.Time),
		Repository:  "https://" + modulePath,
	}
	if deps, err := c.fetchGoModDepCount(ctx, modulePath, doc.Version); err == nil {
		info.DependenciesCount = &deps
	}
	return info, nil
}

// fetchGoModDepCount enriches the package info with a rough require-count
// from the module's go.mod, as an optional second-endpoint lookup (spec
// §4.4's "optional enrichment from a second endpoint").
func (c *Client) fetchGoModDepCount(ctx context.Context, modulePath, version string) (int, error) {
	req, err := newRequest(ctx, c.goproxyBaseURL+"/"+modulePath+"/@v/"+version+".mod", c.userAgent)
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
	return countRequireLines(resp.Body), nil
}
