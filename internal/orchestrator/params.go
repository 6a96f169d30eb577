package orchestrator

// Parameter structs for every tool in the catalog (spec §4.1's table).
// Each embeds the mandatory `reasoning` field and carries validator tags
// for the dispatch contract's step 1 (presence/type/range validation),
// using go-playground/validator struct tags over a shared package-level
// *validator.Validate instance, the same idiom a datatypes package uses
// for its own request structs.

type WebSearchParams struct {
	Query      string `json:"query" validate:"required"`
	Reasoning  string `json:"reasoning" validate:"required"`
	Category   string `json:"category" validate:"omitempty,oneof=general it news science videos images files"`
	MaxResults int    `json:"max_results" validate:"omitempty,min=1,max=10"`
}

type SearchExamplesParams struct {
	Query       string `json:"query" validate:"required"`
	Reasoning   string `json:"reasoning" validate:"required"`
	ContentType string `json:"content_type" validate:"omitempty,oneof=code articles both"`
	TimeRange   string `json:"time_range" validate:"omitempty,oneof=day week month year all"`
	MaxResults  int    `json:"max_results" validate:"omitempty,min=1,max=10"`
}

type SearchImagesParams struct {
	Query       string `json:"query" validate:"required"`
	Reasoning   string `json:"reasoning" validate:"required"`
	ImageType   string `json:"image_type" validate:"omitempty,oneof=all photo illustration vector"`
	Orientation string `json:"orientation" validate:"omitempty,oneof=all horizontal vertical"`
	MaxResults  int    `json:"max_results" validate:"omitempty,min=1,max=20"`
}

type CrawlURLParams struct {
	URL       string `json:"url" validate:"required,url"`
	Reasoning string `json:"reasoning" validate:"required"`
	MaxChars  int    `json:"max_chars" validate:"omitempty,min=1,max=50000"`
}

type PackageInfoParams struct {
	Name      string `json:"name" validate:"required"`
	Registry  string `json:"registry" validate:"required,oneof=npm pypi crates go"`
	Reasoning string `json:"reasoning" validate:"required"`
}

type PackageSearchParams struct {
	Query      string `json:"query" validate:"required"`
	Registry   string `json:"registry" validate:"required,oneof=npm pypi crates go"`
	Reasoning  string `json:"reasoning" validate:"required"`
	MaxResults int     `json:"max_results" validate:"omitempty,min=1,max=20"`
}

type GithubRepoParams struct {
	Repo            string `json:"repo" validate:"required"`
	Reasoning       string `json:"reasoning" validate:"required"`
	IncludeCommits  *bool  `json:"include_commits"`
}

type TranslateErrorParams struct {
	ErrorMessage string `json:"error_message" validate:"required"`
	Reasoning    string `json:"reasoning" validate:"required"`
	Language     string `json:"language"`
	Framework    string `json:"framework"`
	MaxResults   int    `json:"max_results" validate:"omitempty,min=1,max=10"`
}

type APIDocsParams struct {
	APIName    string `json:"api_name" validate:"required"`
	Topic      string `json:"topic" validate:"required"`
	Reasoning  string `json:"reasoning" validate:"required"`
	MaxResults int    `json:"max_results" validate:"omitempty,min=1,max=5"`
}

type ExtractDataParams struct {
	URL         string            `json:"url" validate:"required,url"`
	Reasoning   string            `json:"reasoning" validate:"required"`
	ExtractType string            `json:"extract_type" validate:"omitempty,oneof=table list fields json-ld auto"`
	Selectors   map[string]string `json:"selectors"`
	MaxItems    int               `json:"max_items" validate:"omitempty,min=1,max=500"`
}

type CompareTechParams struct {
	Technologies      []string `json:"technologies" validate:"required,min=2,max=5"`
	Reasoning         string   `json:"reasoning" validate:"required"`
	Category          string   `json:"category" validate:"omitempty,oneof=framework library database language tool auto"`
	Aspects           []string `json:"aspects"`
	MaxResultsPerTech int      `json:"max_results_per_tech"`
}

type GetChangelogParams struct {
	Package     string `json:"package" validate:"required"`
	Reasoning   string `json:"reasoning" validate:"required"`
	Registry    string `json:"registry" validate:"omitempty,oneof=npm pypi crates go auto"`
	FromVersion string `json:"from_version"`
	ToVersion   string `json:"to_version"`
	MaxReleases int    `json:"max_releases" validate:"omitempty,min=1,max=50"`
}

type CheckServiceStatusParams struct {
	Service         string `json:"service" validate:"required"`
	Reasoning       string `json:"reasoning" validate:"required"`
	IncludeHistory  bool   `json:"include_history"`
	Days            int    `json:"days"`
}
