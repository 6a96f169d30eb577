// Package model defines the value types exchanged between clients,
// pipelines, and the orchestrator (spec §3). Every type here is a plain
// record: constructed fresh per call, immutable after return, with no
// cyclic references.
package model

// Registry identifies one of the four supported package registries.
type Registry string

const (
	RegistryNPM    Registry = "npm"
	RegistryPyPI   Registry = "pypi"
	RegistryCrates Registry = "crates"
	RegistryGo     Registry = "go"
)

// SearchHit is one ranked result from the Search Client.
type SearchHit struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Snippet string  `json:"snippet"`
	Engine  string  `json:"engine,omitempty"`
	Score   float64 `json:"score,omitempty"`
}

// PackageInfo is the unified shape returned by every registry sub-protocol.
type PackageInfo struct {
	Name                string   `json:"name"`
	Registry            Registry `json:"registry"`
	Version             string   `json:"version"`
	Description         string   `json:"description,omitempty"`
	License             string   `json:"license,omitempty"`
	Downloads           string   `json:"downloads,omitempty"`
	LastUpdated         string   `json:"last_updated,omitempty"`
	Repository          string   `json:"repository,omitempty"`
	DependenciesCount   *int     `json:"dependencies_count,omitempty"`
	Homepage            string   `json:"homepage,omitempty"`
}

// CodeSearchHit is one repository hit from a repo host's code/repo search
// API, used to delegate PyPI/Go package discovery to a stars-ranked
// repository search (spec §4.4) and to guess a technology's repository in
// the Comparator (spec §4.9).
type CodeSearchHit struct {
	Owner       string `json:"owner"`
	Repo        string `json:"repo"`
	Stars       int    `json:"stars"`
	Description string `json:"description,omitempty"`
}

// Commit is one entry from the repo client's recent-commits operation.
type Commit struct {
	SHA     string `json:"sha"`
	Message string `json:"message"`
	Author  string `json:"author"`
	Date    string `json:"date"`
}

// RepoInfo is repository metadata as reported by the repo host.
type RepoInfo struct {
	FullName      string   `json:"full_name"`
	Description   string   `json:"description,omitempty"`
	Stars         int      `json:"stars"`
	Forks         int      `json:"forks"`
	Watchers      int      `json:"watchers"`
	OpenIssues    int      `json:"open_issues"`
	OpenPRs       *int     `json:"open_prs,omitempty"`
	Language      string   `json:"language,omitempty"`
	License       string   `json:"license,omitempty"`
	LastUpdated   string   `json:"last_updated"`
	Topics        []string `json:"topics"`
	Homepage      string   `json:"homepage,omitempty"`
	RecentCommits []Commit `json:"recent_commits,omitempty"`
}

// ImageResult is one stock-image hit from the Image Client.
type ImageResult struct {
	Tags        []string `json:"tags"`
	Width       int      `json:"width"`
	Height      int      `json:"height"`
	Views       int      `json:"views"`
	Downloads   int      `json:"downloads"`
	Likes       int      `json:"likes"`
	User        string   `json:"user"`
	PreviewURL  string   `json:"preview_url"`
	LargeURL    string   `json:"large_url"`
	FullHDURL   string   `json:"full_hd_url,omitempty"`
}

// Language is one of the languages the Error Parser can detect.
type Language string

const (
	LangPython  Language = "PY"
	LangJS      Language = "JS"
	LangTS      Language = "TS"
	LangRust    Language = "RUST"
	LangJava    Language = "JAVA"
	LangGo      Language = "GO"
	LangUnknown Language = "UNKNOWN"
)

// Framework is one of the frameworks the Error Parser can detect.
type Framework string

const (
	FrameworkReact   Framework = "REACT"
	FrameworkVue     Framework = "VUE"
	FrameworkAngular Framework = "ANGULAR"
	FrameworkDjango  Framework = "DJANGO"
	FrameworkFlask   Framework = "FLASK"
	FrameworkFastAPI Framework = "FASTAPI"
	FrameworkExpress Framework = "EXPRESS"
	FrameworkNext    Framework = "NEXT"
	FrameworkNone    Framework = "NONE"
)

// ParsedError is the structured result of the Error Parser pipeline.
type ParsedError struct {
	Language  Language  `json:"language"`
	Framework Framework `json:"framework,omitempty"`
	ErrorType string    `json:"error_type"`
	Message   string    `json:"message"`
	File      string    `json:"file,omitempty"`
	Line      int       `json:"line,omitempty"`
	KeyTerms  []string  `json:"key_terms"`
}

// ApiDocExample is one fenced code example mined from documentation.
type ApiDocExample struct {
	Language string `json:"language"`
	Code     string `json:"code"`
}

// ApiDocLink is one related-documentation link.
type ApiDocLink struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// ApiDoc is the aggregated result of the Doc Discoverer pipeline.
type ApiDoc struct {
	APIName       string          `json:"api_name"`
	Topic         string          `json:"topic"`
	DocsBaseURL   string          `json:"docs_base_url,omitempty"`
	Overview      string          `json:"overview,omitempty"`
	Parameters    []DocParameter  `json:"parameters"`
	Examples      []ApiDocExample `json:"examples"`
	Notes         []string        `json:"notes"`
	RelatedLinks  []ApiDocLink    `json:"related_links"`
	Sources       []string        `json:"sources"`
}

// DocParameter is one name/type/description triple mined from a docs page.
type DocParameter struct {
	Name        string `json:"name"`
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`
}

// ExtractionKind selects which shape the Extractor returns.
type ExtractionKind string

const (
	ExtractTable  ExtractionKind = "TABLE"
	ExtractList   ExtractionKind = "LIST"
	ExtractFields ExtractionKind = "FIELDS"
	ExtractJSONLD ExtractionKind = "JSONLD"
	ExtractAuto   ExtractionKind = "AUTO"
)

// TableData is one extracted HTML table.
type TableData struct {
	Caption string              `json:"caption,omitempty"`
	Headers []string            `json:"headers"`
	Rows    []map[string]string `json:"rows"`
}

// ListData is one extracted HTML list.
type ListData struct {
	Title  string   `json:"title,omitempty"`
	Items  []string `json:"items"`
	Nested bool     `json:"nested"`
}

// ExtractionResult is the tagged union the Extractor returns.
type ExtractionResult struct {
	Kind    ExtractionKind `json:"kind"`
	Tables  []TableData    `json:"tables,omitempty"`
	Lists   []ListData     `json:"lists,omitempty"`
	Fields  map[string]any `json:"fields,omitempty"`
	JSONLD  []any          `json:"json_ld,omitempty"`
}

// TechCategory is the inferred or provided comparison category, which
// selects the default aspect list in the Comparator (spec §4.9).
type TechCategory string

const (
	CategoryFramework TechCategory = "framework"
	CategoryLibrary   TechCategory = "library"
	CategoryDatabase  TechCategory = "database"
	CategoryLanguage  TechCategory = "language"
	CategoryTool      TechCategory = "tool"
	CategoryAuto      TechCategory = "auto"
)

// Comparison is the aggregated result of the Comparator.
type Comparison struct {
	Technologies []string                     `json:"technologies"`
	Category     TechCategory                 `json:"category"`
	Aspects      map[string]map[string]string `json:"aspects"`
	Summary      map[string]string            `json:"summary"`
	Sources      []string                     `json:"sources"`
}

// Release is one parsed release/changelog entry.
type Release struct {
	Version          string   `json:"version"`
	Date             string   `json:"date,omitempty"`
	Author           string   `json:"author,omitempty"`
	BreakingChanges  []string `json:"breaking_changes"`
	NewFeatures      []string `json:"new_features"`
	BugFixes         []string `json:"bug_fixes"`
	Notes            string   `json:"notes,omitempty"`
	URL              string   `json:"url,omitempty"`
	MigrationGuide   string   `json:"migration_guide,omitempty"`
}

// UpgradeDifficulty is the closed bucket the Changelog Engine classifies
// cumulative breaking-change counts into.
type UpgradeDifficulty string

const (
	DifficultyLow    UpgradeDifficulty = "low"
	DifficultyMedium UpgradeDifficulty = "medium"
	DifficultyHigh   UpgradeDifficulty = "high"
)

// ChangelogSummary aggregates difficulty and a recommendation across releases.
type ChangelogSummary struct {
	TotalReleases  int               `json:"total_releases"`
	BreakingCount  int               `json:"breaking_count"`
	Difficulty     UpgradeDifficulty `json:"difficulty"`
	Recommendation string            `json:"recommendation"`
}

// Changelog is the aggregated result of the Changelog Engine.
type Changelog struct {
	Package    string           `json:"package"`
	Registry   Registry         `json:"registry"`
	Repository string           `json:"repository,omitempty"`
	Releases   []Release        `json:"releases"`
	Summary    ChangelogSummary `json:"summary"`
}

// ServiceStatusState is the closed set of states a service's status page
// normalizes to.
type ServiceStatusState string

const (
	StatusOperational        ServiceStatusState = "operational"
	StatusDegradedPerformance ServiceStatusState = "degraded_performance"
	StatusPartialOutage      ServiceStatusState = "partial_outage"
	StatusMajorOutage        ServiceStatusState = "major_outage"
	StatusUnderMaintenance   ServiceStatusState = "under_maintenance"
	StatusUnknown            ServiceStatusState = "unknown"
)

// IncidentState is the lifecycle stage of a service incident.
type IncidentState string

const (
	IncidentInvestigating IncidentState = "investigating"
	IncidentIdentified    IncidentState = "identified"
	IncidentMonitoring    IncidentState = "monitoring"
	IncidentResolved      IncidentState = "resolved"
)

// IncidentImpact is the severity of a service incident.
type IncidentImpact string

const (
	ImpactMinor    IncidentImpact = "minor"
	ImpactMajor    IncidentImpact = "major"
	ImpactCritical IncidentImpact = "critical"
)

// ServiceIncident is one active or historical incident on a status page.
type ServiceIncident struct {
	Title      string         `json:"title"`
	Status     IncidentState  `json:"status"`
	StartedAt  string         `json:"started_at,omitempty"`
	ResolvedAt string         `json:"resolved_at,omitempty"`
	Impact     IncidentImpact `json:"impact,omitempty"`
	Summary    string         `json:"summary,omitempty"`
}

// ServiceStatus is the aggregated result of the Status Client.
type ServiceStatus struct {
	Service           string              `json:"service"`
	Status            ServiceStatusState  `json:"status"`
	StatusPageURL     string              `json:"status_page_url,omitempty"`
	CheckedAt         string              `json:"checked_at"`
	CurrentIncidents  []ServiceIncident   `json:"current_incidents"`
	Components        []string            `json:"components"`
	RecentIncidents   []ServiceIncident   `json:"recent_incidents,omitempty"`
	UptimePercentage  *float64            `json:"uptime_percentage,omitempty"`
}

// UsageEvent records one orchestrator invocation (spec §3, §4.12).
type UsageEvent struct {
	TimestampUTC     string         `json:"timestamp_utc"`
	Tool             string         `json:"tool"`
	Reasoning        string         `json:"reasoning"`
	Parameters       map[string]any `json:"parameters"`
	ResponseTimeMs   int64          `json:"response_time_ms"`
	Success          bool           `json:"success"`
	ErrorMessage     string         `json:"error_message,omitempty"`
	ResponseSizeBytes int           `json:"response_size_bytes"`
	SessionID        string         `json:"session_id"`
}

// ToolSummary is the per-tool rollup inside UsageSummary.
type ToolSummary struct {
	Count             int            `json:"count"`
	SuccessCount      int            `json:"success_count"`
	AvgResponseTime   float64        `json:"avg_response_time_ms"`
	CommonReasonings  map[string]int `json:"common_reasonings"`
}

// UsageSummary is the rolling aggregate maintained by the Usage Tracker.
type UsageSummary struct {
	Tools               map[string]*ToolSummary `json:"tools"`
	TotalCalls          int                     `json:"total_calls"`
	MostUsedTool        string                  `json:"most_used_tool,omitempty"`
	AverageResponseTime float64                 `json:"average_response_time_ms"`
}

// UsageStore is the on-disk shape persisted by the Usage Tracker.
type UsageStore struct {
	Sessions []UsageEvent `json:"sessions"`
	Summary  UsageSummary `json:"summary"`
}
