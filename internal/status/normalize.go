package status

import (
	"strings"

	"github.com/jinterlante1206/research-assistant/internal/model"
)

func normalizeAlias(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// slugify turns a service name into the lowercase, space-stripped token
// the fallback URL patterns substitute in.
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "")
	return s
}

func sprintfPattern(pattern, slug string) string {
	return strings.Replace(pattern, "%s", slug, 1)
}

// normalizeIndicator maps an Atlassian Statuspage.io status.json indicator
// value into the closed ServiceStatusState set.
func normalizeIndicator(indicator string) model.ServiceStatusState {
	switch strings.ToLower(indicator) {
	case "none":
		return model.StatusOperational
	case "minor":
		return model.StatusDegradedPerformance
	case "major":
		return model.StatusPartialOutage
	case "critical":
		return model.StatusMajorOutage
	case "maintenance":
		return model.StatusUnderMaintenance
	default:
		return model.StatusUnknown
	}
}

func normalizeIncidentState(raw string) model.IncidentState {
	switch strings.ToLower(raw) {
	case "investigating":
		return model.IncidentInvestigating
	case "identified":
		return model.IncidentIdentified
	case "monitoring":
		return model.IncidentMonitoring
	case "resolved":
		return model.IncidentResolved
	default:
		return model.IncidentInvestigating
	}
}

func normalizeImpact(raw string) model.IncidentImpact {
	switch strings.ToLower(raw) {
	case "minor":
		return model.ImpactMinor
	case "major":
		return model.ImpactMajor
	case "critical":
		return model.ImpactCritical
	default:
		return model.ImpactMinor
	}
}

// normalizeFreeText maps scraped page text containing common status-page
// phrasing into the closed ServiceStatusState set, checking the most
// severe cues first so a page reporting multiple states is classified by
// its worst one.
func normalizeFreeText(lowerText string) model.ServiceStatusState {
	switch {
	case containsAny(lowerText, "major outage", "service disruption", "critical outage"):
		return model.StatusMajorOutage
	case containsAny(lowerText, "partial outage", "partial disruption"):
		return model.StatusPartialOutage
	case containsAny(lowerText, "degraded performance", "degraded"):
		return model.StatusDegradedPerformance
	case containsAny(lowerText, "under maintenance", "scheduled maintenance", "maintenance in progress"):
		return model.StatusUnderMaintenance
	case containsAny(lowerText, "all systems operational", "all systems normal", "operational"):
		return model.StatusOperational
	default:
		return model.StatusUnknown
	}
}

func containsAny(haystack string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}

// StatusEmoji is a pure function of ServiceStatusState, used by tool
// handlers to prefix a human-readable status line.
func StatusEmoji(s model.ServiceStatusState) string {
	switch s {
	case model.StatusOperational:
		return "🟢"
	case model.StatusDegradedPerformance:
		return "🟡"
	case model.StatusPartialOutage:
		return "🟠"
	case model.StatusMajorOutage:
		return "🔴"
	case model.StatusUnderMaintenance:
		return "🔧"
	default:
		return "⚪"
	}
}
