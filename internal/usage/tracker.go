// Package usage implements the Usage Tracker (spec §4.12): a process-wide,
// thread-safe recorder of tool invocations that maintains a rolling summary
// and persists the whole store as JSON, atomically, after every event.
//
// Grounded on AleutianLocal's FileDiagnosticsStorage.Store
// (cmd/aleutian/diagnostics_storage_file.go) for the write-temp-then-rename
// persistence idiom, and its graph.FileWatcher
// (services/trace/graph/file_watcher.go) for the optional fsnotify-based
// external-change watch.
package usage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/jinterlante1206/research-assistant/internal/model"
	"github.com/jinterlante1206/research-assistant/pkg/logging"
)

// DefaultPath returns ${XDG_CONFIG_HOME or ~/.config}/web-research-assistant/usage.json.
func DefaultPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "web-research-assistant", "usage.json")
}

// reasoningKeyLen is the prefix length spec §4.12 uses to bucket reasoning
// strings in commonReasonings.
const reasoningKeyLen = 50

// Tracker is a process-wide, mutex-serialized usage recorder.
type Tracker struct {
	mu       sync.Mutex
	path     string
	log      *logging.Logger
	store    model.UsageStore
	watching bool
}

// New constructs a Tracker backed by path, loading any existing store.
// A corrupt or unreadable file starts the tracker empty with a warning,
// per spec §4.12.
func New(path string, log *logging.Logger) *Tracker {
	if log == nil {
		log = logging.Default()
	}
	t := &Tracker{
		path: path,
		log:  log.With("component", "usage_tracker"),
		store: model.UsageStore{
			Summary: model.UsageSummary{Tools: make(map[string]*model.ToolSummary)},
		},
	}
	t.load()
	return t
}

func (t *Tracker) load() {
	data, err := os.ReadFile(t.path)
	if err != nil {
		if !os.IsNotExist(err) {
			t.log.Warn("failed to read usage store, starting empty", "path", t.path, "error", err)
		}
		return
	}
	var store model.UsageStore
	if err := json.Unmarshal(data, &store); err != nil {
		t.log.Warn("usage store is corrupt, starting empty", "path", t.path, "error", err)
		return
	}
	if store.Summary.Tools == nil {
		store.Summary.Tools = make(map[string]*model.ToolSummary)
	}
	t.store = store
}

// Track enriches event with a timestamp and session id, appends it, updates
// the rolling summary, and persists the store atomically.
func (t *Tracker) Track(event model.UsageEvent) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	event.TimestampUTC = time.Now().UTC().Format(time.RFC3339)
	event.SessionID = sessionID(time.Now().UTC())

	t.store.Sessions = append(t.store.Sessions, event)
	t.updateSummary(event)

	return t.persist()
}

// Summary returns a snapshot of the rolling summary.
func (t *Tracker) Summary() model.UsageSummary {
	t.mu.Lock()
	defer t.mu.Unlock()
	return cloneSummary(t.store.Summary)
}

func (t *Tracker) updateSummary(event model.UsageEvent) {
	summary := &t.store.Summary
	tool, ok := summary.Tools[event.Tool]
	if !ok {
		tool = &model.ToolSummary{CommonReasonings: make(map[string]int)}
		summary.Tools[event.Tool] = tool
	}

	prevCount := tool.Count
	tool.Count++
	if event.Success {
		tool.SuccessCount++
	}
	tool.AvgResponseTime = runningMean(tool.AvgResponseTime, prevCount, float64(event.ResponseTimeMs))

	if event.Reasoning != "" {
		key := event.Reasoning
		if len(key) > reasoningKeyLen {
			key = key[:reasoningKeyLen]
		}
		tool.CommonReasonings[key]++
	}

	summary.TotalCalls++
	summary.AverageResponseTime = runningMean(summary.AverageResponseTime, summary.TotalCalls-1, float64(event.ResponseTimeMs))
	summary.MostUsedTool = mostUsedTool(summary.Tools)
}

func runningMean(prevMean float64, prevCount int, newValue float64) float64 {
	return (prevMean*float64(prevCount) + newValue) / float64(prevCount+1)
}

func mostUsedTool(tools map[string]*model.ToolSummary) string {
	var best string
	var bestCount int
	for name, summary := range tools {
		if summary.Count > bestCount || (summary.Count == bestCount && name < best) {
			best = name
			bestCount = summary.Count
		}
	}
	return best
}

func (t *Tracker) persist() error {
	dir := filepath.Dir(t.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating usage store directory: %w", err)
	}

	data, err := json.MarshalIndent(t.store, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling usage store: %w", err)
	}

	tempPath := t.path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0o640); err != nil {
		return fmt.Errorf("writing usage store temp file: %w", err)
	}
	if err := os.Rename(tempPath, t.path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("finalizing usage store: %w", err)
	}
	return nil
}

func sessionID(t time.Time) string {
	return t.Format("20060102_15")
}

func cloneSummary(s model.UsageSummary) model.UsageSummary {
	clone := model.UsageSummary{
		Tools:               make(map[string]*model.ToolSummary, len(s.Tools)),
		TotalCalls:          s.TotalCalls,
		MostUsedTool:        s.MostUsedTool,
		AverageResponseTime: s.AverageResponseTime,
	}
	for name, tool := range s.Tools {
		reasonings := make(map[string]int, len(tool.CommonReasonings))
		for k, v := range tool.CommonReasonings {
			reasonings[k] = v
		}
		clone.Tools[name] = &model.ToolSummary{
			Count:            tool.Count,
			SuccessCount:     tool.SuccessCount,
			AvgResponseTime:  tool.AvgResponseTime,
			CommonReasonings: reasonings,
		}
	}
	return clone
}
