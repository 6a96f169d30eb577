// Package prompts implements the Prompt Registry (spec §4.13): named,
// parameterized message templates that perform no upstream calls. Each
// prompt renders a small sequence of role-tagged messages meant to seed a
// model conversation toward using the right tools for a task.
//
// Grounded on a toolCategories-style static catalog (a datatypes
// package's message role types), adapted from chat turns to canned
// prompt templates.
package prompts

import (
	"fmt"
	"strings"

	"github.com/jinterlante1206/research-assistant/internal/apperr"
)

// Role is the speaker of a rendered prompt message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one role-tagged line of a rendered prompt.
type Message struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

type templateFunc func(args map[string]string) ([]Message, error)

var templates = map[string]templateFunc{
	"research_package":     renderResearchPackage,
	"debug_error":          renderDebugError,
	"compare_technologies": renderCompareTechnologies,
	"evaluate_repository":  renderEvaluateRepository,
	"check_service_health": renderCheckServiceHealth,
}

// Names lists the registered prompt names, for catalog advertisement.
func Names() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	return names
}

// Render looks up name and expands it against args.
func Render(name string, args map[string]string) ([]Message, error) {
	tmpl, ok := templates[name]
	if !ok {
		return nil, apperr.Newf(apperr.NotFound, "no such prompt %q", name)
	}
	return tmpl(args)
}

func requireArg(args map[string]string, key string) (string, error) {
	v, ok := args[key]
	if !ok || strings.TrimSpace(v) == "" {
		return "", apperr.Newf(apperr.InputInvalid, "prompt argument %q is required", key)
	}
	return v, nil
}

func renderResearchPackage(args map[string]string) ([]Message, error) {
	pkg, err := requireArg(args, "package")
	if err != nil {
		return nil, err
	}
	registry := args["registry"]
	if registry == "" {
		registry = "the appropriate registry"
	}
	return []Message{
		{Role: RoleSystem, Text: "You are researching a software package before recommending its use."},
		{Role: RoleUser, Text: fmt.Sprintf("Use package_info and package_search to investigate %q on %s. Then use get_changelog to check recent breaking changes before concluding.", pkg, registry)},
	}, nil
}

func renderDebugError(args map[string]string) ([]Message, error) {
	errorText, err := requireArg(args, "error")
	if err != nil {
		return nil, err
	}
	language := args["language"]
	framework := args["framework"]
	hint := ""
	if language != "" {
		hint += " language=" + language
	}
	if framework != "" {
		hint += " framework=" + framework
	}
	return []Message{
		{Role: RoleSystem, Text: "You are debugging a runtime error for a developer."},
		{Role: RoleUser, Text: fmt.Sprintf("Use translate_error on the following error message%s, then use search_examples to find worked fixes:\n%s", hint, errorText)},
	}, nil
}

func renderCompareTechnologies(args map[string]string) ([]Message, error) {
	techs, err := requireArg(args, "techs")
	if err != nil {
		return nil, err
	}
	category := args["category"]
	if category == "" {
		category = "auto"
	}
	return []Message{
		{Role: RoleSystem, Text: "You are producing a side-by-side technology comparison for a developer making an adoption decision."},
		{Role: RoleUser, Text: fmt.Sprintf("Use compare_tech with technologies=[%s] and category=%s, then summarize the tradeoffs.", techs, category)},
	}, nil
}

func renderEvaluateRepository(args map[string]string) ([]Message, error) {
	repo, err := requireArg(args, "repo")
	if err != nil {
		return nil, err
	}
	return []Message{
		{Role: RoleSystem, Text: "You are assessing the health and maintenance activity of an open-source repository."},
		{Role: RoleUser, Text: fmt.Sprintf("Use github_repo on %q with include_commits=true, then note stars, open issues, recent commit cadence, and license.", repo)},
	}, nil
}

func renderCheckServiceHealth(args map[string]string) ([]Message, error) {
	services, err := requireArg(args, "services")
	if err != nil {
		return nil, err
	}
	return []Message{
		{Role: RoleSystem, Text: "You are checking whether any of a set of third-party services are currently degraded."},
		{Role: RoleUser, Text: fmt.Sprintf("Use check_service_status on each of: %s. Report any that are not operational.", services)},
	}, nil
}
