package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jinterlante1206/research-assistant/internal/apperr"
)

func TestRenderResearchPackage(t *testing.T) {
	msgs, err := Render("research_package", map[string]string{"package": "react", "registry": "npm"})
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Contains(t, msgs[1].Text, "react")
	assert.Contains(t, msgs[1].Text, "npm")
}

func TestRenderMissingRequiredArg(t *testing.T) {
	_, err := Render("debug_error", map[string]string{})
	require.Error(t, err)
	assert.Equal(t, apperr.InputInvalid, apperr.KindOf(err))
}

func TestRenderUnknownPrompt(t *testing.T) {
	_, err := Render("does_not_exist", map[string]string{})
	require.Error(t, err)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestNamesListsAllFivePrompts(t *testing.T) {
	assert.Len(t, Names(), 5)
}

func TestRenderEvaluateRepository(t *testing.T) {
	msgs, err := Render("evaluate_repository", map[string]string{"repo": "golang/go"})
	require.NoError(t, err)
	assert.Contains(t, msgs[1].Text, "golang/go")
}

func TestRenderCheckServiceHealth(t *testing.T) {
	msgs, err := Render("check_service_health", map[string]string{"services": "github,npm"})
	require.NoError(t, err)
	assert.Contains(t, msgs[1].Text, "github,npm")
}
