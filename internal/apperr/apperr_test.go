package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, NotFound, KindOf(New(NotFound, "no such package")))
	assert.Equal(t, Internal, KindOf(errors.New("plain error")))

	wrapped := fmt.Errorf("context: %w", Wrap(UpstreamTimeout, errors.New("dial timeout"), "search upstream"))
	assert.Equal(t, UpstreamTimeout, KindOf(wrapped))
}

func TestErrorMessage(t *testing.T) {
	e := Wrap(UpstreamMalformed, errors.New("no results field"), "search response")
	assert.Contains(t, e.Error(), "UPSTREAM_MALFORMED")
	assert.Contains(t, e.Error(), "no results field")
}
