package textutil

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClampIdempotent(t *testing.T) {
	s := strings.Repeat("a", 500)
	once := Clamp(s, 200)
	twice := Clamp(once, 200)
	assert.Equal(t, once, twice)
	assert.LessOrEqual(t, len([]rune(once)), 200)
	assert.True(t, strings.HasSuffix(once, TruncationSuffix))
}

func TestClampNoTruncationWhenShort(t *testing.T) {
	s := "short"
	assert.Equal(t, s, Clamp(s, 200))
}

func TestSanitizeIdempotentAndStripsControls(t *testing.T) {
	in := "hello\x00\x01world\x7f  spaced\tout\r\n"
	once := Sanitize(in)
	twice := Sanitize(once)
	assert.Equal(t, once, twice)
	for _, r := range once {
		assert.False(t, r <= 0x1F && r != '\t' && r != '\n' && r != '\r')
		assert.NotEqual(t, rune(0x7F), r)
	}
	assert.Equal(t, "helloworld spaced\tout\r\n", once)
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "2h ago", RelativeTime(now.Add(-2*time.Hour), now))
	assert.Equal(t, "3d ago", RelativeTime(now.Add(-72*time.Hour), now))
	assert.Equal(t, "just now", RelativeTime(now.Add(-10*time.Second), now))
}

func TestHumanCount(t *testing.T) {
	assert.Equal(t, "50.3M", HumanCount(50_300_000))
	assert.Equal(t, "1.2K", HumanCount(1200))
	assert.Equal(t, "999", HumanCount(999))
}

func TestOrderedSetPreservesInsertionOrder(t *testing.T) {
	s := NewOrderedSet()
	s.Add("CORS")
	s.Add("fetch")
	s.Add("CORS")
	s.Add("async")
	assert.Equal(t, []string{"CORS", "fetch", "async"}, s.Items())
	assert.True(t, s.Contains("fetch"))

	s.Remove("fetch")
	assert.Equal(t, []string{"CORS", "async"}, s.Items())
	assert.False(t, s.Contains("fetch"))
}
