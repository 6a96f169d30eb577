package errorparser

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jinterlante1206/research-assistant/internal/model"
	"github.com/jinterlante1206/research-assistant/internal/search"
)

func TestDetectLanguageJSBeforePython(t *testing.T) {
	// "File ..." alone is ambiguous with Python, but a .tsx extension and
	// TypeError should win.
	text := `TypeError: Cannot read property 'foo' of undefined at File "app.tsx" line 10`
	assert.Equal(t, model.LangTS, DetectLanguage(text))
}

func TestDetectLanguagePython(t *testing.T) {
	text := "Traceback (most recent call last):\n  File \"main.py\", line 3, in <module>\nKeyError: 'x'"
	assert.Equal(t, model.LangPython, DetectLanguage(text))
}

func TestDetectLanguageRust(t *testing.T) {
	text := "thread 'main' panicked at 'called Option::unwrap() on a None value', src/main.rs:4:6"
	assert.Equal(t, model.LangRust, DetectLanguage(text))
}

func TestDetectFrameworkNextBeforeReact(t *testing.T) {
	text := "Error in getServerSideProps, also uses useState internally"
	assert.Equal(t, model.FrameworkNext, DetectFramework(text))
}

func TestDetectFrameworkNone(t *testing.T) {
	assert.Equal(t, model.FrameworkNone, DetectFramework("some random text"))
}

func TestExtractErrorTypeWebErrorBeforeLanguage(t *testing.T) {
	text := "TypeError: Failed to fetch at XMLHttpRequest"
	assert.Equal(t, "Fetch Error", ExtractErrorType(text, model.LangJS))
}

func TestExtractErrorTypeRustECode(t *testing.T) {
	assert.Equal(t, "Use After Move (E0382)", ExtractErrorType("error[E0382]: use of moved value", model.LangRust))
}

func TestExtractErrorTypeUnknown(t *testing.T) {
	assert.Equal(t, UnknownErrorType, ExtractErrorType("nothing recognizable here", model.LangUnknown))
}

func TestExtractKeyTermsIncludesUndefinedAndNull(t *testing.T) {
	terms := ExtractKeyTerms("Cannot read property 'undefined' of null, fetch failed", "Fetch Error")
	assert.Contains(t, terms, "undefined")
	assert.Contains(t, terms, "null")
	assert.Contains(t, terms, "fetch")
}

func TestExtractKeyTermsNoDuplicates(t *testing.T) {
	terms := ExtractKeyTerms("fetch fetch fetch 'fetch'", "Unknown Error")
	count := 0
	for _, term := range terms {
		if term == "fetch" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestExtractKeyTermsCamelAndSnakeCase(t *testing.T) {
	terms := ExtractKeyTerms("myVariableName is undefined, also user_id missing", "Unknown Error")
	assert.Contains(t, terms, "myVariableName")
	assert.Contains(t, terms, "user_id")
}

func TestExtractKeyTermsBacktickQuoted(t *testing.T) {
	terms := ExtractKeyTerms("borrow of moved value: `data`", "Use After Move (E0382)")
	assert.Contains(t, terms, "data")
}

func TestExtractFrameRust(t *testing.T) {
	text := "thread 'main' panicked at 'called Option::unwrap() on a None value'\n --> src/main.rs:7:5"
	file, line := ExtractFrame(text)
	assert.Equal(t, "src/main.rs", file)
	assert.Equal(t, 7, line)
}

func TestExtractFramePython(t *testing.T) {
	text := "Traceback (most recent call last):\n  File \"main.py\", line 3, in <module>\nKeyError: 'x'"
	file, line := ExtractFrame(text)
	assert.Equal(t, "main.py", file)
	assert.Equal(t, 3, line)
}

func TestExtractFrameJS(t *testing.T) {
	text := "TypeError: Cannot read property 'foo' of undefined\n    at Object.<anonymous> (index.js:12:9)"
	file, line := ExtractFrame(text)
	assert.Equal(t, "index.js", file)
	assert.Equal(t, 12, line)
}

func TestExtractFrameNoMatch(t *testing.T) {
	file, line := ExtractFrame("nothing resembling a stack frame here")
	assert.Equal(t, "", file)
	assert.Equal(t, 0, line)
}

func TestBuildSearchQueryOmitsEmptyFields(t *testing.T) {
	q := BuildSearchQuery("", "", "Fetch Error", []string{"fetch"})
	assert.Equal(t, "Fetch Error fetch site:stackoverflow.com", q)
}

func TestFilterAndRankExcludesAndOrders(t *testing.T) {
	hits := []model.SearchHit{
		{Title: "a", URL: "https://npmjs.com/x"},
		{Title: "b", URL: "https://example.com/y"},
		{Title: "c", URL: "https://stackoverflow.com/q/1"},
		{Title: "d", URL: "https://stackoverflow.com/q/2"},
	}
	ranked := FilterAndRank(hits, 10)
	require.Len(t, ranked, 3)
	assert.Equal(t, "c", ranked[0].Title)
	assert.Equal(t, "d", ranked[1].Title)
	assert.Equal(t, "b", ranked[2].Title)
}

func TestFilterAndRankTruncates(t *testing.T) {
	hits := []model.SearchHit{
		{Title: "a", URL: "https://stackoverflow.com/1"},
		{Title: "b", URL: "https://stackoverflow.com/2"},
		{Title: "c", URL: "https://stackoverflow.com/3"},
	}
	ranked := FilterAndRank(hits, 2)
	assert.Len(t, ranked, 2)
}

type fakeSearcher struct {
	hits []model.SearchHit
}

func (f *fakeSearcher) Query(ctx context.Context, p search.Params) ([]model.SearchHit, error) {
	return f.hits, nil
}

func TestTranslateEndToEnd(t *testing.T) {
	searcher := &fakeSearcher{hits: []model.SearchHit{{Title: "answer", URL: "https://stackoverflow.com/q/1"}}}
	parsed, hits, err := Translate(context.Background(), searcher, "TypeError: Failed to fetch", "", "", 5)
	require.NoError(t, err)
	assert.Equal(t, model.LangJS, parsed.Language)
	assert.Equal(t, "Fetch Error", parsed.ErrorType)
	require.Len(t, hits, 1)
}
