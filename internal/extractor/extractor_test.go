package extractor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jinterlante1206/research-assistant/internal/model"
)

func TestExtractTable(t *testing.T) {
	html := `<html><body><table><caption>Pricing</caption>
		<thead><tr><th>Plan</th><th>Price</th></tr></thead>
		<tbody>
			<tr><td>Free</td><td>$0</td></tr>
			<tr><td>Pro</td><td>$10</td></tr>
			<tr><td>Bad Row Only One Cell</td></tr>
		</tbody>
	</table></body></html>`

	result, err := Extract(html, model.ExtractTable, Options{})
	require.NoError(t, err)
	require.Len(t, result.Tables, 1)
	table := result.Tables[0]
	assert.Equal(t, "Pricing", table.Caption)
	assert.Equal(t, []string{"Plan", "Price"}, table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "Free", table.Rows[0]["Plan"])
	assert.Equal(t, "$0", table.Rows[0]["Price"])
}

func TestExtractListUnordered(t *testing.T) {
	html := `<html><body><h2>Features</h2><ul><li>Fast</li><li>Reliable</li></ul></body></html>`
	result, err := Extract(html, model.ExtractList, Options{})
	require.NoError(t, err)
	require.Len(t, result.Lists, 1)
	assert.Equal(t, "Features", result.Lists[0].Title)
	assert.Equal(t, []string{"Fast", "Reliable"}, result.Lists[0].Items)
}

func TestExtractListDefinition(t *testing.T) {
	html := `<html><body><dl><dt>API</dt><dd>Application Programming Interface</dd></dl></body></html>`
	result, err := Extract(html, model.ExtractList, Options{})
	require.NoError(t, err)
	require.Len(t, result.Lists, 1)
	assert.Equal(t, []string{"API: Application Programming Interface"}, result.Lists[0].Items)
}

func TestExtractFieldsScalarAndArray(t *testing.T) {
	html := `<html><body><h1 class="title">Hello</h1><p class="tag">a</p><p class="tag">b</p></body></html>`
	result, err := Extract(html, model.ExtractFields, Options{Selectors: map[string]string{
		"title": ".title",
		"tags":  ".tag",
	}})
	require.NoError(t, err)
	assert.Equal(t, "Hello", result.Fields["title"])
	assert.Equal(t, []string{"a", "b"}, result.Fields["tags"])
}

func TestExtractJSONLDSkipsMalformed(t *testing.T) {
	html := `<html><body>
		<script type="application/ld+json">{"@type":"Product","name":"Widget"}</script>
		<script type="application/ld+json">{not valid json}</script>
	</body></html>`
	result, err := Extract(html, model.ExtractJSONLD, Options{})
	require.NoError(t, err)
	require.Len(t, result.JSONLD, 1)
}

func TestExtractAutoPrefersJSONLD(t *testing.T) {
	html := `<html><body>
		<script type="application/ld+json">{"@type":"Product"}</script>
		<table><tr><th>A</th></tr><tr><td>1</td></tr></table>
	</body></html>`
	result, err := Extract(html, model.ExtractAuto, Options{})
	require.NoError(t, err)
	assert.Len(t, result.JSONLD, 1)
	assert.Len(t, result.Tables, 1)
}

func TestExtractUnknownKind(t *testing.T) {
	_, err := Extract("<html></html>", model.ExtractionKind("bogus"), Options{})
	require.Error(t, err)
}

func TestExtractDefaultMaxItemsIsOneHundred(t *testing.T) {
	var b strings.Builder
	b.WriteString("<html><body>")
	for i := 0; i < 150; i++ {
		b.WriteString("<table><tr><th>A</th></tr><tr><td>1</td></tr></table>")
	}
	b.WriteString("</body></html>")

	result, err := Extract(b.String(), model.ExtractTable, Options{})
	require.NoError(t, err)
	assert.Len(t, result.Tables, 100)
}

func TestExtractSanitizesControlCharacters(t *testing.T) {
	html := "<html><body><ul><li>hi\x01there</li></ul></body></html>"
	result, err := Extract(html, model.ExtractList, Options{})
	require.NoError(t, err)
	require.Len(t, result.Lists, 1)
	assert.Equal(t, "hithere", result.Lists[0].Items[0])
}
