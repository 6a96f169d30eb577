package errorparser

import (
	"regexp"

	"github.com/jinterlante1206/research-assistant/internal/model"
)

const UnknownErrorType = "Unknown Error"

type errorPattern struct {
	label string
	re    *regexp.Regexp
}

// webErrorTable is the language-agnostic first pass, checked before any
// language-specific table.
var webErrorTable = []errorPattern{
	{"CORS Error", regexp.MustCompile(`(?i)CORS policy|Access-Control-Allow-Origin|No.*Access-Control`)},
	{"Fetch Error", regexp.MustCompile(`(?i)fetch.*failed|Failed to fetch|NetworkError`)},
	{"Cannot read property", regexp.MustCompile(`(?i)Cannot read propert(?:y|ies) ['"](.+?)['"] of`)},
}

var languageErrorTables = map[model.Language][]errorPattern{
	model.LangRust: {
		{"Borrow Checker Error (E0502)", regexp.MustCompile(`E0502`)},
		{"Use After Move (E0382)", regexp.MustCompile(`E0382`)},
		{"Type Mismatch (E0308)", regexp.MustCompile(`E0308`)},
	},
	model.LangPython: {
		{"KeyError", regexp.MustCompile(`KeyError`)},
		{"TypeError", regexp.MustCompile(`TypeError`)},
		{"AttributeError", regexp.MustCompile(`AttributeError`)},
		{"ImportError", regexp.MustCompile(`ImportError|ModuleNotFoundError`)},
		{"ValueError", regexp.MustCompile(`ValueError`)},
	},
	model.LangJS: {
		{"TypeError", regexp.MustCompile(`TypeError`)},
		{"ReferenceError", regexp.MustCompile(`ReferenceError`)},
		{"SyntaxError", regexp.MustCompile(`SyntaxError`)},
	},
	model.LangTS: {
		{"Type Error (TS)", regexp.MustCompile(`TS\d{4}`)},
		{"TypeError", regexp.MustCompile(`TypeError`)},
	},
	model.LangJava: {
		{"NullPointerException", regexp.MustCompile(`NullPointerException`)},
		{"ClassCastException", regexp.MustCompile(`ClassCastException`)},
	},
	model.LangGo: {
		{"Nil Pointer Dereference", regexp.MustCompile(`nil pointer dereference`)},
		{"Index Out of Range", regexp.MustCompile(`index out of range`)},
	},
}

// ExtractErrorType runs the two-pass classification: the web-error table
// first, then the table for lang, returning UnknownErrorType if nothing
// matches.
func ExtractErrorType(errorText string, lang model.Language) string {
	for _, p := range webErrorTable {
		if p.re.MatchString(errorText) {
			return p.label
		}
	}
	for _, p := range languageErrorTables[lang] {
		if p.re.MatchString(errorText) {
			return p.label
		}
	}
	return UnknownErrorType
}
