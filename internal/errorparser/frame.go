package errorparser

import (
	"regexp"
	"strconv"
)

type framePattern struct {
	re      *regexp.Regexp
	fileIdx int
	lineIdx int
}

// frameTables are tried in order; the first one whose regex matches wins.
// Each captures the source file and line number from a language's
// characteristic frame/traceback line.
var frameTables = []framePattern{
	{regexp.MustCompile(`-->\s*(\S+):(\d+):\d+`), 1, 2},      // Rust: --> src/main.rs:7:5
	{regexp.MustCompile(`File "([^"]+)", line (\d+)`), 1, 2}, // Python: File "main.py", line 3
	{regexp.MustCompile(`at .*?\(?([^\s()]+):(\d+):\d+\)?`), 1, 2}, // JS: at foo (index.js:12:9)
}

// ExtractFrame returns the first file/line pair found in errorText per
// frameTables, or ("", 0) if none match.
func ExtractFrame(errorText string) (file string, line int) {
	for _, p := range frameTables {
		m := p.re.FindStringSubmatch(errorText)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[p.lineIdx])
		if err != nil {
			continue
		}
		return m[p.fileIdx], n
	}
	return "", 0
}
