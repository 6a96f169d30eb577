package repo

import (
	"net/url"
	"strconv"
	"strings"
)

func itoa(n int) string {
	return strconv.Itoa(n)
}

func urlEscape(s string) string {
	return url.QueryEscape(s)
}

// splitOwnerRepo splits a repo host's "owner/repo" full_name field, distinct
// from pkg/validation.ParseOwnerRepo which parses caller-supplied input in
// several URL shapes.
func splitOwnerRepo(fullName string) (owner, repo string, ok bool) {
	parts := strings.SplitN(fullName, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}
