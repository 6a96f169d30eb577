package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var ownerRepoPattern = regexp.MustCompile(`^[A-Za-z0-9_.\-]+/[A-Za-z0-9_.\-]+$`)

// ParseOwnerRepo normalizes the three accepted repository-reference shapes
// from spec §4.5 ("owner/repo", a full host URL, or a ".git"-suffixed
// clone URL) into (owner, repo). Any other shape is rejected so the repo
// client never has to guess.
func ParseOwnerRepo(input string) (owner, repo string, err error) {
	s := strings.TrimSpace(input)
	s = strings.TrimSuffix(s, "/")

	if strings.Contains(s, "://") {
		parts := strings.SplitN(s, "://", 2)
		s = parts[1]
		if idx := strings.Index(s, "/"); idx >= 0 {
			s = s[idx+1:]
		} else {
			return "", "", fmt.Errorf("repository reference %q has no owner/repo path", input)
		}
	}

	s = strings.TrimSuffix(s, ".git")
	s = strings.TrimSuffix(s, "/")

	segments := strings.Split(s, "/")
	if len(segments) != 2 || segments[0] == "" || segments[1] == "" {
		return "", "", fmt.Errorf("repository reference %q must look like owner/repo, a host URL, or a .git clone URL", input)
	}
	if !ownerRepoPattern.MatchString(segments[0] + "/" + segments[1]) {
		return "", "", fmt.Errorf("repository reference %q contains invalid characters", input)
	}
	return segments[0], segments[1], nil
}
