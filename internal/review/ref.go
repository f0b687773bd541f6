package review

import (
	"fmt"
	"strconv"
	"strings"

	vcsurl "github.com/gitsight/go-vcsurl"
)

// ParseRef resolves a pull request reference in either short form
// ("owner/repo#123") or URL form ("https://github.com/owner/repo/pull/123").
func ParseRef(ref string) (owner, repo string, number int, err error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", "", 0, fmt.Errorf("empty PR reference")
	}

	if idx := strings.Index(ref, "#"); idx >= 0 {
		return parseShortRef(ref, idx)
	}
	if idx := strings.Index(ref, "/pull/"); idx >= 0 {
		return parseURLRef(ref, idx)
	}
	return "", "", 0, fmt.Errorf("unrecognized PR reference %q (want owner/repo#number or a PR URL)", ref)
}

func parseShortRef(ref string, sep int) (string, string, int, error) {
	repoPart, numberPart := ref[:sep], ref[sep+1:]
	parts := strings.Split(repoPart, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", 0, fmt.Errorf("invalid repository in reference %q", ref)
	}
	number, err := strconv.Atoi(numberPart)
	if err != nil {
		return "", "", 0, fmt.Errorf("invalid PR number in reference %q", ref)
	}
	return parts[0], parts[1], number, nil
}

func parseURLRef(ref string, sep int) (string, string, int, error) {
	numberPart := strings.Trim(ref[sep+len("/pull/"):], "/")
	if idx := strings.IndexByte(numberPart, '/'); idx >= 0 {
		numberPart = numberPart[:idx]
	}
	number, err := strconv.Atoi(numberPart)
	if err != nil {
		return "", "", 0, fmt.Errorf("invalid PR number in URL %q", ref)
	}

	info, err := vcsurl.Parse(ref[:sep])
	if err != nil {
		return "", "", 0, fmt.Errorf("invalid repository URL %q: %w", ref, err)
	}
	return info.Username, info.Name, number, nil
}
