// Package preflight validates a pull request against the GitHub API before a
// provider session is opened. Supplying a PR that does not exist is a caller
// error, not a fetch-phase failure.
package preflight

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/go-github/v66/github"
	"golang.org/x/oauth2"
)

// ErrNotFound reports that the referenced pull request does not exist.
var ErrNotFound = errors.New("pull request not found")

func NewClient(token string) *github.Client {
	if token == "" {
		return github.NewClient(&http.Client{Timeout: 30 * time.Second})
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(context.Background(), ts)
	tc.Timeout = 30 * time.Second
	return github.NewClient(tc)
}

// VerifyPR checks that owner/repo#number exists. It returns ErrNotFound for a
// confirmed 404; any other API failure is returned as-is so callers can treat
// an unreachable API as non-fatal.
func VerifyPR(ctx context.Context, client *github.Client, owner, repo string, number int) error {
	_, resp, err := client.PullRequests.Get(ctx, owner, repo, number)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%w: %s/%s#%d", ErrNotFound, owner, repo, number)
		}
		return err
	}
	return nil
}
