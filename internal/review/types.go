package review

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

const (
	defaultQualityScore  = 7
	degradedQualityScore = 5
)

// Analysis is the structured form of one PR review. It is built once from the
// raw LLM text and never mutated afterwards, except for ReviewComment which
// originates from a second completion round-trip.
type Analysis struct {
	Summary             string
	BestPractices       []string
	PotentialIssues     []string
	SecurityConcerns    []string
	PerformanceInsights []string
	QualityScore        int
	Recommendations     []string
	ReviewComment       string
}

// Metadata carries the metadata tool's raw JSON, or a synthesized fallback
// record with Err set when the fetch failed.
type Metadata struct {
	Raw string
	Err error
}

func (m Metadata) Title() string  { return gjson.Get(m.Raw, "title").String() }
func (m Metadata) Body() string   { return gjson.Get(m.Raw, "body").String() }
func (m Metadata) Author() string { return gjson.Get(m.Raw, "user.login").String() }

// ChangedFiles returns the filenames listed under "files", in order.
func (m Metadata) ChangedFiles() []string {
	files := gjson.Get(m.Raw, "files")
	if !files.Exists() {
		return nil
	}
	var paths []string
	files.ForEach(func(_, file gjson.Result) bool {
		paths = append(paths, file.Get("filename").String())
		return true
	})
	return paths
}

// FileContent holds one fetched file, or an error marker for that file alone.
type FileContent struct {
	Path    string
	Content string
	Err     error
}

// Bundle is the partial-failure container for one PR: each field may carry an
// error marker independently of the others.
type Bundle struct {
	Metadata Metadata
	DiffText string
	Files    []FileContent
}

func fallbackMetadata(owner, repo string, number int) string {
	raw, err := json.Marshal(map[string]any{
		"owner":  owner,
		"repo":   repo,
		"number": number,
		"title":  fmt.Sprintf("PR #%d", number),
		"body":   "Unable to fetch PR description",
	})
	if err != nil {
		return fmt.Sprintf(`{"number": %d}`, number)
	}
	return string(raw)
}
