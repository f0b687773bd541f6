package mcpclient

import (
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"sigs.k8s.io/yaml"
)

// Capability names a kind of operation the provider is expected to expose.
// Capabilities are resolved against the discovered tool list once per session
// instead of re-scanning tool names on every call.
type Capability string

const (
	CapabilityPullRequest Capability = "pull_request"
	CapabilityDiff        Capability = "diff"
	CapabilityFileContent Capability = "file_content"
	CapabilityComment     Capability = "comment"
)

// keywordGroups drives fallback resolution: groups are tried in order, and
// within a group the first discovered tool whose name contains any keyword
// (case-insensitive) wins.
var keywordGroups = map[Capability][][]string{
	CapabilityPullRequest: {{"pull", "pr"}},
	CapabilityDiff:        {{"diff", "compare"}},
	CapabilityFileContent: {{"content", "file"}},
	CapabilityComment:     {{"comment"}},
}

// CapabilityMap optionally pins capabilities to explicit tool names. A pinned
// name that is not among the discovered tools falls back to keyword scanning.
type CapabilityMap map[Capability]string

// LoadCapabilityMap reads a YAML file mapping capability to tool name. An
// empty path yields an empty map.
func LoadCapabilityMap(path string) (CapabilityMap, error) {
	if path == "" {
		return CapabilityMap{}, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m CapabilityMap
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// resolveCapabilities computes the capability to tool-name table for one
// discovered tool list.
func resolveCapabilities(tools []mcp.Tool, pinned CapabilityMap) map[Capability]string {
	resolved := make(map[Capability]string, len(keywordGroups))
	for capability, groups := range keywordGroups {
		if name, ok := pinned[capability]; ok && hasTool(tools, name) {
			resolved[capability] = name
			continue
		}
		if name, ok := matchByKeywords(tools, groups); ok {
			resolved[capability] = name
		}
	}
	return resolved
}

func hasTool(tools []mcp.Tool, name string) bool {
	for _, t := range tools {
		if t.Name == name {
			return true
		}
	}
	return false
}

func matchByKeywords(tools []mcp.Tool, groups [][]string) (string, bool) {
	for _, group := range groups {
		for _, t := range tools {
			lower := strings.ToLower(t.Name)
			for _, kw := range group {
				if strings.Contains(lower, kw) {
					return t.Name, true
				}
			}
		}
	}
	return "", false
}
