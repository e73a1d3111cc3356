package git

import (
	"bufio"
	"bytes"
	"fmt"
	"os/exec"
	"strings"

	"agentlint/internal/crawler"
)

// ChangedDocs runs git diff against the base ref and returns the Markdown
// documents that were added or modified.
func ChangedDocs(baseRef string) ([]string, error) {
	cmd := exec.Command("git", "diff", "--name-only", "--diff-filter=ACMR", baseRef)
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("git diff failed: %w", err)
	}
	return parseChangedDocs(output), nil
}

func parseChangedDocs(output []byte) []string {
	scanner := bufio.NewScanner(bytes.NewReader(output))
	var docs []string
	for scanner.Scan() {
		path := strings.TrimSpace(scanner.Text())
		if path == "" {
			continue
		}
		if crawler.IsMarkdown(path) {
			docs = append(docs, path)
		}
	}
	return docs
}
