package advisor

import (
	"fmt"
	"strings"
)

// SnippetPrompt builds the review prompt for a single snippet.
func SnippetPrompt(content string) string {
	return "Review the following code:\n\n" + content
}

// SamplePrompt concatenates a bounded sample of repository files into
// one review prompt. Each file is prefixed with a path marker comment
// so the reviewer can attribute its remarks.
func SamplePrompt(files []SampleFile) string {
	var b strings.Builder
	b.WriteString("Review the following files from a repository:\n\n")
	for _, f := range files {
		fmt.Fprintf(&b, "// File: %s\n%s\n\n", f.Path, f.Content)
	}
	return b.String()
}

// SampleFile is one file included in a repository sample prompt.
type SampleFile struct {
	Path    string
	Content string
}
