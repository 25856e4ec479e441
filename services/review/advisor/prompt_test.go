package advisor

import (
	"strings"
	"testing"
)

func TestSnippetPrompt(t *testing.T) {
	p := SnippetPrompt("eval(x)")
	if !strings.Contains(p, "eval(x)") {
		t.Errorf("prompt missing snippet: %q", p)
	}
}

func TestSamplePrompt(t *testing.T) {
	p := SamplePrompt([]SampleFile{
		{Path: "src/a.js", Content: "const a = 1;"},
		{Path: "src/b.py", Content: "import os"},
	})

	wantFirst := "// File: src/a.js\nconst a = 1;\n\n"
	wantSecond := "// File: src/b.py\nimport os\n\n"
	if !strings.Contains(p, wantFirst) {
		t.Errorf("prompt missing first file block: %q", p)
	}
	if !strings.Contains(p, wantSecond) {
		t.Errorf("prompt missing second file block: %q", p)
	}
	if strings.Index(p, "src/a.js") > strings.Index(p, "src/b.py") {
		t.Error("files must appear in sample order")
	}
}

func TestSamplePrompt_Empty(t *testing.T) {
	p := SamplePrompt(nil)
	if p == "" {
		t.Error("empty sample still produces the instruction preamble")
	}
}
