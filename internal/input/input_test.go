package input

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ppiankov/imradgraph/internal/segment"
)

func TestReadDocument_PlainText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "paper.txt")
	content := "Abstract\nWe hypothesize things.\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := ReadDocument(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got != content {
		t.Errorf("plain text must pass through unchanged, got %q", got)
	}
}

func TestReadDocument_Missing(t *testing.T) {
	if _, err := ReadDocument(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestHTMLText_StripsNonContent(t *testing.T) {
	doc := `<html><head><style>body { color: red }</style>
<script>alert("hi")</script></head>
<body><p>Visible paragraph text.</p><noscript>hidden</noscript></body></html>`

	got, err := HTMLText(doc)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !strings.Contains(got, "Visible paragraph text.") {
		t.Errorf("visible text missing from %q", got)
	}
	for _, banned := range []string{"alert", "color: red", "hidden"} {
		if strings.Contains(got, banned) {
			t.Errorf("non-content %q leaked into %q", banned, got)
		}
	}
}

func TestHTMLText_HeadingsAnchorSections(t *testing.T) {
	doc := `<html><body>
<h2>Methods</h2>
<p>We used a cohort of n=24 mice in the protocol.</p>
<h2>Results</h2>
<p>We analyzed methylation with a regression model.</p>
</body></html>`

	text, err := HTMLText(doc)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	secs := segment.Sections(text)
	var names []string
	for _, s := range secs {
		names = append(names, s.Name)
	}
	joined := strings.Join(names, ",")
	if !strings.Contains(joined, "methods") || !strings.Contains(joined, "results") {
		t.Errorf("headings did not anchor sections: %v", names)
	}
}

func TestReadDocument_HTMLExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "paper.html")
	if err := os.WriteFile(path, []byte("<p>Paragraph body here.</p>"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := ReadDocument(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if strings.Contains(got, "<p>") {
		t.Errorf("html tags must be stripped, got %q", got)
	}
	if !strings.Contains(got, "Paragraph body here.") {
		t.Errorf("text missing from %q", got)
	}
}
