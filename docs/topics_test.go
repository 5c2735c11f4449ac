package docs

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"testing"

	"github.com/etnz/tradestats"
	"github.com/etnz/tradestats/sheet"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

func TestTopics(t *testing.T) {
	// Every topic listed in readme.md loads, and every .md file is listed.
	file, err := os.Open("readme.md")
	if err != nil {
		t.Fatalf("failed to open readme.md: %v", err)
	}
	defer file.Close()

	var listed []string
	scanner := bufio.NewScanner(file)
	topicRegex := regexp.MustCompile(`^\*\s+([^:]+):.*$`)
	for scanner.Scan() {
		if m := topicRegex.FindStringSubmatch(scanner.Text()); len(m) > 1 {
			listed = append(listed, strings.TrimSpace(m[1]))
		}
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("error scanning readme.md: %v", err)
	}

	for _, topic := range listed {
		if _, err := GetTopic(topic); err != nil {
			t.Errorf("failed to get topic %q: %v", topic, err)
		}
	}

	all, err := GetAllTopics()
	if err != nil {
		t.Fatal(err)
	}
	for _, topic := range all {
		if !slices.Contains(listed, topic) {
			t.Errorf("topic %q is not listed in readme.md", topic)
		}
	}
}

func TestGetTopics(t *testing.T) {
	all, err := GetTopics("*")
	if err != nil {
		t.Fatal(err)
	}
	for _, heading := range []string{"# Ledger", "# Charges", "# Statistics"} {
		if !strings.Contains(all, heading) {
			t.Errorf("all topics miss %q", heading)
		}
	}
	if strings.Contains(all, "# pnl user manual") {
		t.Error("all topics should not include the readme")
	}
	if _, err := GetTopics("ledger", "nope"); err == nil {
		t.Error("GetTopics with an unknown topic = nil error")
	}
}

// Block is a fenced code block of a markdown file.
type Block struct {
	Lang    string
	Content string
	File    string
	Line    int
}

// TestCodeBlocks checks the examples of the manual against the code.
func TestCodeBlocks(t *testing.T) {
	files, err := filepath.Glob("*.md")
	if err != nil {
		t.Fatal(err)
	}
	for _, file := range files {
		for _, b := range parseMarkdown(t, file) {
			switch b.Lang {
			case "csv":
				rows, err := sheet.ReadCSV(strings.NewReader(b.Content))
				if err != nil {
					t.Errorf("%s:%d: %v", b.File, b.Line, err)
					continue
				}
				if _, report := tradestats.Ingest(rows); report.Dropped() > 0 || report.Trades == 0 {
					t.Errorf("%s:%d: example ledger does not ingest cleanly: %s", b.File, b.Line, report)
				}
			case "yaml":
				if _, err := tradestats.ParseFees([]byte(b.Content)); err != nil {
					t.Errorf("%s:%d: %v", b.File, b.Line, err)
				}
			}
		}
	}
}

// parseMarkdown returns the fenced code blocks of a markdown file.
func parseMarkdown(t *testing.T, file string) []*Block {
	t.Helper()
	content, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("failed to read %s: %v", file, err)
	}
	root := goldmark.DefaultParser().Parse(text.NewReader(content))

	var blocks []*Block
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fcb, ok := n.(*ast.FencedCodeBlock)
		if !ok || fcb.Info == nil {
			return ast.WalkContinue, nil
		}
		var b strings.Builder
		for i := 0; i < fcb.Lines().Len(); i++ {
			line := fcb.Lines().At(i)
			b.Write(line.Value(content))
		}
		blocks = append(blocks, &Block{
			Lang:    string(fcb.Language(content)),
			Content: b.String(),
			File:    file,
			Line:    bytes.Count(content[:fcb.Info.Segment.Start], []byte{'\n'}) + 1,
		})
		return ast.WalkContinue, nil
	})
	return blocks
}
