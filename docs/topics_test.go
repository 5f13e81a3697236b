package docs

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

const (
	bashSetup    = "bash setup"
	bashRun      = "bash run"
	consoleCheck = "console check"
	bashCheck    = "bash check"
)

// topicLine matches the "* name: summary" entries of readme.md.
var topicLine = regexp.MustCompile(`(?m)^\*\s+([a-z_]+):`)

func TestTopics(t *testing.T) {
	readme, err := os.ReadFile("readme.md")
	if err != nil {
		t.Fatal(err)
	}
	var listed []string
	for _, m := range topicLine.FindAllStringSubmatch(string(readme), -1) {
		listed = append(listed, m[1])
		if _, err := Get(m[1]); err != nil {
			t.Errorf("readme.md lists %q: %v", m[1], err)
		}
	}
	names, err := Names()
	if err != nil {
		t.Fatalf("Names() failed: %v", err)
	}
	for _, name := range names {
		if !slices.Contains(listed, name) {
			t.Errorf("topic %q is not listed in readme.md", name)
		}
	}
}

func TestList(t *testing.T) {
	topics, err := List()
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	for _, topic := range topics {
		if topic.Title == "" {
			t.Errorf("topic %q has no title", topic.Name)
		}
	}
	all, err := Get("*")
	if err != nil {
		t.Fatalf("Get(\"*\") failed: %v", err)
	}
	for _, topic := range topics {
		if !strings.Contains(all, "# "+topic.Title+"\n") {
			t.Errorf("Get(\"*\") is missing topic %q", topic.Name)
		}
	}
	if _, err := Get("nope"); err == nil {
		t.Error("Get(\"nope\") succeeded, want an error")
	}
}

// TestCodeBlocks runs the shell scenarios embedded in the topics and the README against a fresh
// finsec binary. A "bash setup" block starts a scenario in a new directory, "bash run" records
// its output for the next "console check", and "bash check" must exit 0.
func TestCodeBlocks(t *testing.T) {
	files, err := filepath.Glob("*.md")
	if err != nil {
		t.Fatal(err)
	}
	files = append(files, "../README.md")

	bin := t.TempDir()
	build := exec.Command("go", "build", "-o", filepath.Join(bin, "finsec"), "../finsec/")
	if out, err := build.CombinedOutput(); err != nil {
		t.Fatalf("go build finsec: %v\n%s", err, out)
	}
	// a local .env or the user settings must not change the outputs
	env := append(os.Environ(),
		fmt.Sprintf("PATH=%s%c%s", bin, os.PathListSeparator, os.Getenv("PATH")),
		"FINSEC_FORMAT=json",
		"FINSEC_LOG_LEVEL=warn",
	)

	for _, file := range files {
		t.Run(file, func(t *testing.T) {
			s := scenario{env: env, dir: t.TempDir()}
			for _, b := range codeBlocks(t, file) {
				s.run(t, b)
			}
		})
	}
}

// codeBlock is a fenced code block of one of the scenario kinds.
type codeBlock struct {
	kind string
	body string
	pos  string // file:line
}

// codeBlocks returns the scenario blocks of a markdown file in document order.
func codeBlocks(t *testing.T, file string) []codeBlock {
	t.Helper()
	src, err := os.ReadFile(file)
	if err != nil {
		t.Fatal(err)
	}
	var blocks []codeBlock
	root := goldmark.DefaultParser().Parse(text.NewReader(src))
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		fcb, ok := n.(*ast.FencedCodeBlock)
		if !entering || !ok || fcb.Info == nil {
			return ast.WalkContinue, nil
		}
		kind := string(fcb.Info.Segment.Value(src))
		switch kind {
		case bashSetup, bashRun, consoleCheck, bashCheck:
		default:
			return ast.WalkContinue, nil
		}
		var body strings.Builder
		for i := 0; i < fcb.Lines().Len(); i++ {
			line := fcb.Lines().At(i)
			body.Write(line.Value(src))
		}
		line := bytes.Count(src[:fcb.Info.Segment.Start], []byte("\n")) + 1
		blocks = append(blocks, codeBlock{kind: kind, body: body.String(), pos: fmt.Sprintf("%s:%d", file, line)})
		return ast.WalkContinue, nil
	})
	return blocks
}

// scenario is the state shared by consecutive blocks of a file.
type scenario struct {
	env    []string
	dir    string
	output string
}

func (s *scenario) run(t *testing.T, b codeBlock) {
	t.Helper()
	if b.kind == consoleCheck {
		got, want := strings.TrimSpace(s.output), strings.TrimSpace(b.body)
		if got != want {
			t.Errorf("%s: output mismatch:\ngot:\n%s\nwant:\n%s\n\ngot: %q\nwant:%q", b.pos, got, want, got, want)
		}
		return
	}
	if b.kind == bashSetup {
		s.dir = t.TempDir()
	}
	cmd := exec.Command("bash", "-c", "set -e; "+b.body)
	cmd.Dir = s.dir
	cmd.Env = s.env
	out, err := cmd.CombinedOutput()
	if b.kind == bashRun {
		s.output = string(out)
	}
	if err == nil {
		return
	}
	if b.kind == bashCheck {
		t.Errorf("%s: check failed: %v\n%s", b.pos, err, out)
		return
	}
	t.Fatalf("%s: %s failed: %v\n%s", b.pos, b.kind, err, out)
}
