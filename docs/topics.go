// Package docs holds the finsec documentation topics, embedded in the binary.
package docs

import (
	"bufio"
	"embed"
	"fmt"
	"io/fs"
	"slices"
	"strings"
)

//go:embed *.md
var files embed.FS

// Topic is a documentation page.
type Topic struct {
	Name  string // file name without extension
	Title string // first heading
}

// Get returns the markdown of a topic. "*" returns every topic, in name order.
func Get(name string) (string, error) {
	if name == "*" {
		names, err := Names()
		if err != nil {
			return "", err
		}
		return Join(names...)
	}
	content, err := files.ReadFile(name + ".md")
	if err != nil {
		return "", fmt.Errorf("topic %q not found: %w", name, err)
	}
	return string(content), nil
}

// Join returns the markdown of several topics separated by a blank line.
func Join(names ...string) (string, error) {
	var b strings.Builder
	for _, name := range names {
		content, err := Get(name)
		if err != nil {
			return "", err
		}
		b.WriteString(content)
		b.WriteString("\n")
	}
	return b.String(), nil
}

// Names returns the sorted names of the topics, the readme excluded.
func Names() ([]string, error) {
	entries, err := fs.ReadDir(files, ".")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		name, ok := strings.CutSuffix(e.Name(), ".md")
		if !ok || e.IsDir() || name == "readme" {
			continue
		}
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

// List returns every topic with its title.
func List() ([]Topic, error) {
	names, err := Names()
	if err != nil {
		return nil, err
	}
	topics := make([]Topic, 0, len(names))
	for _, name := range names {
		content, err := Get(name)
		if err != nil {
			return nil, err
		}
		topics = append(topics, Topic{Name: name, Title: title(content)})
	}
	return topics, nil
}

// title returns the text of the first markdown heading.
func title(content string) string {
	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "#") {
			return strings.TrimSpace(strings.TrimLeft(line, "#"))
		}
	}
	return ""
}
