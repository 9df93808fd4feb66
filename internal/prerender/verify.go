package prerender

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Verify checks that dir holds a complete prerender output and returns the
// problems found. An empty result means the output is usable.
func Verify(dir string, productIDs, categoryIDs []string) []string {
	var problems []string

	required := []string{SitemapFile, RobotsFile, SchemaIndexFile}
	for _, id := range productIDs {
		required = append(required, ProductFile(id))
	}
	for _, id := range categoryIDs {
		required = append(required, CategoryFile(id))
	}
	for _, name := range required {
		info, err := os.Stat(filepath.Join(dir, name))
		switch {
		case err != nil:
			problems = append(problems, fmt.Sprintf("%s: missing", name))
		case info.Size() == 0:
			problems = append(problems, fmt.Sprintf("%s: empty", name))
		}
	}

	checks := map[string][]string{
		SitemapFile: {"<?xml", "<urlset", "<loc>", "</urlset>"},
		RobotsFile:  {"User-agent:", "Sitemap:"},
	}
	for _, name := range []string{SitemapFile, RobotsFile} {
		raw, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			continue
		}
		for _, marker := range checks[name] {
			if !strings.Contains(string(raw), marker) {
				problems = append(problems, fmt.Sprintf("%s: missing %q", name, marker))
			}
		}
	}
	return problems
}
