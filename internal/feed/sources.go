// Package feed ingests recent articles from configured RSS and Atom feeds.
package feed

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Source is one configured feed
type Source struct {
	Name     string `yaml:"name"`
	URL      string `yaml:"url"`
	Reliable bool   `yaml:"reliable"`

	// Category is the group the source was configured under, in
	// human-readable form ("official_government" becomes "Official Government").
	Category string `yaml:"-"`
}

type sourcesFile struct {
	RSSSources map[string][]Source `yaml:"rss_sources"`
}

// LoadSources reads the feed configuration file. Categories are flattened
// into one list, ordered by category name so fetch order is deterministic.
func LoadSources(path string) ([]Source, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sources file: %w", err)
	}

	var parsed sourcesFile
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parse sources file: %w", err)
	}

	categories := make([]string, 0, len(parsed.RSSSources))
	for category := range parsed.RSSSources {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	var sources []Source
	for _, category := range categories {
		for _, source := range parsed.RSSSources[category] {
			source.Category = titleCase(category)
			sources = append(sources, source)
		}
	}
	return sources, nil
}

// titleCase converts "official_government" to "Official Government"
func titleCase(category string) string {
	words := strings.Split(category, "_")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
