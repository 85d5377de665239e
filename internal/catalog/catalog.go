// Package catalog holds the registry of supported distributions. Each entry
// pairs a listing URL with the two regular expressions that drive artifact
// resolution, so new distributions are added by data, not code.
package catalog

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"vmforge/internal/errors"

	"gopkg.in/yaml.v3"
)

// Entry describes where and how to find installer artifacts for one
// distribution.
type Entry struct {
	// Name is the registry key, matched case-insensitively.
	Name string `yaml:"name"`
	// ListingURL is the directory or download page to scrape.
	ListingURL string `yaml:"url"`
	// LinkPattern extracts link values from the page body. It must capture
	// one group: the href value. The body is matched as a single unit, so
	// patterns may span newlines.
	LinkPattern string `yaml:"link_pattern"`
	// FilterPattern narrows the extracted links down to installer images.
	FilterPattern string `yaml:"filter_pattern"`
}

// Registry is an immutable name -> Entry mapping, built once at startup.
type Registry struct {
	entries map[string]Entry
}

// Builtin returns the registry seeded with the distributions vmforge knows
// out of the box.
func Builtin() *Registry {
	r := &Registry{entries: map[string]Entry{}}
	for _, e := range []Entry{
		{
			Name:          "archlinux",
			ListingURL:    "https://archlinux.cu.be/iso/latest/",
			LinkPattern:   `href="(.*?)"`,
			FilterPattern: `archlinux-[0-9]+\.[0-9]+\.[0-9]+-.*\.iso$`,
		},
		{
			Name:          "manjaro",
			ListingURL:    "https://manjaro.org/download/",
			LinkPattern:   `<a id="btn-mi" href="(.*?)"`,
			FilterPattern: `.*/manjaro-xfce-.*\.iso$`,
		},
	} {
		r.entries[e.Name] = e
	}
	return r
}

// Lookup returns the entry registered under name. The match is
// case-insensitive.
func (r *Registry) Lookup(name string) (Entry, error) {
	e, ok := r.entries[strings.ToLower(name)]
	if !ok {
		return Entry{}, errors.E("catalog-lookup", errors.UnknownDistribution,
			fmt.Errorf("'%s' is not an available distribution, use --list to see the available ones", name))
	}
	return e, nil
}

// Names returns the registered distribution names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MergeFile overlays entries from a YAML catalog file on top of the
// registry. A missing file is not an error; a malformed one is.
func (r *Registry) MergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}

	var entries []Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("failed to parse catalog file %s: %w", path, err)
	}

	for _, e := range entries {
		if err := validate(e); err != nil {
			return fmt.Errorf("invalid catalog entry in %s: %w", path, err)
		}
		r.entries[strings.ToLower(e.Name)] = e
	}
	return nil
}

func validate(e Entry) error {
	if e.Name == "" {
		return fmt.Errorf("entry has no name")
	}
	if e.ListingURL == "" {
		return fmt.Errorf("entry '%s' has no url", e.Name)
	}
	if _, err := regexp.Compile(e.LinkPattern); err != nil {
		return fmt.Errorf("entry '%s' has an invalid link_pattern: %w", e.Name, err)
	}
	if _, err := regexp.Compile(e.FilterPattern); err != nil {
		return fmt.Errorf("entry '%s' has an invalid filter_pattern: %w", e.Name, err)
	}
	return nil
}
