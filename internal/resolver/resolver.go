// Package resolver turns a catalog entry into a concrete installer artifact
// by scraping the distribution's listing page.
package resolver

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"regexp"
	"sort"
	"strings"
	"time"

	"vmforge/internal/catalog"
	"vmforge/internal/errors"

	"github.com/briandowns/spinner"
)

// Artifact is the resolved installer reference.
type Artifact struct {
	// URL is absolute and always carries a scheme.
	URL string
	// FileName is the last path segment of URL.
	FileName string
}

// A rotating desktop User-Agent keeps the more protective mirrors from
// rejecting the listing request.
var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36",
	"Mozilla/5.0 (X11; Linux x86_64; rv:109.0) Gecko/20100101 Firefox/115.0",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:109.0) Gecko/20100101",
	"Mozilla/5.0 (X11; Ubuntu; Linux x86_64) AppleWebKit/537.36",
	"Opera/9.80 (Windows NT 6.1; WOW64) Presto/2.12.388 Version/12.18",
	"Lynx/2.8.9rel.1 libwww-FM/2.14 SSL-MM/1.4.1 GNUTLS/3.6.13",
}

var httpClient = &http.Client{Timeout: 60 * time.Second}

// Resolve fetches the entry's listing page and selects the single best
// artifact reference. Selection is deterministic: candidates are ordered by
// descending lexicographic sort of the full matched string, which relies on
// filenames embedding zero-padded version or date tokens.
func Resolve(ctx context.Context, entry catalog.Entry) (Artifact, error) {
	body, err := fetchListing(ctx, entry.ListingURL)
	if err != nil {
		return Artifact{}, err
	}

	candidates, err := extractCandidates(body, entry.LinkPattern, entry.FilterPattern)
	if err != nil {
		return Artifact{}, err
	}
	if len(candidates) == 0 {
		return Artifact{}, errors.E("resolve", errors.NoCandidateFound,
			fmt.Errorf("no link on %s matches pattern '%s'", entry.ListingURL, entry.FilterPattern))
	}

	sort.Sort(sort.Reverse(sort.StringSlice(candidates)))
	selected := candidates[0]

	// A bare path fragment is resolved against the listing URL.
	if !strings.HasPrefix(selected, "https://") {
		selected = entry.ListingURL + selected
	}

	segments := strings.Split(selected, "/")
	return Artifact{
		URL:      selected,
		FileName: segments[len(segments)-1],
	}, nil
}

func fetchListing(ctx context.Context, url string) (string, error) {
	s := spinner.New(spinner.CharSets[9], 100*time.Millisecond)
	s.Suffix = fmt.Sprintf(" Fetching listing page %s...", url)
	s.Start()
	defer s.Stop()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", errors.E("resolve", errors.FetchError, err)
	}
	req.Header.Set("User-Agent", userAgents[rand.Intn(len(userAgents))])

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", errors.E("resolve", errors.FetchError, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", errors.E("resolve", errors.FetchError,
			fmt.Errorf("failed to fetch listing page %s: %s", url, resp.Status))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.E("resolve", errors.FetchError, err)
	}
	return string(body), nil
}

func extractCandidates(body, linkPattern, filterPattern string) ([]string, error) {
	// (?s) makes the pattern treat the body as one multi-line unit.
	linkRe, err := regexp.Compile("(?s)" + linkPattern)
	if err != nil {
		return nil, errors.E("resolve", errors.NoCandidateFound,
			fmt.Errorf("invalid link pattern '%s': %w", linkPattern, err))
	}
	filterRe, err := regexp.Compile(filterPattern)
	if err != nil {
		return nil, errors.E("resolve", errors.NoCandidateFound,
			fmt.Errorf("invalid filter pattern '%s': %w", filterPattern, err))
	}

	var candidates []string
	for _, m := range linkRe.FindAllStringSubmatch(body, -1) {
		link := m[0]
		if len(m) > 1 {
			link = m[1]
		}
		if filterRe.MatchString(link) {
			candidates = append(candidates, link)
		}
	}
	return candidates, nil
}
