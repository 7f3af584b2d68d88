// Package dependents discovers which packages and repositories depend on a
// given GitHub repository. GitHub exposes its dependency graph only through
// the dependents web pages, so this package scrapes them.
package dependents

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const defaultBaseURL = "https://github.com"

// userAgent identifies the crawler; GitHub serves the dependents pages to
// anonymous clients but rejects requests without one.
const userAgent = "gh-usermap"

// Package is one package of a repository together with the full names
// ("owner/repo") of its public dependents.
type Package struct {
	Name       string
	Dependents []string
}

// Client fetches dependents information from the GitHub web UI.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a Client talking to github.com.
func NewClient() *Client {
	return &Client{httpClient: http.DefaultClient, baseURL: defaultBaseURL}
}

// NewClientWithBase creates a Client against an alternate base URL. Used in
// tests against a local server.
func NewClientWithBase(httpClient *http.Client, baseURL string) *Client {
	return &Client{httpClient: httpClient, baseURL: strings.TrimRight(baseURL, "/")}
}

// Fetch returns the packages of the repository named "owner/repo" and their
// public dependents. Repositories whose dependency graph lists no separate
// packages yield a single unnamed Package.
func (c *Client) Fetch(ctx context.Context, fullName string) ([]Package, error) {
	rootURL := fmt.Sprintf("%s/%s/network/dependents", c.baseURL, fullName)
	doc, err := c.get(ctx, rootURL)
	if err != nil {
		return nil, fmt.Errorf("fetching dependents for %s: %w", fullName, err)
	}

	menu := packageMenu(doc, rootURL)
	if len(menu) == 0 {
		deps, err := c.dependentsFrom(ctx, doc, rootURL)
		if err != nil {
			return nil, fmt.Errorf("fetching dependents for %s: %w", fullName, err)
		}
		return []Package{{Name: fullName, Dependents: deps}}, nil
	}

	var packages []Package
	for _, entry := range menu {
		doc, err := c.get(ctx, entry.url)
		if err != nil {
			return nil, fmt.Errorf("fetching dependents for package %s of %s: %w", entry.name, fullName, err)
		}
		deps, err := c.dependentsFrom(ctx, doc, entry.url)
		if err != nil {
			return nil, fmt.Errorf("fetching dependents for package %s of %s: %w", entry.name, fullName, err)
		}
		packages = append(packages, Package{Name: entry.name, Dependents: deps})
	}
	return packages, nil
}

type menuEntry struct {
	name string
	url  string
}

// packageMenu extracts the per-package links from the dependents page. The
// page lists one select-menu entry per package when the repository publishes
// more than one.
func packageMenu(doc *goquery.Document, pageURL string) []menuEntry {
	var entries []menuEntry
	doc.Find("a.select-menu-item[href*='package_id=']").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok {
			return
		}
		entries = append(entries, menuEntry{
			name: strings.TrimSpace(s.Text()),
			url:  resolveRef(pageURL, href),
		})
	})
	return entries
}

// dependentsFrom walks the dependent rows of doc and follows "Next"
// pagination links until none remain.
func (c *Client) dependentsFrom(ctx context.Context, doc *goquery.Document, pageURL string) ([]string, error) {
	var deps []string
	for {
		doc.Find("#dependents .Box-row a[data-hovercard-type='repository']").Each(func(_ int, s *goquery.Selection) {
			href, ok := s.Attr("href")
			if !ok {
				return
			}
			if name := strings.Trim(href, "/"); name != "" {
				deps = append(deps, name)
			}
		})

		next := ""
		doc.Find(".paginate-container a").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if strings.TrimSpace(s.Text()) != "Next" {
				return true
			}
			if href, ok := s.Attr("href"); ok {
				next = resolveRef(pageURL, href)
			}
			return false
		})
		if next == "" {
			return deps, nil
		}

		var err error
		doc, err = c.get(ctx, next)
		if err != nil {
			return nil, err
		}
		pageURL = next
	}
}

func (c *Client) get(ctx context.Context, rawURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: unexpected status %d", rawURL, resp.StatusCode)
	}
	return goquery.NewDocumentFromReader(resp.Body)
}

// resolveRef resolves href against the page it appeared on, so relative
// pagination links work.
func resolveRef(pageURL, href string) string {
	base, err := url.Parse(pageURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
