package sitemap

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Crawler fetches sitemap XML and scrapes page titles for gap analysis.
type Crawler struct {
	userAgent  string
	httpClient *http.Client

	// MaxPages caps how many pages CollectTitles will scrape per sitemap.
	MaxPages int
}

func NewCrawler(userAgent string) *Crawler {
	return &Crawler{
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		MaxPages:   200,
	}
}

type urlSet struct {
	URLs []struct {
		Loc string `xml:"loc"`
	} `xml:"url"`
}

type sitemapIndex struct {
	Sitemaps []struct {
		Loc string `xml:"loc"`
	} `xml:"sitemap"`
}

func (c *Crawler) get(ctx context.Context, target string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, target)
	}
	return resp, nil
}

// FetchURLs returns the page URLs listed in a sitemap. A sitemap index is
// followed one level deep.
func (c *Crawler) FetchURLs(ctx context.Context, sitemapURL string) ([]string, error) {
	resp, err := c.get(ctx, sitemapURL)
	if err != nil {
		return nil, fmt.Errorf("sitemap fetch: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("sitemap read: %w", err)
	}

	var set urlSet
	if err := xml.Unmarshal(raw, &set); err == nil && len(set.URLs) > 0 {
		urls := make([]string, 0, len(set.URLs))
		for _, u := range set.URLs {
			urls = append(urls, u.Loc)
		}
		return urls, nil
	}

	var index sitemapIndex
	if err := xml.Unmarshal(raw, &index); err != nil || len(index.Sitemaps) == 0 {
		return nil, fmt.Errorf("sitemap parse %s: no urls or child sitemaps", sitemapURL)
	}

	var urls []string
	for _, child := range index.Sitemaps {
		childURLs, err := c.FetchURLs(ctx, child.Loc)
		if err != nil {
			slog.Warn("skipping child sitemap", "url", child.Loc, "error", err)
			continue
		}
		urls = append(urls, childURLs...)
	}
	return urls, nil
}

// ScrapeTitle fetches a page and returns its <title> text.
func (c *Crawler) ScrapeTitle(ctx context.Context, pageURL string) (string, error) {
	resp, err := c.get(ctx, pageURL)
	if err != nil {
		return "", fmt.Errorf("page fetch: %w", err)
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("page parse %s: %w", pageURL, err)
	}

	title := doc.Find("title").First().Text()
	if title == "" {
		return "", fmt.Errorf("no title found at %s", pageURL)
	}
	return title, nil
}

// CollectTitles walks a sitemap and scrapes page titles up to MaxPages.
// Pages that fail to fetch or have no title are skipped with a warning.
func (c *Crawler) CollectTitles(ctx context.Context, sitemapURL string) ([]string, error) {
	urls, err := c.FetchURLs(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}

	if c.MaxPages > 0 && len(urls) > c.MaxPages {
		urls = urls[:c.MaxPages]
	}

	titles := make([]string, 0, len(urls))
	for _, pageURL := range urls {
		title, err := c.ScrapeTitle(ctx, pageURL)
		if err != nil {
			slog.Warn("skipping page", "url", pageURL, "error", err)
			continue
		}
		titles = append(titles, title)
	}

	slog.Info("collected titles from sitemap", "sitemap", sitemapURL, "pages", len(urls), "titles", len(titles))
	return titles, nil
}
