// Package article fetches web pages and extracts their readable text for
// ingestion.
package article

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/go-shiori/go-readability"

	"github.com/tsumiki/tsumiki/pkg/tokenize"
)

// maxBodySize caps fetched HTML so an untrusted URL can't exhaust memory.
const maxBodySize = 10 * 1024 * 1024

// Article is the extracted, display-ready content of a page.
type Article struct {
	Title string
	Text  string
}

// Fetch downloads the page and extracts its main content. Ruby
// annotations are stripped before extraction so furigana doesn't
// duplicate the kanji it annotates.
func Fetch(ctx context.Context, rawURL string) (Article, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return Article{}, fmt.Errorf("build request: %w", err)
	}
	// Some hosts reject requests without a browser-ish UA.
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept-Language", "ja,en;q=0.8")

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return Article{}, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Article{}, fmt.Errorf("fetch %s: status %d", rawURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return Article{}, fmt.Errorf("read body: %w", err)
	}
	if len(body) >= maxBodySize {
		return Article{}, fmt.Errorf("fetch %s: body exceeds %d bytes", rawURL, maxBodySize)
	}

	body = tokenize.SanitizeRuby(body)

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return Article{}, fmt.Errorf("parse url: %w", err)
	}
	art, err := readability.FromReader(bytes.NewReader(body), parsedURL)
	if err != nil {
		return Article{}, fmt.Errorf("extract article: %w", err)
	}

	return Article{Title: art.Title, Text: art.TextContent}, nil
}

// Sentences splits the article body into ingestible sentences.
func (a Article) Sentences() []string {
	return tokenize.SplitSentences(a.Text)
}
