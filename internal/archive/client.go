// Package archive provides a client for the archive.org search and metadata
// APIs, plus the query builder that compiles user filters into search
// requests.
package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	searchBaseURL   = "https://archive.org/advancedsearch.php"
	metadataBaseURL = "https://archive.org/metadata"
	downloadBaseURL = "https://archive.org/download"
	imageBaseURL    = "https://archive.org/services/img"
	userAgent       = "tapedeck/0.1 (https://github.com/llehouerou/tapedeck)"
)

// Client is an archive.org API client.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a new archive.org client.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Search executes a search request and returns the raw result documents.
func (c *Client) Search(ctx context.Context, spec QuerySpec) ([]Doc, error) {
	params := url.Values{}
	params.Set("q", spec.Query)
	params.Set("fl", strings.Join(spec.Fields, ","))
	params.Set("sort", spec.Sort)
	params.Set("output", "json")
	params.Set("rows", strconv.Itoa(spec.Rows))

	reqURL := fmt.Sprintf("%s?%s", searchBaseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return result.Response.Docs, nil
}

// Metadata fetches the file manifest of a recording. A response without a
// files list yields an empty slice, not an error.
func (c *Client) Metadata(ctx context.Context, identifier string) ([]File, error) {
	reqURL := fmt.Sprintf("%s/%s", metadataBaseURL, url.PathEscape(identifier))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	var result metadataResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return result.Files, nil
}

// DownloadURL composes the direct download locator for a file of a recording.
func DownloadURL(identifier, name string) string {
	return fmt.Sprintf("%s/%s/%s", downloadBaseURL, identifier, name)
}

// ImageURL returns the artwork locator for a collection.
func ImageURL(collection string) string {
	return fmt.Sprintf("%s/%s", imageBaseURL, collection)
}
