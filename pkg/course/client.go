package course

import (
	"fmt"
	"io"
	"net/http"
	"time"
)

var baseURL = "https://www.polymtl.ca/etudes/cours/utils"

// Fetcher retrieves the raw course document for a sigil.
type Fetcher interface {
	Fetch(sigil string) ([]byte, error)
}

// Client downloads course documents from the Polytechnique course service.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a new course service client.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Fetch performs a single GET against the course service and returns the raw
// XML document. The sigil is passed to the service exactly as given.
func (c *Client) Fetch(sigil string) ([]byte, error) {
	url := fmt.Sprintf("%s/ficheXML.php?sigle=%s", baseURL, sigil)
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d when fetching %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read course document for %s: %w", sigil, err)
	}

	return body, nil
}
