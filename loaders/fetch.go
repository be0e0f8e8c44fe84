package loaders

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// MaxDocumentSize limits remote documents.
const MaxDocumentSize = 16 << 20

func isRemote(location string) bool {
	return strings.HasPrefix(location, "http://") ||
		strings.HasPrefix(location, "https://")
}

// Fetch downloads a remote document.
func Fetch(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: %s", url, resp.Status)
	}
	content, err := io.ReadAll(io.LimitReader(resp.Body, MaxDocumentSize+1))
	if err != nil {
		return nil, err
	}
	if len(content) > MaxDocumentSize {
		return nil, fmt.Errorf("fetch %s: document too large", url)
	}
	return content, nil
}
