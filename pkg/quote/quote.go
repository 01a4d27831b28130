package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

type Quote struct {
	Content string `json:"content"`
	Author  string `json:"author"`
}

// Fallback is shown whenever the quote service cannot be reached.
var Fallback = Quote{
	Content: "Education is the most powerful weapon which you can use to change the world.",
	Author:  "Nelson Mandela",
}

func (q Quote) String() string {
	return fmt.Sprintf("%q - %s", q.Content, q.Author)
}

// Fetch asks url for a random quote. Any failure, including a timeout, is
// logged at debug level and yields Fallback with live set to false.
func Fetch(ctx context.Context, client *http.Client, url string, timeout time.Duration, logger *zap.Logger) (q Quote, live bool) {
	if client == nil {
		client = http.DefaultClient
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	q, err := fetch(ctx, client, url)
	if err != nil {
		logger.Debug("Quote service unavailable, using fallback", zap.String("url", url), zap.Error(err))
		return Fallback, false
	}
	return q, true
}

func fetch(ctx context.Context, client *http.Client, url string) (Quote, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Quote{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return Quote{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Quote{}, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return Quote{}, err
	}

	// Some endpoints wrap the quote in a one-element array.
	var q Quote
	if err := json.Unmarshal(body, &q); err != nil {
		var list []Quote
		if err2 := json.Unmarshal(body, &list); err2 != nil || len(list) == 0 {
			return Quote{}, fmt.Errorf("failed to decode quote: %w", err)
		}
		q = list[0]
	}
	if strings.TrimSpace(q.Content) == "" {
		return Quote{}, fmt.Errorf("empty quote")
	}
	if q.Author == "" {
		q.Author = "Unknown"
	}
	return q, nil
}
