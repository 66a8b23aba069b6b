package history

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.wikimedia.org/feed/v1/wikipedia"

// Wikimedia languages with an "on this day" feed we rely on.
var supportedFeeds = map[string]struct{}{
	"en": {}, "it": {}, "de": {}, "fr": {}, "es": {}, "pt": {},
}

// WikimediaClient implements Provider against the Wikimedia feed API.
type WikimediaClient struct {
	baseURL string
	client  *http.Client
}

// NewWikimediaClient builds a client; httpClient may be nil.
func NewWikimediaClient(httpClient *http.Client) *WikimediaClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &WikimediaClient{baseURL: defaultBaseURL, client: httpClient}
}

type onThisDayResponse struct {
	Events []struct {
		Text string `json:"text"`
		Year int    `json:"year"`
	} `json:"events"`
}

// EventOn fetches the day's events and returns one at random.
func (c *WikimediaClient) EventOn(ctx context.Context, date time.Time, lang string) (string, error) {
	if _, ok := supportedFeeds[lang]; !ok {
		lang = "en"
	}
	url := fmt.Sprintf("%s/%s/onthisday/events/%02d/%02d", c.baseURL, lang, date.Month(), date.Day())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("history: feed status %d: %w", resp.StatusCode, ErrUnavailable)
	}
	var parsed onThisDayResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if len(parsed.Events) == 0 {
		return "", ErrUnavailable
	}
	ev := parsed.Events[rand.Intn(len(parsed.Events))]
	if ev.Year != 0 {
		return fmt.Sprintf("%d: %s", ev.Year, ev.Text), nil
	}
	return ev.Text, nil
}
