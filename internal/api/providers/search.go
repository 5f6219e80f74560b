package providers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/FACorreiaa/go-itinerary-planner/internal/types"
)

const (
	ProviderSearch   = "search"
	DefaultTavilyURL = "https://api.tavily.com"
)

type SearchResult struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

type SearchProvider interface {
	Search(ctx context.Context, query string, maxResults int) ([]SearchResult, error)
}

// Tavily is the web search used by the agent research step.
type Tavily struct {
	http    *httpClient
	baseURL string
	apiKey  string
}

var _ SearchProvider = (*Tavily)(nil)

func NewTavily(client *http.Client, baseURL, apiKey string, timeout time.Duration, logger *slog.Logger) *Tavily {
	if baseURL == "" {
		baseURL = DefaultTavilyURL
	}
	return &Tavily{
		http:    newHTTPClient(client, timeout, "", logger),
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
	}
}

func (t *Tavily) Configured() bool { return t.apiKey != "" }

type tavilyRequest struct {
	APIKey     string `json:"api_key"`
	Query      string `json:"query"`
	MaxResults int    `json:"max_results"`
}

type tavilyResponse struct {
	Results []SearchResult `json:"results"`
}

func (t *Tavily) Search(ctx context.Context, query string, maxResults int) ([]SearchResult, error) {
	if !t.Configured() {
		return nil, notConfigured(ProviderSearch)
	}
	if maxResults <= 0 {
		maxResults = 5
	}

	var resp tavilyResponse
	err := t.http.do(ctx, request{
		provider: ProviderSearch,
		method:   http.MethodPost,
		url:      t.baseURL + "/search",
		body:     tavilyRequest{APIKey: t.apiKey, Query: query, MaxResults: maxResults},
	}, &resp)
	if err != nil {
		return nil, err
	}
	if len(resp.Results) == 0 {
		return nil, types.NewFetchError(ProviderSearch, types.ErrNotFound)
	}
	return resp.Results, nil
}
