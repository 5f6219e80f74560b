package providers

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/FACorreiaa/go-itinerary-planner/internal/types"
)

const (
	ProviderWiki        = "wiki"
	DefaultWikipediaURL = "https://{lang}.wikipedia.org/api/rest_v1"
)

type WikiProvider interface {
	Summary(ctx context.Context, title, lang string) (types.DestinationInfo, error)
}

// Wikipedia reads the REST page summary. A "{lang}" placeholder in the base
// URL is replaced by the requested language.
type Wikipedia struct {
	http    *httpClient
	baseURL string
}

var _ WikiProvider = (*Wikipedia)(nil)

func NewWikipedia(client *http.Client, baseURL, userAgent string, timeout time.Duration, logger *slog.Logger) *Wikipedia {
	if baseURL == "" {
		baseURL = DefaultWikipediaURL
	}
	return &Wikipedia{
		http:    newHTTPClient(client, timeout, userAgent, logger),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

type wikiSummary struct {
	Title       string `json:"title"`
	Extract     string `json:"extract"`
	ContentURLs struct {
		Desktop struct {
			Page string `json:"page"`
		} `json:"desktop"`
	} `json:"content_urls"`
}

func (w *Wikipedia) Summary(ctx context.Context, title, lang string) (types.DestinationInfo, error) {
	if lang == "" {
		lang = "en"
	}
	base := strings.ReplaceAll(w.baseURL, "{lang}", lang)

	var s wikiSummary
	err := w.http.do(ctx, request{
		provider: ProviderWiki,
		method:   http.MethodGet,
		url:      base + "/page/summary/" + url.PathEscape(title),
		headers:  map[string]string{"Accept-Language": lang},
	}, &s)
	if err != nil {
		return types.DestinationInfo{}, err
	}
	if s.Extract == "" {
		return types.DestinationInfo{}, types.NewFetchError(ProviderWiki, types.ErrNotFound)
	}
	return types.DestinationInfo{
		Title:    s.Title,
		Summary:  s.Extract,
		URL:      s.ContentURLs.Desktop.Page,
		Language: lang,
	}, nil
}
