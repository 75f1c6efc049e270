package starharvester

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/gegedenice/star-harvest/utils"
	"github.com/sethgrid/pester"
	log "github.com/sirupsen/logrus"
)

// Fetcher retrieves one raw OAI-PMH response for the given query.
type Fetcher interface {
	Fetch(ctx context.Context, query url.Values) ([]byte, error)
}

// HTTPFetcher issues GET requests against an OAI-PMH base URL.
type HTTPFetcher struct {
	baseURL   string
	userAgent string
	client    *pester.Client
}

// NewHTTPFetcher returns a fetcher with the given timeout. retries is the
// number of extra attempts after a failure; 0 disables retrying. An empty
// baseURL targets the STAR endpoint.
func NewHTTPFetcher(baseURL, userAgent string, timeout time.Duration, retries int) *HTTPFetcher {
	if baseURL == utils.EmptyString {
		baseURL = utils.StarOaiBaseURL
	}
	client := pester.NewExtendedClient(&http.Client{Timeout: timeout})
	client.Concurrency = 1
	client.MaxRetries = retries + 1
	client.Backoff = pester.ExponentialBackoff
	client.LogHook = func(e pester.ErrEntry) {
		log.WithFields(log.Fields{
			"url":     e.URL,
			"attempt": e.Attempt,
			"error":   e.Err,
		}).Warn("OAI-PMH request attempt failed")
	}
	return &HTTPFetcher{baseURL: baseURL, userAgent: userAgent, client: client}
}

// Fetch performs one request and returns the response body. Network errors
// and non-2xx statuses are reported as *TransportError.
func (fetcher *HTTPFetcher) Fetch(ctx context.Context, query url.Values) ([]byte, error) {
	target := fetcher.baseURL + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &TransportError{URL: target, Err: err}
	}
	req.Header.Set("Accept", "application/xml, text/xml")
	if fetcher.userAgent != "" {
		req.Header.Set("User-Agent", fetcher.userAgent)
	}

	log.WithField("url", target).Debug("GET")
	resp, err := fetcher.client.Do(req)
	if err != nil {
		return nil, &TransportError{URL: target, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < statusCodeFirst || resp.StatusCode > statusCodeLast {
		return nil, &TransportError{URL: target, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{URL: target, Err: err}
	}
	return body, nil
}
