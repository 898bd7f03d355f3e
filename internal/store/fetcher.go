package store

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// Fetcher retrieves raw payload documents from a remote data source.
type Fetcher struct {
	client *resty.Client
}

func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Fetcher{
		client: resty.New().
			SetTimeout(timeout).
			SetRetryCount(2).
			SetRetryWaitTime(1 * time.Second).
			SetRetryMaxWaitTime(5 * time.Second),
	}
}

// FetchPayload performs one GET against the source and returns the raw body.
// Transport failures and non-200 responses surface as a LoadError.
func (f *Fetcher) FetchPayload(ctx context.Context, source string) ([]byte, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		Get(source)

	if err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, &LoadError{
			Source: source,
			Err:    fmt.Errorf("unexpected status code %d", resp.StatusCode()),
		}
	}

	return resp.Body(), nil
}
