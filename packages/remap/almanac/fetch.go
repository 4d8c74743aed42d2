package almanac

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
)

var ErrFetch = errors.New("fetch failed")

// Fetcher downloads puzzle input, authenticating with a session cookie when one is set.
type Fetcher struct {
	client  *resty.Client
	session string
}

func NewFetcher(r *resty.Client, session string) *Fetcher {
	return &Fetcher{
		client:  r,
		session: session,
	}
}

func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req := f.client.
		NewRequest().
		SetContext(ctx).
		SetHeader("Accept", "text/plain").
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			return resp != nil &&
				(resp.StatusCode() == http.StatusTooManyRequests || resp.StatusCode() >= http.StatusInternalServerError)
		})
	if f.session != "" {
		req.SetCookie(&http.Cookie{Name: "session", Value: f.session})
	}

	resp, err := req.Get(url)
	if err != nil {
		return nil, fmt.Errorf("err executing request: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: %s: %s", ErrFetch, url, resp.Status())
	}

	return resp.Body(), nil
}
