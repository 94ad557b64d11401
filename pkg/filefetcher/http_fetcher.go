package filefetcher

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"github.com/pkg/errors"
	"github.com/ryanuber/go-glob"
)

type httpGetFunc func(ctx context.Context, url string) (resp *http.Response, err error)

type HttpFetcher struct {
	getter         httpGetFunc
	allowedDomains []string
}

var _ Fetcher = (*HttpFetcher)(nil)

// NewHttpFetcher creates fetcher accepting only sources whose host matches
// one of allowedDomains glob patterns. Empty list allows every domain.
func NewHttpFetcher(allowedDomains []string) *HttpFetcher {
	getFunc := func(ctx context.Context, url string) (resp *http.Response, err error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}

		return http.DefaultClient.Do(req)
	}

	return &HttpFetcher{getFunc, allowedDomains}
}

func (fetcher *HttpFetcher) Fetch(ctx context.Context, sourceURL string, w io.Writer) (int64, error) {
	if !fetcher.isAllowedSourceDomain(sourceURL) {
		return 0, ErrDomainNotAllowed
	}

	response, err := fetcher.getter(ctx, sourceURL)
	if err != nil {
		return 0, err
	}
	defer response.Body.Close()

	if response.StatusCode == http.StatusNotFound {
		return 0, ErrResponseStatus404
	} else if response.StatusCode != http.StatusOK {
		return 0, ErrResponseStatusNotOK
	}

	n, err := io.Copy(w, response.Body)
	if err != nil {
		return n, errors.Wrapf(err, "cannot copy body of %s", sourceURL)
	}

	return n, nil
}

func (fetcher *HttpFetcher) isAllowedSourceDomain(sourceURL string) bool {
	if len(fetcher.allowedDomains) == 0 {
		return true
	}

	parsed, err := url.Parse(sourceURL)
	if err != nil {
		return false
	}

	sourceDomain := parsed.Hostname()
	for _, allowedDomain := range fetcher.allowedDomains {
		if glob.Glob(allowedDomain, sourceDomain) {
			return true
		}
	}

	return false
}

var (
	ErrResponseStatusNotOK = errors.New("response returned non-200 status code")
	ErrResponseStatus404   = errors.New("response returned 404 status code")
	ErrDomainNotAllowed    = errors.New("source domain is not allowed")
)
