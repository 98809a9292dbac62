package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"iter"
	"net/http"

	"github.com/google/go-github/v62/github"
	"github.com/sirupsen/logrus"
)

// pageFunc requests a single page of a listing endpoint.
type pageFunc[T any] func(ctx context.Context, opts github.ListOptions) ([]T, *github.Response, error)

// pager walks a paginated GitHub listing one page at a time.
// Iteration stops at the first empty page or the first failed request; a failure
// is logged and whatever was yielded before it stands.
type pager[T any] struct {
	resource string
	perPage  int
	fetch    pageFunc[T]
	logger   *logrus.Logger
}

// all returns a lazy sequence over every item of the listing. Each range over
// the returned sequence restarts from the first page.
func (p pager[T]) all(ctx context.Context) iter.Seq[T] {
	return func(yield func(T) bool) {
		for page := 1; ; page++ {
			if ctx.Err() != nil {
				p.logFailure(page, nil, ctx.Err())
				return
			}
			items, resp, err := p.fetch(ctx, github.ListOptions{Page: page, PerPage: p.perPage})
			if err != nil {
				p.logFailure(page, resp, err)
				return
			}
			if len(items) == 0 {
				return
			}
			p.logger.WithFields(logrus.Fields{"resource": p.resource, "page": page, "items": len(items)}).Debug("Fetched page")
			for _, item := range items {
				if !yield(item) {
					return
				}
			}
		}
	}
}

func (p pager[T]) logFailure(page int, resp *github.Response, err error) {
	status := 0
	if resp != nil && resp.Response != nil {
		status = resp.StatusCode
	}
	entry := p.logger.WithFields(logrus.Fields{
		"resource": p.resource,
		"page":     page,
		"status":   status,
	}).WithError(err)

	var (
		rateErr   *github.RateLimitError
		abuseErr  *github.AbuseRateLimitError
		typeErr   *json.UnmarshalTypeError
		syntaxErr *json.SyntaxError
	)
	switch {
	case errors.As(err, &rateErr), errors.As(err, &abuseErr):
		entry.Warn("Rate limited, stopping pagination")
	case status == http.StatusOK && (errors.As(err, &typeErr) || errors.As(err, &syntaxErr)):
		entry.Warn("Response is not a collection, treating as end of data")
	default:
		entry.Warn("Fetch failed, stopping pagination")
	}
}
