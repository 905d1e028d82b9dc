package requestq

import (
	"context"
	"io"
	"net/http"

	lg "github.com/Andrej220/go-utils/zlog"
)

// Client is an http.Client wrapper that retries transient failures.
//
// Responses whose status is in the retryable set are converted into
// *HTTPError and fed through the retry loop; every other response,
// including non-retryable error statuses, is handed back to the caller
// as-is.
type Client struct {
	// HTTP performs the requests. Replaceable for transports,
	// timeouts, or tests.
	HTTP *http.Client

	// Retry governs the retry loop around each request.
	Retry RetryOptions
}

// NewClient returns a Client with the given retry options applied over
// a default http.Client.
func NewClient(retry RetryOptions) *Client {
	retry.FillDefaults()
	return &Client{
		HTTP:  &http.Client{},
		Retry: retry,
	}
}

// Do sends the request, retrying transport errors and retryable
// statuses with exponential backoff. The request body, if any, must be
// re-readable: requests built with http.NewRequest carry a GetBody for
// the common body types.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	logger := lg.FromContext(ctx).With(
		lg.String("method", req.Method),
		lg.String("url", req.URL.String()),
	)

	return WithRetry(ctx, func(ctx context.Context) (*http.Response, error) {
		attemptReq := req.Clone(ctx)
		if req.GetBody != nil {
			body, err := req.GetBody()
			if err != nil {
				return nil, err
			}
			attemptReq.Body = body
		}

		resp, err := c.HTTP.Do(attemptReq)
		if err != nil {
			return nil, err
		}
		if c.retryableStatus(resp.StatusCode) {
			// Release the connection before retrying.
			_, _ = io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			logger.Warn("retryable status", lg.Int("status", resp.StatusCode))
			return nil, &HTTPError{Status: resp.StatusCode, URL: req.URL.String()}
		}
		return resp, nil
	}, c.Retry)
}

func (c *Client) retryableStatus(status int) bool {
	statuses := c.Retry.RetryableStatuses
	if statuses == nil {
		statuses = DefaultRetryableStatuses()
	}
	_, ok := statuses[status]
	return ok
}
