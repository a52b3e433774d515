// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// maxErrorBody caps how much of a failed response body is kept for the
// error message.
const maxErrorBody = 512

// StatusError is returned for non-2xx responses. The body is never decoded
// as a success payload; a snippet is carried here instead.
type StatusError struct {
	URL    string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s returned HTTP %d", e.URL, e.Status)
	}
	return fmt.Sprintf("%s returned HTTP %d: %s", e.URL, e.Status, e.Body)
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Status == code
}

// RequestOptions carries per-request header and retry settings.
type RequestOptions struct {
	// UserAgent is sent as the User-Agent header when non-empty.
	UserAgent string

	// APIKey is sent as "Authorization: Bearer <key>" when non-empty.
	APIKey string

	// MaxRetries enables 429 backoff via DoWithRetry when positive.
	// Zero means a single attempt.
	MaxRetries int
}

// PostJSON marshals in, POSTs it to url, and decodes the response into out.
// The response is decoded only after a 2xx status is confirmed; otherwise a
// *StatusError carrying the status code and a body snippet is returned.
// A nil out skips decoding.
func PostJSON(ctx context.Context, client *http.Client, url string, in, out any, opts RequestOptions) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	newReq := func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		setHeaders(req, opts)
		return req, nil
	}

	var resp *http.Response
	if opts.MaxRetries > 0 {
		resp, err = DoWithRetry(ctx, client, newReq, opts.MaxRetries)
	} else {
		var req *http.Request
		req, err = newReq()
		if err != nil {
			return err
		}
		resp, err = client.Do(req)
	}
	if err != nil {
		return fmt.Errorf("POST %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(url, resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("parsing response from %s: %w", url, err)
	}
	return nil
}

// GetOK issues a GET and returns nil on a 2xx status. Non-2xx responses
// return a *StatusError; transport failures return the underlying error.
func GetOK(ctx context.Context, client *http.Client, url string, opts RequestOptions) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	setHeaders(req, opts)

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(url, resp)
	}
	io.Copy(io.Discard, resp.Body)
	return nil
}

func setHeaders(req *http.Request, opts RequestOptions) {
	if opts.UserAgent != "" {
		req.Header.Set("User-Agent", opts.UserAgent)
	}
	if opts.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+opts.APIKey)
	}
}

func statusError(url string, resp *http.Response) *StatusError {
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &StatusError{
		URL:    url,
		Status: resp.StatusCode,
		Body:   string(bytes.TrimSpace(snippet)),
	}
}
