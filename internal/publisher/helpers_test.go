package publisher

import (
	"io"
	"net/http"
	"strings"
)

// roundTripFunc lets a test answer requests addressed to the real API hosts
// so signatures can be checked against fixed fixtures.
type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

type capturedRequest struct {
	Method string
	URL    string
	Header http.Header
	Body   string
}

func capturingClient(status int, respBody string, captured *capturedRequest) *http.Client {
	return &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		body, _ := io.ReadAll(r.Body)
		*captured = capturedRequest{
			Method: r.Method,
			URL:    r.URL.String(),
			Header: r.Header.Clone(),
			Body:   string(body),
		}
		return &http.Response{
			StatusCode: status,
			Header:     http.Header{"Content-Type": []string{"application/json"}},
			Body:       io.NopCloser(strings.NewReader(respBody)),
			Request:    r,
		}, nil
	})}
}

func failingClient(called *bool) *http.Client {
	return &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		*called = true
		return nil, io.ErrUnexpectedEOF
	})}
}
