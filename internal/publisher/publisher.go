package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
)

// Publisher delivers text content to one social network on behalf of a
// connected account and returns the network's response unchanged.
type Publisher interface {
	Platform() Platform
	Publish(ctx context.Context, content string, creds Credentials) (json.RawMessage, error)
}

type Registry struct {
	mu         sync.RWMutex
	publishers map[Platform]Publisher
}

func NewRegistry(publishers ...Publisher) *Registry {
	r := &Registry{publishers: make(map[Platform]Publisher, len(publishers))}
	for _, p := range publishers {
		r.Register(p)
	}
	return r
}

// Register adds p, replacing any publisher already registered for its platform.
func (r *Registry) Register(p Publisher) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.publishers[p.Platform()] = p
}

func (r *Registry) Lookup(platform string) (Publisher, error) {
	p, err := ParsePlatform(platform)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	pub, ok := r.publishers[p]
	if !ok {
		return nil, &UnsupportedPlatformError{Platform: platform}
	}
	return pub, nil
}

func credentialsMismatch(want Platform, got Credentials) error {
	gotName := "none"
	if got != nil {
		gotName = string(got.Platform())
	}
	return &InvalidCredentialsError{Platform: want, Reason: fmt.Sprintf("got %s credentials", gotName)}
}

func postJSON(ctx context.Context, client *http.Client, platform Platform, url string, payload any, header http.Header) (json.RawMessage, error) {
	body, err := encodeJSON(payload)
	if err != nil {
		return nil, fmt.Errorf("error marshalling payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	for k, v := range header {
		req.Header[k] = v
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("HTTP request error: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &PlatformError{Platform: platform, StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	if !json.Valid(respBody) {
		return nil, fmt.Errorf("%s returned a non-JSON response", platform.Name())
	}
	return json.RawMessage(respBody), nil
}

// encodeJSON marshals v without HTML escaping so post text reaches the
// network byte for byte.
func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
