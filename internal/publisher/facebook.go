package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const (
	FacebookGraphURL     = "https://graph.facebook.com"
	facebookGraphVersion = "v18.0"
)

type FacebookPublisher struct {
	client  *http.Client
	baseURL string
}

func NewFacebookPublisher(client *http.Client, baseURL string) *FacebookPublisher {
	if client == nil {
		client = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = FacebookGraphURL
	}
	return &FacebookPublisher{client: client, baseURL: strings.TrimRight(baseURL, "/")}
}

func (f *FacebookPublisher) Platform() Platform { return PlatformFacebook }

func (f *FacebookPublisher) Publish(ctx context.Context, content string, creds Credentials) (json.RawMessage, error) {
	fc, ok := creds.(*FacebookCredentials)
	if !ok {
		return nil, credentialsMismatch(PlatformFacebook, creds)
	}

	endpoint := fmt.Sprintf("%s/%s/%s/feed", f.baseURL, facebookGraphVersion, url.PathEscape(fc.PageID))
	payload := struct {
		Message     string `json:"message"`
		AccessToken string `json:"access_token"`
	}{
		Message:     content,
		AccessToken: fc.AccessToken,
	}

	return postJSON(ctx, f.client, PlatformFacebook, endpoint, payload, nil)
}
