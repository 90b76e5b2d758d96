package publisher

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

const TwitterAPIURL = "https://api.x.com"

type TwitterPublisher struct {
	client   *http.Client
	endpoint string

	// Overridable for deterministic signatures.
	Nonce func() (string, error)
	Now   func() time.Time
}

func NewTwitterPublisher(client *http.Client, baseURL string) *TwitterPublisher {
	if client == nil {
		client = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = TwitterAPIURL
	}
	return &TwitterPublisher{
		client:   client,
		endpoint: strings.TrimRight(baseURL, "/") + "/2/tweets",
	}
}

func (t *TwitterPublisher) Platform() Platform { return PlatformTwitter }

func (t *TwitterPublisher) Publish(ctx context.Context, content string, creds Credentials) (json.RawMessage, error) {
	tc, ok := creds.(*TwitterCredentials)
	if !ok {
		return nil, credentialsMismatch(PlatformTwitter, creds)
	}

	signer := &OAuth1Signer{
		ConsumerKey:    tc.ConsumerKey,
		ConsumerSecret: tc.ConsumerSecret,
		Token:          tc.AccessToken,
		TokenSecret:    tc.AccessTokenSecret,
		Nonce:          t.Nonce,
		Now:            t.Now,
	}
	auth, err := signer.AuthorizationHeader(http.MethodPost, t.endpoint, nil)
	if err != nil {
		return nil, err
	}

	header := http.Header{}
	header.Set("Authorization", auth)

	return postJSON(ctx, t.client, PlatformTwitter, t.endpoint, struct {
		Text string `json:"text"`
	}{Text: content}, header)
}
