package publisher

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
)

const LinkedInAPIURL = "https://api.linkedin.com"

type LinkedInPublisher struct {
	client   *http.Client
	endpoint string
}

func NewLinkedInPublisher(client *http.Client, baseURL string) *LinkedInPublisher {
	if client == nil {
		client = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = LinkedInAPIURL
	}
	return &LinkedInPublisher{
		client:   client,
		endpoint: strings.TrimRight(baseURL, "/") + "/v2/ugcPosts",
	}
}

func (l *LinkedInPublisher) Platform() Platform { return PlatformLinkedIn }

type ugcShareCommentary struct {
	Text string `json:"text"`
}

type ugcShareContent struct {
	ShareCommentary    ugcShareCommentary `json:"shareCommentary"`
	ShareMediaCategory string             `json:"shareMediaCategory"`
}

type ugcPost struct {
	Author          string                     `json:"author"`
	LifecycleState  string                     `json:"lifecycleState"`
	SpecificContent map[string]ugcShareContent `json:"specificContent"`
	Visibility      map[string]string          `json:"visibility"`
}

func (l *LinkedInPublisher) Publish(ctx context.Context, content string, creds Credentials) (json.RawMessage, error) {
	lc, ok := creds.(*LinkedInCredentials)
	if !ok {
		return nil, credentialsMismatch(PlatformLinkedIn, creds)
	}

	payload := ugcPost{
		Author:         lc.PersonURN,
		LifecycleState: "PUBLISHED",
		SpecificContent: map[string]ugcShareContent{
			"com.linkedin.ugc.ShareContent": {
				ShareCommentary:    ugcShareCommentary{Text: content},
				ShareMediaCategory: "NONE",
			},
		},
		Visibility: map[string]string{
			"com.linkedin.ugc.MemberNetworkVisibility": "PUBLIC",
		},
	}

	// oauth2.Transport adds "Authorization: Bearer <token>" on top of the
	// configured client's own transport.
	base := l.client.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	client := &http.Client{
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: lc.AccessToken, TokenType: "Bearer"}),
			Base:   base,
		},
		Timeout: l.client.Timeout,
	}

	header := http.Header{}
	header.Set("X-Restli-Protocol-Version", "2.0.0")

	return postJSON(ctx, client, PlatformLinkedIn, l.endpoint, payload, header)
}
