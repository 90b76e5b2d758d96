package publisher

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Credentials is the secret bundle for one connected account. Each platform
// has exactly one implementation; clients type-assert to their own variant.
type Credentials interface {
	Platform() Platform
	Validate() error
}

type TwitterCredentials struct {
	ConsumerKey       string `json:"consumer_key"`
	ConsumerSecret    string `json:"consumer_secret"`
	AccessToken       string `json:"access_token"`
	AccessTokenSecret string `json:"access_token_secret"`
}

func (c *TwitterCredentials) Platform() Platform { return PlatformTwitter }

func (c *TwitterCredentials) Validate() error {
	return requireFields(PlatformTwitter, map[string]string{
		"consumer_key":        c.ConsumerKey,
		"consumer_secret":     c.ConsumerSecret,
		"access_token":        c.AccessToken,
		"access_token_secret": c.AccessTokenSecret,
	})
}

type FacebookCredentials struct {
	PageID      string `json:"page_id"`
	AccessToken string `json:"access_token"`
}

func (c *FacebookCredentials) Platform() Platform { return PlatformFacebook }

func (c *FacebookCredentials) Validate() error {
	return requireFields(PlatformFacebook, map[string]string{
		"page_id":      c.PageID,
		"access_token": c.AccessToken,
	})
}

type LinkedInCredentials struct {
	PersonURN   string `json:"person_urn"`
	AccessToken string `json:"access_token"`
}

func (c *LinkedInCredentials) Platform() Platform { return PlatformLinkedIn }

func (c *LinkedInCredentials) Validate() error {
	err := requireFields(PlatformLinkedIn, map[string]string{
		"person_urn":   c.PersonURN,
		"access_token": c.AccessToken,
	})
	if err != nil {
		return err
	}
	if !strings.HasPrefix(c.PersonURN, "urn:li:") {
		return &InvalidCredentialsError{Platform: PlatformLinkedIn, Field: "person_urn", Reason: "must be a urn:li: identifier"}
	}
	return nil
}

// InstagramCredentials keeps whatever was stored. Publishing to Instagram is
// always rejected, so the shape is never interpreted.
type InstagramCredentials struct {
	Raw json.RawMessage
}

func (c *InstagramCredentials) Platform() Platform { return PlatformInstagram }

func (c *InstagramCredentials) Validate() error { return nil }

func (c *InstagramCredentials) MarshalJSON() ([]byte, error) {
	if len(c.Raw) == 0 {
		return []byte("{}"), nil
	}
	return c.Raw, nil
}

// DecodeCredentials parses a stored bundle into the variant for platform and
// validates it.
func DecodeCredentials(platform Platform, raw []byte) (Credentials, error) {
	var creds Credentials
	switch platform {
	case PlatformTwitter:
		creds = &TwitterCredentials{}
	case PlatformFacebook:
		creds = &FacebookCredentials{}
	case PlatformLinkedIn:
		creds = &LinkedInCredentials{}
	case PlatformInstagram:
		return &InstagramCredentials{Raw: append(json.RawMessage(nil), raw...)}, nil
	default:
		return nil, &UnsupportedPlatformError{Platform: string(platform)}
	}

	if err := json.Unmarshal(raw, creds); err != nil {
		return nil, &InvalidCredentialsError{Platform: platform, Reason: fmt.Sprintf("malformed JSON: %v", err)}
	}
	if err := creds.Validate(); err != nil {
		return nil, err
	}
	return creds, nil
}

func requireFields(platform Platform, fields map[string]string) error {
	// Fixed order; the first missing field is reported.
	for _, name := range []string{"consumer_key", "consumer_secret", "page_id", "person_urn", "access_token", "access_token_secret"} {
		value, ok := fields[name]
		if ok && strings.TrimSpace(value) == "" {
			return &InvalidCredentialsError{Platform: platform, Field: name, Reason: "is required"}
		}
	}
	return nil
}
