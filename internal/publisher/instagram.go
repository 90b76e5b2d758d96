package publisher

import (
	"context"
	"encoding/json"
)

// InstagramPublisher is registered so Instagram accounts resolve to a
// publisher, but Instagram only accepts posts built from an uploaded media
// container, which this service does not create.
type InstagramPublisher struct{}

func NewInstagramPublisher() *InstagramPublisher {
	return &InstagramPublisher{}
}

func (i *InstagramPublisher) Platform() Platform { return PlatformInstagram }

func (i *InstagramPublisher) Publish(ctx context.Context, content string, creds Credentials) (json.RawMessage, error) {
	return nil, &UnsupportedOperationError{
		Platform: PlatformInstagram,
		Reason:   "Instagram posting requires media upload",
	}
}
