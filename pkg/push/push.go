package push

import (
	"context"
	"encoding/base64"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// Client wraps the Firebase messaging client behind the small surface the
// schedulers need.
type Client struct {
	messaging *messaging.Client
}

// NewClient initializes the Firebase app from a base64-encoded service
// account JSON, the same shape the deployment stores in its environment.
func NewClient(ctx context.Context, serviceAccountBase64 string) (*Client, error) {
	creds, err := base64.StdEncoding.DecodeString(serviceAccountBase64)
	if err != nil {
		return nil, fmt.Errorf("failed to decode firebase service account: %w", err)
	}

	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsJSON(creds))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	m, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize messaging client: %w", err)
	}

	return &Client{messaging: m}, nil
}

// Send delivers one webpush notification to a registration token. The link
// opens the PWA view the notification refers to.
func (c *Client) Send(ctx context.Context, token, title, body, link string) error {
	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Webpush: &messaging.WebpushConfig{
			FCMOptions: &messaging.WebpushFCMOptions{
				Link: link,
			},
		},
	}

	_, err := c.messaging.Send(ctx, msg)
	return err
}

// IsTokenInvalid reports whether the delivery failed because the registration
// token is permanently gone, which means the record holding it can go too.
func (c *Client) IsTokenInvalid(err error) bool {
	return messaging.IsUnregistered(err)
}
