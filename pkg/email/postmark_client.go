package email

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrz1836/postmark"
)

// PostmarkClient sends messages through Postmark.
type PostmarkClient struct {
	client *postmark.Client
	sender string
	ok     bool
}

// NewPostmarkClient never fails; incomplete credentials leave the client
// unconfigured.
func NewPostmarkClient(cfg Config) *PostmarkClient {
	return &PostmarkClient{
		client: postmark.NewClient(cfg.PostmarkServerToken, cfg.PostmarkAccountToken),
		sender: cfg.SenderEmail,
		ok:     allSet(cfg.PostmarkServerToken, cfg.PostmarkAccountToken, cfg.SenderEmail),
	}
}

// WithBaseURL points the client at another API host.
func (c *PostmarkClient) WithBaseURL(url string) *PostmarkClient {
	c.client.BaseURL = url
	return c
}

func (c *PostmarkClient) Provider() string { return ProviderPostmark }

func (c *PostmarkClient) Configured() bool { return c.ok }

// SendEmail sends msg once with open tracking enabled. Reply-To carries the
// visitor's address so the site owner can answer directly.
func (c *PostmarkClient) SendEmail(ctx context.Context, msg Message) error {
	if !c.ok {
		return ErrNotConfigured
	}
	if err := msg.Validate(); err != nil {
		return err
	}

	from := c.sender
	if msg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", msg.FromName, c.sender)
	}

	resp, err := c.client.SendEmail(ctx, postmark.Email{
		From:       from,
		ReplyTo:    msg.ReplyTo,
		To:         msg.To,
		Subject:    msg.Subject,
		Tag:        msg.Tag,
		HTMLBody:   msg.HTMLBody,
		TrackOpens: true,
		TrackLinks: "HtmlOnly",
	})
	if err != nil {
		return errors.Join(ErrFailedToSendEmail, err)
	}
	if resp.ErrorCode > 0 {
		return errors.Join(
			ErrFailedToSendEmail,
			fmt.Errorf("postmark error: %d - %s", resp.ErrorCode, resp.Message),
		)
	}
	return nil
}
