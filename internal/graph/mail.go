package graph

import (
	"context"
	"net/http"
)

type mailEnvelope struct {
	Message         mailMessage `json:"message"`
	SaveToSentItems bool        `json:"saveToSentItems"`
}

type mailMessage struct {
	Subject      string          `json:"subject"`
	Body         mailBody        `json:"body"`
	ToRecipients []mailRecipient `json:"toRecipients"`
}

type mailBody struct {
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

type mailRecipient struct {
	EmailAddress emailAddress `json:"emailAddress"`
}

type emailAddress struct {
	Address string `json:"address"`
}

// SendMail dispatches one HTML message through /me/sendMail. The message
// lands in the sender's sent-items. A non-2xx status comes back as an
// *APIError carrying the provider's error body.
func (c *Client) SendMail(ctx context.Context, to, subject, html string) error {
	payload := mailEnvelope{
		Message: mailMessage{
			Subject: subject,
			Body:    mailBody{ContentType: "HTML", Content: html},
			ToRecipients: []mailRecipient{
				{EmailAddress: emailAddress{Address: to}},
			},
		},
		SaveToSentItems: true,
	}
	return c.doJSON(ctx, http.MethodPost, "/me/sendMail", payload, nil)
}
