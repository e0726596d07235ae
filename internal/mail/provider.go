// Package mail reads and sends messages through an external mailbox.
package mail

import (
	"context"
	"errors"
	"time"
)

// Message is one inbound message as the provider reports it. ID and
// ThreadID are the provider's own identifiers.
type Message struct {
	ID         string
	ThreadID   string
	MessageID  string // RFC 5322 Message-ID header, used for threading replies
	FromName   string
	FromAddr   string
	To         string
	Subject    string
	Snippet    string
	Body       string
	ReceivedAt time.Time
}

// Outgoing is a plain-text message to send. ThreadID and InReplyTo are
// optional and keep a reply in the original conversation.
type Outgoing struct {
	To        string
	Subject   string
	Body      string
	ThreadID  string
	InReplyTo string
}

// Provider is a mailbox the dashboard can list, read and send through.
type Provider interface {
	// ListMessageIDs returns up to max message ids matching query, newest first.
	ListMessageIDs(ctx context.Context, query string, max int) ([]string, error)

	// GetMessage fetches one message with its decoded body.
	GetMessage(ctx context.Context, id string) (*Message, error)

	// Send delivers msg and returns the provider id of the sent message.
	Send(ctx context.Context, msg Outgoing) (string, error)
}

// Config holds mailbox credentials and the ingestion query.
type Config struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	RefreshToken string `yaml:"refresh_token"`
	Query        string `yaml:"query"`
	MaxResults   int    `yaml:"max_results"`
}

func DefaultConfig() Config {
	return Config{
		Query:      "in:inbox newer_than:7d",
		MaxResults: 25,
	}
}

// Configured reports whether credentials are present.
func (c Config) Configured() bool {
	return c.ClientID != "" && c.ClientSecret != "" && c.RefreshToken != ""
}

// Validate requires the three credentials together or not at all.
func (c Config) Validate() error {
	set := 0
	for _, v := range []string{c.ClientID, c.ClientSecret, c.RefreshToken} {
		if v != "" {
			set++
		}
	}
	var errs []error
	if set != 0 && set != 3 {
		errs = append(errs, errors.New("mail requires GMAIL_CLIENT_ID, GMAIL_CLIENT_SECRET and GMAIL_REFRESH_TOKEN together"))
	}
	if c.MaxResults <= 0 || c.MaxResults > 500 {
		errs = append(errs, errors.New("mail max results must be between 1 and 500"))
	}
	return errors.Join(errs...)
}
