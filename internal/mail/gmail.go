package mail

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

const gmailUser = "me"

// GmailProvider reads and sends mail through the Gmail API.
type GmailProvider struct {
	svc *gmail.Service
}

// NewGmailProvider authenticates with a stored OAuth2 refresh token. The
// token source refreshes access tokens on demand.
func NewGmailProvider(ctx context.Context, cfg Config) (*GmailProvider, error) {
	if !cfg.Configured() {
		return nil, fmt.Errorf("gmail credentials are not set")
	}
	oc := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{gmail.GmailModifyScope},
	}
	ts := oc.TokenSource(ctx, &oauth2.Token{RefreshToken: cfg.RefreshToken})
	return NewGmailProviderWithOptions(ctx, option.WithTokenSource(ts))
}

// NewGmailProviderWithOptions builds a provider from raw client options,
// for example a custom endpoint and HTTP client.
func NewGmailProviderWithOptions(ctx context.Context, opts ...option.ClientOption) (*GmailProvider, error) {
	svc, err := gmail.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating gmail service: %w", err)
	}
	return &GmailProvider{svc: svc}, nil
}

func (g *GmailProvider) ListMessageIDs(ctx context.Context, query string, max int) ([]string, error) {
	call := g.svc.Users.Messages.List(gmailUser).Context(ctx)
	if query != "" {
		call = call.Q(query)
	}
	if max > 0 {
		call = call.MaxResults(int64(max))
	}
	resp, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("listing gmail messages: %w", err)
	}
	ids := make([]string, 0, len(resp.Messages))
	for _, m := range resp.Messages {
		ids = append(ids, m.Id)
	}
	return ids, nil
}

func (g *GmailProvider) GetMessage(ctx context.Context, id string) (*Message, error) {
	m, err := g.svc.Users.Messages.Get(gmailUser, id).Format("full").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("getting gmail message %s: %w", id, err)
	}
	return convertGmailMessage(m), nil
}

func (g *GmailProvider) Send(ctx context.Context, msg Outgoing) (string, error) {
	raw, err := ComposeMessage(msg)
	if err != nil {
		return "", err
	}
	sent, err := g.svc.Users.Messages.Send(gmailUser, &gmail.Message{
		Raw:      base64.URLEncoding.EncodeToString(raw),
		ThreadId: msg.ThreadID,
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("sending gmail message: %w", err)
	}
	return sent.Id, nil
}

func convertGmailMessage(m *gmail.Message) *Message {
	out := &Message{
		ID:       m.Id,
		ThreadID: m.ThreadId,
		Snippet:  m.Snippet,
	}
	if m.InternalDate > 0 {
		out.ReceivedAt = time.UnixMilli(m.InternalDate).UTC()
	}
	if m.Payload == nil {
		return out
	}

	for _, h := range m.Payload.Headers {
		switch strings.ToLower(h.Name) {
		case "from":
			out.FromName, out.FromAddr = parseAddress(h.Value)
		case "to":
			out.To = h.Value
		case "subject":
			out.Subject = h.Value
		case "message-id":
			out.MessageID = h.Value
		case "date":
			if out.ReceivedAt.IsZero() {
				if t, err := mail.ParseDate(h.Value); err == nil {
					out.ReceivedAt = t.UTC()
				}
			}
		}
	}

	plain, htmlBody := collectBodies(m.Payload)
	switch {
	case strings.TrimSpace(plain) != "":
		out.Body = strings.TrimSpace(plain)
	case htmlBody != "":
		out.Body = HTMLToText(htmlBody)
	default:
		out.Body = out.Snippet
	}
	return out
}

// collectBodies walks a MIME tree and returns the first text/plain and
// text/html parts. Attachments are skipped.
func collectBodies(p *gmail.MessagePart) (plain, htmlBody string) {
	if p == nil {
		return "", ""
	}
	if p.Filename == "" && p.Body != nil && p.Body.Data != "" {
		switch {
		case strings.HasPrefix(p.MimeType, "text/plain"):
			plain = decodeBase64URL(p.Body.Data)
		case strings.HasPrefix(p.MimeType, "text/html"):
			htmlBody = decodeBase64URL(p.Body.Data)
		}
	}
	for _, child := range p.Parts {
		cp, ch := collectBodies(child)
		if plain == "" {
			plain = cp
		}
		if htmlBody == "" {
			htmlBody = ch
		}
	}
	return plain, htmlBody
}

// decodeBase64URL accepts padded and unpadded base64url data.
func decodeBase64URL(s string) string {
	data, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(s, "="))
	if err != nil {
		return ""
	}
	return string(data)
}

func parseAddress(v string) (name, addr string) {
	a, err := mail.ParseAddress(v)
	if err != nil {
		return "", strings.TrimSpace(v)
	}
	return a.Name, a.Address
}
