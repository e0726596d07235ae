// Package mailtest provides an in-memory mail.Provider for tests.
package mailtest

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/curtisos/curtisos/internal/mail"
)

// Provider serves a fixed set of messages and records sends.
type Provider struct {
	mu       sync.Mutex
	messages map[string]*mail.Message
	getErrs  map[string]error
	ListErr  error
	SendErr  error
	Sent     []mail.Outgoing
	Queries  []string
}

func NewProvider(msgs ...*mail.Message) *Provider {
	p := &Provider{messages: map[string]*mail.Message{}, getErrs: map[string]error{}}
	for _, m := range msgs {
		p.messages[m.ID] = m
	}
	return p
}

// FailGet makes GetMessage(id) return err.
func (p *Provider) FailGet(id string, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.getErrs[id] = err
}

// ListMessageIDs returns ids newest first, including ids set to fail.
func (p *Provider) ListMessageIDs(_ context.Context, query string, max int) ([]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Queries = append(p.Queries, query)
	if p.ListErr != nil {
		return nil, p.ListErr
	}

	msgs := make([]*mail.Message, 0, len(p.messages))
	for _, m := range p.messages {
		msgs = append(msgs, m)
	}
	sort.Slice(msgs, func(i, j int) bool {
		if !msgs[i].ReceivedAt.Equal(msgs[j].ReceivedAt) {
			return msgs[i].ReceivedAt.After(msgs[j].ReceivedAt)
		}
		return msgs[i].ID < msgs[j].ID
	})
	ids := make([]string, 0, len(msgs)+len(p.getErrs))
	for _, m := range msgs {
		ids = append(ids, m.ID)
	}
	for id := range p.getErrs {
		if _, ok := p.messages[id]; !ok {
			ids = append(ids, id)
		}
	}
	if max > 0 && len(ids) > max {
		ids = ids[:max]
	}
	return ids, nil
}

func (p *Provider) GetMessage(_ context.Context, id string) (*mail.Message, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.getErrs[id]; err != nil {
		return nil, err
	}
	m, ok := p.messages[id]
	if !ok {
		return nil, fmt.Errorf("message %s not found", id)
	}
	cp := *m
	return &cp, nil
}

func (p *Provider) Send(_ context.Context, msg mail.Outgoing) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.SendErr != nil {
		return "", p.SendErr
	}
	if _, err := mail.ComposeMessage(msg); err != nil {
		return "", err
	}
	p.Sent = append(p.Sent, msg)
	return fmt.Sprintf("sent-%d", len(p.Sent)), nil
}

// SentCount is safe to call while other goroutines use the provider.
func (p *Provider) SentCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.Sent)
}
