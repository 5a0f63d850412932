package notify

import "context"

type Message struct {
	To      []string
	Subject string
	Text    string
	HTML    string
}

type Provider interface {
	Send(ctx context.Context, msg Message) error
}

type NoOpProvider struct{}

func (p *NoOpProvider) Send(ctx context.Context, msg Message) error {
	return nil
}
