package notify

import "context"

type Service interface {
	Send(ctx context.Context, m Message) error
}

type Message struct {
	Text string

	// Optional attachment. When set, the attachment is the payload and
	// Text becomes its caption.
	PhotoName  string
	PhotoBytes []byte
}

func (m Message) HasPhoto() bool { return len(m.PhotoBytes) > 0 }
