package push

import "sync"

// SenderStub records every message handed to it. Deliveries to tokens
// present in Errs fail with the mapped error.
type SenderStub struct {
	mu       sync.Mutex
	Messages []Message
	Errs     map[string]error
}

func (stub *SenderStub) Send(msg Message) error {
	stub.mu.Lock()
	defer stub.mu.Unlock()

	stub.Messages = append(stub.Messages, msg)
	return stub.Errs[msg.To]
}

func (stub *SenderStub) SentTo(token string) int {
	stub.mu.Lock()
	defer stub.mu.Unlock()

	count := 0
	for _, msg := range stub.Messages {
		if msg.To == token {
			count++
		}
	}
	return count
}
