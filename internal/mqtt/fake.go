package mqtt

import "sync"

// FakeClient is an in-memory Client, messages published to a topic are
// delivered to its subscribers synchronously
type FakeClient struct {
	mu        sync.Mutex
	handlers  map[string][]MessageHandler
	Published map[string][]byte
	Retained  map[string]bool
}

func NewFakeClient() *FakeClient {
	return &FakeClient{
		handlers:  map[string][]MessageHandler{},
		Published: map[string][]byte{},
		Retained:  map[string]bool{},
	}
}

func (c *FakeClient) Subscribe(topic string, handler MessageHandler) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[topic] = append(c.handlers[topic], handler)
	return nil
}

func (c *FakeClient) Publish(topic string, retained bool, payload []byte) error {
	c.mu.Lock()
	c.Published[topic] = payload
	c.Retained[topic] = retained
	handlers := append([]MessageHandler{}, c.handlers[topic]...)
	c.mu.Unlock()

	for _, handler := range handlers {
		handler(topic, payload)
	}
	return nil
}

func (c *FakeClient) Disconnect() {}

// LastPublished returns the last payload published to topic
func (c *FakeClient) LastPublished(topic string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	payload, ok := c.Published[topic]
	return string(payload), ok
}
