package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is one scripted reply. Sources are returned as grounding
// citations. A Hang reply blocks until the call's context is done.
type MockResponse struct {
	Content json.RawMessage
	Sources []Source
	Usage   Usage
	Err     error
	Hang    bool
}

// MockProvider replays scripted replies in order and records every request
// together with the purpose label found on its context.
type MockProvider struct {
	mu       sync.Mutex
	replies  []MockResponse
	Calls    []Request
	Purposes []string
}

func NewMockProvider(replies ...MockResponse) *MockProvider {
	return &MockProvider{replies: replies}
}

// Generate pops the next reply. An exhausted script yields
// ErrProviderUnavailable; a finished context yields ctx.Err().
func (m *MockProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	reply, ok := m.next(ctx, req)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !ok {
		return nil, &ErrProviderUnavailable{}
	}

	if reply.Hang {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if reply.Err != nil {
		return nil, reply.Err
	}

	resp := &Response{
		Content:    reply.Content,
		Usage:      reply.Usage,
		Model:      "mock",
		StopReason: "end",
	}
	if req.Grounding {
		resp.Sources = reply.Sources
	}
	return resp, nil
}

func (m *MockProvider) next(ctx context.Context, req Request) (MockResponse, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)
	m.Purposes = append(m.Purposes, PurposeFrom(ctx))
	if len(m.replies) == 0 {
		return MockResponse{}, false
	}
	r := m.replies[0]
	m.replies = m.replies[1:]
	return r, true
}

func (m *MockProvider) ModelID() string {
	return "mock"
}

// AddResponse appends a reply to the script.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replies = append(m.replies, resp)
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// Pending reports how many scripted replies are still unused.
func (m *MockProvider) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.replies)
}
