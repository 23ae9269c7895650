package checkout

import (
	"context"
	"sync"

	"github.com/somnath11som/webeF/internal/events"
	"github.com/somnath11som/webeF/internal/remote"
)

type mockOrderCreator struct {
	mu       sync.Mutex
	calls    []remote.CreateOrderRequest
	resp     *remote.CreateOrderResponse
	err      error
	block    chan struct{}
	received chan struct{}
}

func (m *mockOrderCreator) CreateOrder(_ context.Context, req remote.CreateOrderRequest) (*remote.CreateOrderResponse, error) {
	m.mu.Lock()
	m.calls = append(m.calls, req)
	m.mu.Unlock()
	if m.received != nil {
		m.received <- struct{}{}
	}
	if m.block != nil {
		<-m.block
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.resp, nil
}

func (m *mockOrderCreator) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

type mockPublisher struct {
	mu     sync.Mutex
	events []events.OrderCreated
	err    error
}

func (m *mockPublisher) PublishOrderCreated(_ context.Context, ev events.OrderCreated) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, ev)
	return m.err
}
