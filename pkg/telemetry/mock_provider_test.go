package telemetry

import (
	"context"
	"sync"
	"time"
)

// recordedEvent captures one LogEvent dispatch
type recordedEvent struct {
	name   string
	params Params
}

// mockProvider implements Provider for testing. It records every call and
// can be configured to fail or panic per operation.
type mockProvider struct {
	mu sync.Mutex

	handle    Handle
	handleErr error

	getHandleCalls int
	panicGetHandle bool
	handleDelay    time.Duration

	events      []recordedEvent
	userIDs     []string
	propCalls   []map[string]string
	resetCalls  int
	logEventErr error
	panicOnLog  bool
	userIDErr   error
	failKeys    map[string]bool
}

func newMockProvider() *mockProvider {
	return &mockProvider{handle: "mock-handle"}
}

func (m *mockProvider) GetHandle(ctx context.Context, app AppContext) (Handle, error) {
	m.mu.Lock()
	m.getHandleCalls++
	m.mu.Unlock()
	if m.panicGetHandle {
		panic("handle acquisition failed")
	}
	if m.handleDelay > 0 {
		time.Sleep(m.handleDelay)
	}
	return m.handle, m.handleErr
}

func (m *mockProvider) LogEvent(ctx context.Context, h Handle, name string, params Params) error {
	if m.panicOnLog {
		panic("provider exploded")
	}
	if m.logEventErr != nil {
		return m.logEventErr
	}
	m.mu.Lock()
	m.events = append(m.events, recordedEvent{name: name, params: params})
	m.mu.Unlock()
	return nil
}

func (m *mockProvider) SetUserID(ctx context.Context, h Handle, id string) error {
	if m.userIDErr != nil {
		return m.userIDErr
	}
	m.mu.Lock()
	m.userIDs = append(m.userIDs, id)
	m.mu.Unlock()
	return nil
}

func (m *mockProvider) SetUserProperties(ctx context.Context, h Handle, props map[string]string) error {
	for k := range props {
		if m.failKeys[k] {
			return errAt(k)
		}
	}
	m.mu.Lock()
	m.propCalls = append(m.propCalls, props)
	m.mu.Unlock()
	return nil
}

func (m *mockProvider) ResetUserData(ctx context.Context, h Handle) error {
	m.mu.Lock()
	m.resetCalls++
	m.mu.Unlock()
	return nil
}

func (m *mockProvider) eventNames() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.events))
	for _, e := range m.events {
		names = append(names, e.name)
	}
	return names
}

func (m *mockProvider) handleCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.getHandleCalls
}

func (m *mockProvider) properties() map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	merged := make(map[string]string)
	for _, call := range m.propCalls {
		for k, v := range call {
			merged[k] = v
		}
	}
	return merged
}

// mockWebProvider adds the optional IsSupported probe
type mockWebProvider struct {
	mockProvider
	supported bool
}

func (m *mockWebProvider) IsSupported() bool {
	return m.supported
}

type keyError string

func (e keyError) Error() string { return "property rejected: " + string(e) }

func errAt(key string) error { return keyError(key) }
