package telemetry

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestFacade builds a facade over a fresh registry with one native
// provider registered.
func newTestFacade(t *testing.T) (*Facade, *mockProvider) {
	t.Helper()
	registry := NewRegistry()
	provider := newMockProvider()
	require.NoError(t, registry.Register(KindNative, provider))

	facade := New(Options{
		Registry: registry,
		Detect:   detectNative,
	})
	return facade, provider
}

func TestFacade_Init_BindsProvider(t *testing.T) {
	facade, provider := newTestFacade(t)

	facade.Init(context.Background(), "")

	assert.Equal(t, 1, provider.handleCalls())
	facade.LogEvent(context.Background(), "evt", nil)
	assert.Equal(t, []string{"evt"}, provider.eventNames())
}

func TestFacade_Init_SingleFlight_Sequential(t *testing.T) {
	facade, provider := newTestFacade(t)

	facade.Init(context.Background(), "")
	facade.Init(context.Background(), "")
	facade.Init(context.Background(), "")

	// Provider selection executes exactly once regardless of call count.
	assert.Equal(t, 1, provider.handleCalls())
}

func TestFacade_Init_SingleFlight_Concurrent(t *testing.T) {
	registry := NewRegistry()
	provider := newMockProvider()
	provider.handleDelay = 20 * time.Millisecond
	require.NoError(t, registry.Register(KindNative, provider))

	facade := New(Options{Registry: registry, Detect: detectNative})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			facade.Init(context.Background(), "")
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, provider.handleCalls())
}

func TestFacade_Init_WithUserID(t *testing.T) {
	facade, provider := newTestFacade(t)

	facade.Init(context.Background(), "user-42")

	assert.Equal(t, []string{"user-42"}, provider.userIDs)
	assert.Equal(t, "authenticated", provider.properties()[PropertyUserType])

	id, ok := facade.CurrentUserID()
	require.True(t, ok)
	assert.Equal(t, "user-42", id)
}

func TestFacade_Init_WithoutUserID_TagsGuest(t *testing.T) {
	facade, provider := newTestFacade(t)

	facade.Init(context.Background(), "")

	assert.Empty(t, provider.userIDs)
	assert.Equal(t, "guest", provider.properties()[PropertyUserType])
}

func TestFacade_Init_AlreadyInitialized_UpdatesUserID(t *testing.T) {
	facade, provider := newTestFacade(t)

	facade.Init(context.Background(), "first")
	facade.Init(context.Background(), "second")

	assert.Equal(t, 1, provider.handleCalls())
	assert.Equal(t, []string{"first", "second"}, provider.userIDs)
}

func TestFacade_Init_TotalFailureStillTerminal(t *testing.T) {
	// No provider registered at all: init completes, never retries.
	registry := NewRegistry()
	facade := New(Options{Registry: registry, Detect: detectNative})

	facade.Init(context.Background(), "user-42")
	facade.Init(context.Background(), "user-42")

	// Degraded mode: no instance, so the user id is not even stored.
	_, ok := facade.CurrentUserID()
	assert.False(t, ok)

	// Events are dropped without error.
	facade.LogEvent(context.Background(), "evt", nil)
}

func TestFacade_SetUserID_Idempotent(t *testing.T) {
	facade, provider := newTestFacade(t)
	facade.Init(context.Background(), "")

	facade.SetUserID(context.Background(), "user-42")
	facade.SetUserID(context.Background(), "user-42")

	// Redundant calls must not generate duplicate provider traffic.
	assert.Equal(t, []string{"user-42"}, provider.userIDs)
}

func TestFacade_SetUserID_ChangedForwards(t *testing.T) {
	facade, provider := newTestFacade(t)
	facade.Init(context.Background(), "")

	facade.SetUserID(context.Background(), "a")
	facade.SetUserID(context.Background(), "b")

	assert.Equal(t, []string{"a", "b"}, provider.userIDs)
}

func TestFacade_SetUserID_BeforeInit_NoOp(t *testing.T) {
	facade, provider := newTestFacade(t)

	facade.SetUserID(context.Background(), "user-42")

	assert.Empty(t, provider.userIDs)
	_, ok := facade.CurrentUserID()
	assert.False(t, ok)
}

func TestFacade_SetUserID_StoredEvenWhenProviderFails(t *testing.T) {
	facade, provider := newTestFacade(t)
	provider.userIDErr = errors.New("backend down")
	facade.Init(context.Background(), "")

	facade.SetUserID(context.Background(), "user-42")

	// The caller must see its own last call reflected even though the
	// provider call failed.
	id, ok := facade.CurrentUserID()
	require.True(t, ok)
	assert.Equal(t, "user-42", id)
}

func TestFacade_LogEvent_BeforeInit_NeverReachesProvider(t *testing.T) {
	facade, provider := newTestFacade(t)

	facade.LogEvent(context.Background(), "early", Params{"k": "v"})

	assert.Empty(t, provider.events)
}

func TestFacade_SetUserProperty_CachedBeforeInit(t *testing.T) {
	facade, _ := newTestFacade(t)

	facade.SetUserProperty(context.Background(), "plan", "pro")

	assert.Equal(t, "pro", facade.UserProperties()["plan"])
}

func TestFacade_SetUserProperties_MergesCache(t *testing.T) {
	facade, provider := newTestFacade(t)
	facade.Init(context.Background(), "")

	facade.SetUserProperties(context.Background(), map[string]string{"a": "1"})
	facade.SetUserProperties(context.Background(), map[string]string{"b": "2", "a": "3"})

	cached := facade.UserProperties()
	assert.Equal(t, "3", cached["a"])
	assert.Equal(t, "2", cached["b"])
	assert.Equal(t, "3", provider.properties()["a"])
}

func TestFacade_ClearUserData(t *testing.T) {
	facade, provider := newTestFacade(t)
	facade.Init(context.Background(), "user-42")

	facade.ClearUserData(context.Background())

	assert.Equal(t, 1, provider.resetCalls)

	_, ok := facade.CurrentUserID()
	assert.False(t, ok)
	assert.Empty(t, facade.UserProperties())

	// The init gate is re-opened: the next Init re-runs provider selection.
	facade.Init(context.Background(), "")
	assert.Equal(t, 2, provider.handleCalls())
}

func TestFacade_ClearUserData_BeforeInit(t *testing.T) {
	facade, provider := newTestFacade(t)

	facade.ClearUserData(context.Background())

	assert.Equal(t, 0, provider.resetCalls)
}

func TestFacade_ProviderKindFixedForInstance(t *testing.T) {
	registry := NewRegistry()
	native := newMockProvider()
	web := &mockWebProvider{supported: true}
	web.handle = "web-handle"
	require.NoError(t, registry.Register(KindNative, native))
	require.NoError(t, registry.Register(KindWeb, web))

	facade := New(Options{Registry: registry, Detect: detectNative})
	facade.Init(context.Background(), "")

	facade.LogEvent(context.Background(), "evt", nil)

	// Only the selected branch's provider ever sees traffic.
	assert.Equal(t, []string{"evt"}, native.eventNames())
	assert.Empty(t, web.eventNames())
}
