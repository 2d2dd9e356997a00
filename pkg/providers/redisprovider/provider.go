// Package redisprovider adapts a Redis stream to the telemetry capability
// contract. Events and identity changes are appended as stream entries for
// a downstream collector to consume; nothing is read back.
package redisprovider

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/beaconhq/beacon/pkg/telemetry"
)

// Entry types written to the stream.
const (
	entryEvent      = "event"
	entryIdentify   = "identify"
	entryProperties = "properties"
	entryReset      = "reset"
)

// supportProbeTimeout bounds the IsSupported ping so a dead server cannot
// stall initialization.
const supportProbeTimeout = 2 * time.Second

// Provider appends analytics traffic to a Redis stream. It is web-kind and
// probes the server before the initializer commits to it.
type Provider struct {
	client *redis.Client
	stream string
	log    *logrus.Logger
}

// New creates a provider writing to the given stream. A nil logger falls
// back to the logrus standard logger.
func New(client *redis.Client, stream string, log *logrus.Logger) *Provider {
	if log == nil {
		log = logrus.New()
	}
	return &Provider{client: client, stream: stream, log: log}
}

// IsSupported reports whether the Redis server is reachable.
func (p *Provider) IsSupported() bool {
	if p.client == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), supportProbeTimeout)
	defer cancel()

	if err := p.client.Ping(ctx).Err(); err != nil {
		p.log.WithError(err).Debug("redis analytics backend unreachable")
		return false
	}
	return true
}

// GetHandle acquires the stream handle after a final reachability check.
func (p *Provider) GetHandle(ctx context.Context, app telemetry.AppContext) (telemetry.Handle, error) {
	if p.client == nil {
		return nil, fmt.Errorf("no redis client configured")
	}
	if err := p.client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis unreachable: %w", err)
	}
	return p.client, nil
}

// LogEvent appends one event entry with JSON-encoded parameters.
func (p *Provider) LogEvent(ctx context.Context, h telemetry.Handle, name string, params telemetry.Params) error {
	client, err := p.handleClient(h)
	if err != nil {
		return err
	}

	encoded, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("failed to encode event params: %w", err)
	}

	return client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]interface{}{
			"type":   entryEvent,
			"name":   name,
			"params": string(encoded),
		},
	}).Err()
}

// SetUserID appends an identify entry.
func (p *Provider) SetUserID(ctx context.Context, h telemetry.Handle, id string) error {
	client, err := p.handleClient(h)
	if err != nil {
		return err
	}

	return client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]interface{}{
			"type":    entryIdentify,
			"user_id": id,
		},
	}).Err()
}

// SetUserProperties appends one properties entry.
func (p *Provider) SetUserProperties(ctx context.Context, h telemetry.Handle, props map[string]string) error {
	client, err := p.handleClient(h)
	if err != nil {
		return err
	}

	encoded, err := json.Marshal(props)
	if err != nil {
		return fmt.Errorf("failed to encode user properties: %w", err)
	}

	return client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]interface{}{
			"type":  entryProperties,
			"props": string(encoded),
		},
	}).Err()
}

// ResetUserData appends a reset marker so the collector can drop the
// accumulated identity.
func (p *Provider) ResetUserData(ctx context.Context, h telemetry.Handle) error {
	client, err := p.handleClient(h)
	if err != nil {
		return err
	}

	return client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]interface{}{
			"type": entryReset,
		},
	}).Err()
}

func (p *Provider) handleClient(h telemetry.Handle) (*redis.Client, error) {
	client, ok := h.(*redis.Client)
	if !ok {
		return nil, fmt.Errorf("invalid handle type %T", h)
	}
	return client, nil
}
