// Package otelprovider adapts OpenTelemetry tracing to the telemetry
// capability contract. Events become zero-duration spans whose attributes
// carry the event parameters plus the bound user identity.
package otelprovider

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/beaconhq/beacon/pkg/telemetry"
)

// Provider emits analytics events as OTel spans. It is native-kind: no
// environment probe, the tracer either works or it does not.
type Provider struct {
	tracer trace.Tracer

	mu     sync.RWMutex
	userID string
	props  map[string]string
}

// New creates a provider over the given tracer. A nil tracer falls back to
// the globally-registered tracer provider.
func New(tracer trace.Tracer) *Provider {
	if tracer == nil {
		tracer = otel.Tracer("beacon")
	}
	return &Provider{
		tracer: tracer,
		props:  make(map[string]string),
	}
}

// GetHandle acquires the tracer handle. The app context is ignored; native
// providers do not need one.
func (p *Provider) GetHandle(ctx context.Context, app telemetry.AppContext) (telemetry.Handle, error) {
	if p.tracer == nil {
		return nil, fmt.Errorf("no tracer available")
	}
	return p.tracer, nil
}

// LogEvent records the event as an immediately-ended span carrying the
// event parameters and the current identity attributes.
func (p *Provider) LogEvent(ctx context.Context, h telemetry.Handle, name string, params telemetry.Params) error {
	tracer, ok := h.(trace.Tracer)
	if !ok {
		return fmt.Errorf("invalid handle type %T", h)
	}

	attrs := make([]attribute.KeyValue, 0, len(params)+4)
	for k, v := range params {
		attrs = append(attrs, toAttribute(k, v))
	}

	p.mu.RLock()
	if p.userID != "" {
		attrs = append(attrs, attribute.String("user.id", p.userID))
	}
	for k, v := range p.props {
		attrs = append(attrs, attribute.String("user."+k, v))
	}
	p.mu.RUnlock()

	_, span := tracer.Start(ctx, name, trace.WithAttributes(attrs...))
	span.End()
	return nil
}

// SetUserID binds the identity attached to subsequent event spans.
func (p *Provider) SetUserID(ctx context.Context, h telemetry.Handle, id string) error {
	p.mu.Lock()
	p.userID = id
	p.mu.Unlock()
	return nil
}

// SetUserProperties merges properties into the identity attribute set.
func (p *Provider) SetUserProperties(ctx context.Context, h telemetry.Handle, props map[string]string) error {
	p.mu.Lock()
	for k, v := range props {
		p.props[k] = v
	}
	p.mu.Unlock()
	return nil
}

// ResetUserData drops the bound identity and all accumulated properties.
func (p *Provider) ResetUserData(ctx context.Context, h telemetry.Handle) error {
	p.mu.Lock()
	p.userID = ""
	p.props = make(map[string]string)
	p.mu.Unlock()
	return nil
}

// toAttribute maps a parameter value onto the closest OTel attribute type
func toAttribute(key string, value interface{}) attribute.KeyValue {
	switch v := value.(type) {
	case string:
		return attribute.String(key, v)
	case bool:
		return attribute.Bool(key, v)
	case int:
		return attribute.Int(key, v)
	case int64:
		return attribute.Int64(key, v)
	case float64:
		return attribute.Float64(key, v)
	case nil:
		return attribute.String(key, "")
	default:
		return attribute.String(key, fmt.Sprintf("%v", v))
	}
}
