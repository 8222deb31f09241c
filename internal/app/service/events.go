package service

import "context"

// EventPublisher pushes admin-facing events (new orders, low stock) to the
// live event feed. internal/ws provides the implementation.
type EventPublisher interface {
	Publish(event string, payload map[string]interface{})
}

// HomeInvalidator drops the cached home payload after a write that changes
// what the storefront renders. internal/cache provides the implementation.
type HomeInvalidator interface {
	InvalidateHome(ctx context.Context) error
}

func publish(p EventPublisher, event string, payload map[string]interface{}) {
	if p != nil {
		p.Publish(event, payload)
	}
}

func invalidateHome(ctx context.Context, inv HomeInvalidator) {
	if inv != nil {
		_ = inv.InvalidateHome(ctx)
	}
}
