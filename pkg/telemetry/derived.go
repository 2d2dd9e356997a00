package telemetry

import "context"

// Derived events: fixed-name conveniences built on LogEvent with normalized
// parameter shapes. Defaulting rules live here so every caller gets the
// same shape.

// LogScreenView emits a screen_view event.
func (f *Facade) LogScreenView(ctx context.Context, v ScreenView) {
	if v.ScreenClass == "" {
		v.ScreenClass = v.ScreenName
	}
	f.LogEvent(ctx, EventScreenView, Params{
		"screen_name":  v.ScreenName,
		"screen_class": v.ScreenClass,
	})
}

// LogScreenTime emits a screen_time event.
func (f *Facade) LogScreenTime(ctx context.Context, s ScreenTime) {
	if s.ScreenClass == "" {
		s.ScreenClass = s.ScreenName
	}
	f.LogEvent(ctx, EventScreenTime, Params{
		"screen_name":        s.ScreenName,
		"screen_class":       s.ScreenClass,
		"time_spent_seconds": s.TimeSpentSeconds,
	})
}

// LogNavigation emits a navigation event.
func (f *Facade) LogNavigation(ctx context.Context, n Navigation) {
	if n.ScreenClass == "" {
		n.ScreenClass = n.ToScreen
	}
	f.LogEvent(ctx, EventNavigation, Params{
		"from_screen":  n.FromScreen,
		"to_screen":    n.ToScreen,
		"screen_class": n.ScreenClass,
	})
}

// LogButtonClick emits a button_click event.
func (f *Facade) LogButtonClick(ctx context.Context, b ButtonClick) {
	if b.ButtonName == "" {
		b.ButtonName = b.ButtonID
	}
	if b.ScreenClass == "" {
		b.ScreenClass = b.ScreenName
	}
	f.LogEvent(ctx, EventButtonClick, Params{
		"button_id":    b.ButtonID,
		"button_name":  b.ButtonName,
		"screen_name":  b.ScreenName,
		"screen_class": b.ScreenClass,
	})
}
