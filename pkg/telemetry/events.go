package telemetry

// Event names emitted by the facade's derived helpers and the timing
// registry.
const (
	EventScreenView        = "screen_view"
	EventScreenTime        = "screen_time"
	EventNavigation        = "navigation"
	EventButtonClick       = "button_click"
	EventPerformanceMetric = "performance_metric"
)

// User property keys managed by the facade.
const (
	PropertyUserType = "user_type"

	UserTypeAuthenticated = "authenticated"
	UserTypeGuest         = "guest"
)

// ScreenView describes a screen becoming visible. ScreenClass defaults to
// ScreenName when empty.
type ScreenView struct {
	ScreenName  string
	ScreenClass string
}

// ScreenTime describes how long a screen stayed focused. ScreenClass
// defaults to ScreenName when empty.
type ScreenTime struct {
	ScreenName       string
	ScreenClass      string
	TimeSpentSeconds int64
}

// Navigation describes a transition between two screens. ScreenClass
// defaults to ToScreen when empty.
type Navigation struct {
	FromScreen  string
	ToScreen    string
	ScreenClass string
}

// ButtonClick describes a button press. ButtonName defaults to ButtonID and
// ScreenClass defaults to ScreenName when empty.
type ButtonClick struct {
	ButtonID    string
	ButtonName  string
	ScreenName  string
	ScreenClass string
}
