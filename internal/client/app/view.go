package app

// View identifies which top-level screen the application is showing.
type View string

const (
	ViewLanding   View = "landing"
	ViewLogin     View = "login"
	ViewSignup    View = "signup"
	ViewDashboard View = "dashboard"
	ViewSuccess   View = "success"
)
