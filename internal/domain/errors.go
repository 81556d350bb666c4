package domain

import "errors"

// Session-lifecycle errors are fatal to a run; per-iteration errors
// (ErrControlNotFound, ErrLandmarkTimeout) are caught at the orchestrator
// boundary and skip the iteration. Callers match with errors.Is.
var (
	ErrLaunchFailed     = errors.New("browser launch failed")
	ErrNavigationFailed = errors.New("navigation failed")
	ErrControlNotFound  = errors.New("swipe control not found")
	ErrLandmarkTimeout  = errors.New("landmark wait timed out")
	ErrNotReady         = errors.New("session is not ready")
	ErrSessionClosed    = errors.New("session is closed")
)
