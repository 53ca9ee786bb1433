package services

import "errors"

var (
	// ErrPageUnmounted is returned when a load or save finishes after the
	// session navigated away; its result is dropped.
	ErrPageUnmounted = errors.New("page is no longer mounted")

	// ErrInvalidTransition rejects view-state changes the page does not allow.
	ErrInvalidTransition = errors.New("invalid view transition")

	// ErrNotReady rejects view-state changes on a page that has no data.
	ErrNotReady = errors.New("page data is not loaded")
)

// Fixed messages shown when a page's fetch batch fails.
const (
	OverviewErrorMessage = "Error cargando los datos del dashboard. Por favor, intente de nuevo más tarde."
	LocationErrorMessage = "Error loading geographic data"
	TimelineErrorMessage = "Error cargando los datos de timeline. Por favor, intente de nuevo más tarde."
)
