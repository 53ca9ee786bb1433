package services

import (
	"context"
	"encoding/json"
	"fmt"

	"covid-dashboard/api/dashboard"
	"covid-dashboard/models"
)

// PageController owns the fetched data and view state of one mounted page.
type PageController interface {
	Page() models.PageName
	Status() models.LoadStatus
	// ErrorMessage is the fixed page message when Status is Failed.
	ErrorMessage() string
	State() models.PageViewState

	// Load fetches the page's batch. Any failure moves the page to Failed.
	Load(ctx context.Context, api dashboard.DashboardAPI) error
	// Apply performs view-state transitions without fetching. It validates
	// the whole request before changing anything.
	Apply(req models.ViewRequest) error

	Snapshot() (models.PageSnapshot, error)
	Restore(snap models.PageSnapshot) error
}

// NewController returns a controller in the Loading state for page.
func NewController(page models.PageName) (PageController, error) {
	switch page {
	case models.PageOverview:
		return NewOverviewController(), nil
	case models.PageLocation:
		return NewLocationController(), nil
	case models.PageTimeline:
		return NewTimelineController(), nil
	}
	return nil, fmt.Errorf("unknown page %q", page)
}

// pageBase holds what every page controller shares.
type pageBase struct {
	page         models.PageName
	status       models.LoadStatus
	errorMessage string
	state        models.PageViewState
}

func (b *pageBase) Page() models.PageName { return b.page }

func (b *pageBase) Status() models.LoadStatus { return b.status }

func (b *pageBase) ErrorMessage() string { return b.errorMessage }

func (b *pageBase) State() models.PageViewState { return b.state }

func (b *pageBase) fail(message string) {
	b.status = models.StatusFailed
	b.errorMessage = message
}

func (b *pageBase) ready() {
	b.status = models.StatusReady
	b.errorMessage = ""
}

func (b *pageBase) snapshot(raw interface{}) (models.PageSnapshot, error) {
	snap := models.PageSnapshot{Page: b.page, Status: b.status, State: b.state}
	if b.status != models.StatusReady {
		return snap, nil
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return snap, fmt.Errorf("failed to marshal %s data: %w", b.page, err)
	}
	snap.Raw = data
	return snap, nil
}

// restore reads the common part of snap and decodes its raw data into raw
// when the page was Ready. It reports whether raw was filled.
func (b *pageBase) restore(snap models.PageSnapshot, raw interface{}) (bool, error) {
	if snap.Page != b.page {
		return false, fmt.Errorf("snapshot of %q restored into %q", snap.Page, b.page)
	}
	b.state = snap.State
	switch snap.Status {
	case models.StatusFailed:
		b.fail(errorMessageOf(b.page))
		return false, nil
	case models.StatusReady:
		if err := json.Unmarshal(snap.Raw, raw); err != nil {
			return false, fmt.Errorf("failed to unmarshal %s data: %w", b.page, err)
		}
		return true, nil
	}
	b.status = models.StatusLoading
	return false, nil
}

func (b *pageBase) requireReady() error {
	if b.status != models.StatusReady {
		return ErrNotReady
	}
	return nil
}

func errorMessageOf(page models.PageName) string {
	switch page {
	case models.PageOverview:
		return OverviewErrorMessage
	case models.PageLocation:
		return LocationErrorMessage
	}
	return TimelineErrorMessage
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidTransition, fmt.Sprintf(format, args...))
}

func oneOf(value string, allowed ...string) bool {
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}
