package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"covid-dashboard/api/dashboard"
	"covid-dashboard/dao/redis"
	"covid-dashboard/models"
)

// DashboardService opens pages for sessions. A session has at most one
// mounted page; its data and view state live in the page-state store until
// the session navigates elsewhere or the snapshot expires.
type DashboardService struct {
	dashboardAPI dashboard.DashboardAPI
	pageStateDao *redis.RedisPageStateDAO
	lifetimes    *Lifetimes
}

// NewDashboardService constructs a new DashboardService.
func NewDashboardService(
	dashboardAPI dashboard.DashboardAPI,
	pageStateDao *redis.RedisPageStateDAO,
	lifetimes *Lifetimes) *DashboardService {

	return &DashboardService{
		dashboardAPI: dashboardAPI,
		pageStateDao: pageStateDao,
		lifetimes:    lifetimes,
	}
}

// Open mounts page for session and returns its controller, Ready or
// Failed. A stored Ready snapshot is restored unless reload is set;
// otherwise the page's batch is fetched, so a Failed page is retried on
// every open. A load that finishes after the session moved to
// another lifetime returns ErrPageUnmounted and is discarded.
func (s *DashboardService) Open(ctx context.Context, session string, page models.PageName, reload bool) (PageController, Lease, error) {
	if !page.Valid() {
		return nil, Lease{}, fmt.Errorf("unknown page %q", page)
	}

	if current, ok := s.lifetimes.Current(session); !ok || current != page {
		if ok {
			log.Printf("[DashboardService] Session %s navigated from %s to %s", session, current, page)
			s.lifetimes.Unmount(session)
		}
		if err := s.pageStateDao.DeleteOtherSnapshots(ctx, session, page); err != nil {
			log.Printf("[DashboardService] Failed to discard stale snapshots of %s: %v", session, err)
		}
	}

	if !reload {
		if ctrl, ok := s.restore(ctx, session, page); ok {
			return ctrl, s.lifetimes.Adopt(session, page), nil
		}
	}
	return s.load(ctx, session, page)
}

func (s *DashboardService) restore(ctx context.Context, session string, page models.PageName) (PageController, bool) {
	snap, err := s.pageStateDao.GetSnapshot(ctx, session, page)
	if errors.Is(err, redis.ErrSnapshotNotFound) {
		return nil, false
	}
	if err != nil {
		log.Printf("[DashboardService] Could not read snapshot of %s/%s: %v", session, page, err)
		return nil, false
	}

	ctrl, err := NewController(page)
	if err != nil {
		return nil, false
	}
	if err := ctrl.Restore(*snap); err != nil {
		log.Printf("[DashboardService] Could not restore %s/%s, reloading: %v", session, page, err)
		return nil, false
	}
	if ctrl.Status() != models.StatusReady {
		return nil, false
	}
	return ctrl, true
}

func (s *DashboardService) load(ctx context.Context, session string, page models.PageName) (PageController, Lease, error) {
	ctrl, err := NewController(page)
	if err != nil {
		return nil, Lease{}, err
	}

	loadCtx, lease := s.lifetimes.Mount(ctx, session, page)
	defer s.lifetimes.Release(lease)

	log.Printf("[DashboardService] Loading %s for session %s", page, session)
	loadErr := ctrl.Load(loadCtx, s.dashboardAPI)

	if !s.lifetimes.Alive(lease) {
		log.Printf("[DashboardService] Dropping %s result for session %s: page unmounted", page, session)
		return nil, lease, ErrPageUnmounted
	}
	if loadErr != nil && ctx.Err() != nil {
		// The caller went away; a cancelled batch is not a page failure.
		return nil, lease, ctx.Err()
	}

	if err := s.Save(ctx, lease, ctrl); err != nil {
		log.Printf("[DashboardService] Failed to store %s for session %s: %v", page, session, err)
	}
	return ctrl, lease, nil
}

// Save stores the controller's snapshot while its lifetime is current.
func (s *DashboardService) Save(ctx context.Context, lease Lease, ctrl PageController) error {
	if !s.lifetimes.Touch(lease) {
		return ErrPageUnmounted
	}
	snap, err := ctrl.Snapshot()
	if err != nil {
		return err
	}
	return s.pageStateDao.SaveSnapshot(ctx, lease.Session, snap)
}

// Close unmounts the session's page and discards its data.
func (s *DashboardService) Close(ctx context.Context, session string) error {
	page, ok := s.lifetimes.Unmount(session)
	if !ok {
		return nil
	}
	return s.pageStateDao.DeleteSnapshot(ctx, session, page)
}
