package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/rydio/api/internal/models"
)

// ErrUnavailable means the catalog source could not be read within its
// timeout. Requests depending on the catalog must fail, not degrade.
var ErrUnavailable = errors.New("catalog unavailable")

// RefreshSubject is the NATS subject the fleet CRUD service publishes
// on after any vehicle change.
const RefreshSubject = "rydio.catalog.updated"

const snapshotKey = "catalog"

// VehicleLister is the data source behind the snapshot.
type VehicleLister interface {
	ListVehicles(ctx context.Context) ([]models.VehicleCandidate, error)
}

// SnapshotProvider serves a read-only, periodically refreshed view of
// the fleet. Reads hit an in-process TTL cache; a NATS subscription
// flushes it when the fleet changes out-of-band.
type SnapshotProvider struct {
	repo    VehicleLister
	cache   *gocache.Cache
	ttl     time.Duration
	timeout time.Duration
	logger  *zap.Logger
}

func NewSnapshotProvider(repo VehicleLister, ttl, timeout time.Duration, logger *zap.Logger) *SnapshotProvider {
	return &SnapshotProvider{
		repo:    repo,
		cache:   gocache.New(ttl, 2*ttl),
		ttl:     ttl,
		timeout: timeout,
		logger:  logger,
	}
}

// Snapshot returns the current candidate set. The database read is
// bounded by the provider's timeout; failure maps to ErrUnavailable.
func (p *SnapshotProvider) Snapshot(ctx context.Context) ([]models.VehicleCandidate, error) {
	if cached, found := p.cache.Get(snapshotKey); found {
		return cached.([]models.VehicleCandidate), nil
	}

	readCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	vehicles, err := p.repo.ListVehicles(readCtx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	p.cache.Set(snapshotKey, vehicles, p.ttl)
	return vehicles, nil
}

// Invalidate drops the cached snapshot so the next read refreshes.
func (p *SnapshotProvider) Invalidate() {
	p.cache.Delete(snapshotKey)
}

// SubscribeRefresh flushes the snapshot whenever the fleet service
// announces a change. NATS being down is non-fatal; the TTL still
// bounds staleness.
func (p *SnapshotProvider) SubscribeRefresh(nc *nats.Conn) (*nats.Subscription, error) {
	sub, err := nc.Subscribe(RefreshSubject, func(msg *nats.Msg) {
		p.logger.Info("catalog refresh notification received", zap.String("subject", msg.Subject))
		p.Invalidate()
	})
	if err != nil {
		return nil, err
	}
	return sub, nil
}
