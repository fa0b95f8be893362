package tracking

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainShipment "freightline/internal/domain/shipment"
	"freightline/internal/logger"
	"freightline/internal/metrics"
	appErrors "freightline/pkg/errors"
)

// Cache is the short-TTL view cache in front of the store. Misses and cache
// failures both fall through to the store.
type Cache interface {
	Get(ctx context.Context, trackingID string, dest interface{}) (bool, error)
	Set(ctx context.Context, trackingID string, value interface{}) error
}

// Service serves public tracking lookups. Reads only; every derived field
// comes from NewView so the page and any cached copy agree.
type Service struct {
	repo  domainShipment.Repository
	cache Cache
	clock domainShipment.Clock
}

func NewService(repo domainShipment.Repository, cache Cache, clock domainShipment.Clock) *Service {
	if clock == nil {
		clock = domainShipment.SystemClock{}
	}
	return &Service{repo: repo, cache: cache, clock: clock}
}

// Track resolves a tracking number to its public view. The tracking number is
// the shipment UUID; anything that does not parse is rejected before touching
// the store.
func (s *Service) Track(ctx context.Context, trackingNumber string) (*View, error) {
	trimmed := strings.TrimSpace(trackingNumber)
	shipmentID, err := uuid.Parse(trimmed)
	if err != nil {
		metrics.TrackingLookupsTotal.WithLabelValues("invalid").Inc()
		return nil, appErrors.ErrInvalidTrackingID
	}

	if s.cache != nil {
		var cached View
		hit, cacheErr := s.cache.Get(ctx, shipmentID.String(), &cached)
		if cacheErr != nil {
			logger.Warn("Tracking cache read failed",
				zap.String("tracking_number", trimmed),
				zap.Error(cacheErr),
			)
		} else if hit {
			metrics.TrackingLookupsTotal.WithLabelValues("hit").Inc()
			return &cached, nil
		}
	}

	sh, err := s.repo.GetByID(ctx, shipmentID)
	if err != nil {
		metrics.TrackingLookupsTotal.WithLabelValues("not_found").Inc()
		return nil, err
	}

	view := NewView(sh, s.clock.Now())

	if s.cache != nil {
		if cacheErr := s.cache.Set(ctx, shipmentID.String(), view); cacheErr != nil {
			logger.Warn("Tracking cache write failed",
				zap.String("tracking_number", trimmed),
				zap.Error(cacheErr),
			)
		}
	}

	metrics.TrackingLookupsTotal.WithLabelValues("miss").Inc()
	return view, nil
}
