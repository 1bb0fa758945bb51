package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/adityakashyap5047/Evix/internal/domain"
	"github.com/adityakashyap5047/Evix/pkg/redis"
)

const (
	// Cache key prefixes
	eventSlugKeyPrefix     = "event:slug:"
	eventUpcomingKeyPrefix = "event:upcoming:"
	eventCategoryCountsKey = "event:categories:counts"

	// Default TTL for event caches
	eventCacheTTL = 5 * time.Minute
)

// CachedEventRepository wraps EventRepository with Redis caching for the
// discovery read paths. Mutations invalidate; a stale entry lives at most
// eventCacheTTL.
type CachedEventRepository struct {
	repo  EventRepository
	cache *redis.Client
}

// NewCachedEventRepository creates a new CachedEventRepository
func NewCachedEventRepository(repo EventRepository, cache *redis.Client) *CachedEventRepository {
	return &CachedEventRepository{
		repo:  repo,
		cache: cache,
	}
}

// CreateWithQuota creates the event and invalidates discovery caches
func (r *CachedEventRepository) CreateWithQuota(ctx context.Context, event *domain.Event, enforceQuota bool) error {
	if err := r.repo.CreateWithQuota(ctx, event, enforceQuota); err != nil {
		return err
	}
	r.invalidateDiscoveryCaches(ctx)
	return nil
}

// GetByID retrieves an event by ID (bypass cache, registration paths need
// the live registration count)
func (r *CachedEventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	return r.repo.GetByID(ctx, id)
}

// GetBySlug retrieves an event by slug with caching
func (r *CachedEventRepository) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	cacheKey := eventSlugKeyPrefix + slug
	if cached, err := r.cache.GetString(ctx, cacheKey); err == nil && cached != "" {
		var event domain.Event
		if err := json.Unmarshal([]byte(cached), &event); err == nil {
			return &event, nil
		}
	}

	event, err := r.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, nil
	}

	if data, err := json.Marshal(event); err == nil {
		r.cache.SetString(ctx, cacheKey, string(data), eventCacheTTL)
	}
	return event, nil
}

// ListByOrganizer lists an organizer's events (bypass cache, management view)
func (r *CachedEventRepository) ListByOrganizer(ctx context.Context, organizerID string, limit, offset int) ([]*domain.Event, int64, error) {
	return r.repo.ListByOrganizer(ctx, organizerID, limit, offset)
}

// ListUpcoming lists upcoming events with caching
func (r *CachedEventRepository) ListUpcoming(ctx context.Context, now time.Time, limit, offset int) ([]*domain.Event, int64, error) {
	cacheKey := fmt.Sprintf("%s%d:%d", eventUpcomingKeyPrefix, limit, offset)
	if cached, err := r.cache.GetString(ctx, cacheKey); err == nil && cached != "" {
		var result cachedEventList
		if err := json.Unmarshal([]byte(cached), &result); err == nil {
			return result.Events, result.Total, nil
		}
	}

	events, total, err := r.repo.ListUpcoming(ctx, now, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	if data, err := json.Marshal(cachedEventList{Events: events, Total: total}); err == nil {
		r.cache.SetString(ctx, cacheKey, string(data), eventCacheTTL)
	}
	return events, total, nil
}

// ListAll lists every event (bypass cache, management view)
func (r *CachedEventRepository) ListAll(ctx context.Context, limit, offset int) ([]*domain.Event, int64, error) {
	return r.repo.ListAll(ctx, limit, offset)
}

// ListByCategory lists upcoming events in a category (bypass cache)
func (r *CachedEventRepository) ListByCategory(ctx context.Context, category string, now time.Time, limit, offset int) ([]*domain.Event, int64, error) {
	return r.repo.ListByCategory(ctx, category, now, limit, offset)
}

// ListByLocation lists upcoming events by location (bypass cache)
func (r *CachedEventRepository) ListByLocation(ctx context.Context, city, state, country string, now time.Time, limit, offset int) ([]*domain.Event, int64, error) {
	return r.repo.ListByLocation(ctx, city, state, country, now, limit, offset)
}

// Search searches upcoming events by title (bypass cache)
func (r *CachedEventRepository) Search(ctx context.Context, query string, now time.Time, limit int) ([]*domain.Event, error) {
	return r.repo.Search(ctx, query, now, limit)
}

// CategoryCounts returns per-category upcoming counts with caching
func (r *CachedEventRepository) CategoryCounts(ctx context.Context, now time.Time) ([]domain.CategoryCount, error) {
	if cached, err := r.cache.GetString(ctx, eventCategoryCountsKey); err == nil && cached != "" {
		var counts []domain.CategoryCount
		if err := json.Unmarshal([]byte(cached), &counts); err == nil {
			return counts, nil
		}
	}

	counts, err := r.repo.CategoryCounts(ctx, now)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(counts); err == nil {
		r.cache.SetString(ctx, eventCategoryCountsKey, string(data), eventCacheTTL)
	}
	return counts, nil
}

// DeleteCascade deletes the event and invalidates caches
func (r *CachedEventRepository) DeleteCascade(ctx context.Context, eventID, organizerID string, decrementQuota bool) (bool, error) {
	// Fetch first so the slug cache entry can be dropped too
	event, err := r.repo.GetByID(ctx, eventID)
	if err != nil {
		return false, err
	}

	floored, err := r.repo.DeleteCascade(ctx, eventID, organizerID, decrementQuota)
	if err != nil {
		return false, err
	}

	if event != nil {
		r.cache.Delete(ctx, eventSlugKeyPrefix+event.Slug)
	}
	r.invalidateDiscoveryCaches(ctx)
	return floored, nil
}

type cachedEventList struct {
	Events []*domain.Event `json:"events"`
	Total  int64           `json:"total"`
}

func (r *CachedEventRepository) invalidateDiscoveryCaches(ctx context.Context) {
	r.cache.DeleteByPattern(ctx, eventUpcomingKeyPrefix+"*")
	r.cache.Delete(ctx, eventCategoryCountsKey)
}
