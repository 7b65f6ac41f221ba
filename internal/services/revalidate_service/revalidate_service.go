package services

import (
	"context"
	"log/slog"

	gocache "github.com/patrickmn/go-cache"

	"github.com/josesepulvedapino/astra-consulting-sub000/internal/lib/logger/sl"
	"github.com/josesepulvedapino/astra-consulting-sub000/internal/metrics"
	redisapp "github.com/josesepulvedapino/astra-consulting-sub000/internal/storage/redis"
)

// The fixed invalidation set: every blog-related rendered page plus the two
// tag buckets grouping content-store reads.
var (
	blogPaths = []string{"/blog", "/blog/[slug]", "/sitemap.xml", "/"}
	blogTags  = []string{"posts", "sanity-data"}
)

// RevalidateService drops cached page entries and tag buckets so the next
// request regenerates them. It never returns an error: a stale cache is
// preferable to a failed webhook acknowledgment, so failures are logged and
// swallowed.
type RevalidateService struct {
	log   *slog.Logger
	redis *redisapp.Client
	local *gocache.Cache
}

func NewRevalidateService(log *slog.Logger, redis *redisapp.Client, local *gocache.Cache) *RevalidateService {
	return &RevalidateService{
		log:   log,
		redis: redis,
		local: local,
	}
}

// Invalidate clears the fixed path set and tag buckets; a non-empty slug
// additionally clears that post's page.
func (s *RevalidateService) Invalidate(ctx context.Context, slug string) {
	const op = "revalidate_service.Invalidate"

	log := s.log.With(
		slog.String("op", op),
		slog.String("slug", slug),
	)

	failed := false

	keys := make([]string, 0, len(blogPaths)+1)
	for _, path := range blogPaths {
		keys = append(keys, pageKey(path))
	}
	if slug != "" {
		keys = append(keys, pageKey("/blog/"+slug))
	}

	if err := s.redis.Del(ctx, keys...).Err(); err != nil {
		log.Warn("failed to drop page entries", sl.Err(err))
		failed = true
	}

	for _, tag := range blogTags {
		if err := s.invalidateTag(ctx, tag); err != nil {
			log.Warn("failed to drop tag bucket",
				slog.String("tag", tag), sl.Err(err))
			failed = true
		}
	}

	if s.local != nil {
		s.local.Flush()
	}

	outcome := "ok"
	if failed {
		outcome = "error"
	}
	metrics.CacheInvalidationsTotal.WithLabelValues(outcome).Inc()

	log.Info("cache invalidated", slog.Int("keys", len(keys)))
}

// invalidateTag deletes every page keyed under the tag set, then the set
// itself.
func (s *RevalidateService) invalidateTag(ctx context.Context, tag string) error {
	key := tagKey(tag)

	members, err := s.redis.SMembers(ctx, key).Result()
	if err != nil {
		return err
	}

	if len(members) > 0 {
		if err := s.redis.Del(ctx, members...).Err(); err != nil {
			return err
		}
	}

	return s.redis.Del(ctx, key).Err()
}

func pageKey(path string) string {
	return "page:" + path
}

func tagKey(tag string) string {
	return "tag:" + tag
}
