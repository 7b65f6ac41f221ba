package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/josesepulvedapino/astra-consulting-sub000/internal/domain/models"
	"github.com/josesepulvedapino/astra-consulting-sub000/internal/lib/logger/sl"
)

// PostProvider is the read-side slice of the content store.
type PostProvider interface {
	ListPosts(ctx context.Context) ([]models.BlogPost, error)
	PostBySlug(ctx context.Context, slug string) (*models.BlogPost, error)
}

// BlogService serves the site's blog pages from the content store with a
// TTL'd in-process cache in front. The revalidate service flushes the same
// cache when content changes.
type BlogService struct {
	log      *slog.Logger
	provider PostProvider
	cache    *gocache.Cache
	ttl      time.Duration
}

func NewBlogService(log *slog.Logger, provider PostProvider, cache *gocache.Cache, ttl time.Duration) *BlogService {
	return &BlogService{
		log:      log,
		provider: provider,
		cache:    cache,
		ttl:      ttl,
	}
}

const postListKey = "posts:list"

func postKey(slug string) string {
	return "posts:slug:" + slug
}

func (s *BlogService) ListPosts(ctx context.Context) ([]models.BlogPost, error) {
	const op = "blog_service.ListPosts"

	log := s.log.With(
		slog.String("op", op),
	)

	if cached, ok := s.cache.Get(postListKey); ok {
		return cached.([]models.BlogPost), nil
	}

	posts, err := s.provider.ListPosts(ctx)
	if err != nil {
		log.Error("failed to list posts", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.cache.Set(postListKey, posts, s.ttl)
	log.Debug("post list cached", slog.Int("count", len(posts)))

	return posts, nil
}

func (s *BlogService) GetPost(ctx context.Context, slug string) (*models.BlogPost, error) {
	const op = "blog_service.GetPost"

	log := s.log.With(
		slog.String("op", op),
		slog.String("slug", slug),
	)

	if cached, ok := s.cache.Get(postKey(slug)); ok {
		return cached.(*models.BlogPost), nil
	}

	post, err := s.provider.PostBySlug(ctx, slug)
	if err != nil {
		log.Error("failed to get post", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.cache.Set(postKey(slug), post, s.ttl)

	return post, nil
}
