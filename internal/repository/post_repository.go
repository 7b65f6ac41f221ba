package repository

import (
	"context"
	"fmt"

	"github.com/josesepulvedapino/astra-consulting-sub000/internal/domain/models"
	"github.com/josesepulvedapino/astra-consulting-sub000/internal/sanity"
	"github.com/josesepulvedapino/astra-consulting-sub000/internal/storage"
)

// PostRepo is the content-store side of the repository layer: posts live in
// the external CMS, not in Postgres, so reads and writes go through the
// Sanity client.
type PostRepo struct {
	client *sanity.Client
}

func NewPostRepository(client *sanity.Client) *PostRepo {
	return &PostRepo{client: client}
}

// PostExists reports whether any post document carries exactly this slug.
func (r *PostRepo) PostExists(ctx context.Context, slug string) (bool, error) {
	const op = "repository.post_repository.PostExists"

	var count int
	err := r.client.Query(ctx,
		`count(*[_type == "post" && slug.current == $slug])`,
		map[string]any{"slug": slug},
		&count,
	)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return count > 0, nil
}

func (r *PostRepo) CreatePost(ctx context.Context, doc map[string]any) (string, error) {
	const op = "repository.post_repository.CreatePost"

	id, err := r.client.Create(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

const postProjection = `{
	"id": _id,
	title,
	"slug": slug.current,
	excerpt,
	body,
	"category": categories[0]->title,
	tags,
	"read_time": readTime,
	"image_url": mainImage.asset->url,
	"published_at": publishedAt
}`

func (r *PostRepo) ListPosts(ctx context.Context) ([]models.BlogPost, error) {
	const op = "repository.post_repository.ListPosts"

	var posts []models.BlogPost
	err := r.client.Query(ctx,
		`*[_type == "post" && defined(slug.current)] | order(publishedAt desc) `+postProjection,
		nil,
		&posts,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return posts, nil
}

func (r *PostRepo) PostBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	const op = "repository.post_repository.PostBySlug"

	var post *models.BlogPost
	err := r.client.Query(ctx,
		`*[_type == "post" && slug.current == $slug][0] `+postProjection,
		map[string]any{"slug": slug},
		&post,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if post == nil {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrPostNotFound)
	}

	return post, nil
}
