package app

import (
	"context"
	"log/slog"

	gocache "github.com/patrickmn/go-cache"

	httpapp "github.com/josesepulvedapino/astra-consulting-sub000/internal/app/http"
	"github.com/josesepulvedapino/astra-consulting-sub000/internal/config"
	"github.com/josesepulvedapino/astra-consulting-sub000/internal/repository"
	"github.com/josesepulvedapino/astra-consulting-sub000/internal/sanity"
	auth "github.com/josesepulvedapino/astra-consulting-sub000/internal/services/auth_service"
	blog "github.com/josesepulvedapino/astra-consulting-sub000/internal/services/blog_service"
	category "github.com/josesepulvedapino/astra-consulting-sub000/internal/services/category_service"
	lead "github.com/josesepulvedapino/astra-consulting-sub000/internal/services/lead_service"
	revalidate "github.com/josesepulvedapino/astra-consulting-sub000/internal/services/revalidate_service"
	webhook "github.com/josesepulvedapino/astra-consulting-sub000/internal/services/webhook_service"
	redisapp "github.com/josesepulvedapino/astra-consulting-sub000/internal/storage/redis"
	httprouters "github.com/josesepulvedapino/astra-consulting-sub000/internal/transport/http"
)

type App struct {
	HTTPServer *httpapp.Server
	Repo       *repository.Repository
	Redis      *redisapp.Client
}

func New(log *slog.Logger, cfg *config.Config) *App {
	repo, err := repository.NewRepository(context.Background(), cfg.DSN)
	if err != nil {
		panic(err)
	}

	redisClient := redisapp.NewClient(
		cfg.Redis.RedisAddr,
		cfg.Redis.RedisPassword,
		cfg.Redis.RedisDB,
	)

	sanityClient := sanity.New(sanity.Config{
		ProjectID:  cfg.Sanity.ProjectID,
		Dataset:    cfg.Sanity.Dataset,
		Token:      cfg.Sanity.Token,
		APIVersion: cfg.Sanity.APIVersion,
		BaseURL:    cfg.Sanity.BaseURL,
	})

	postRepo := repository.NewPostRepository(sanityClient)

	// Shared between the blog proxy (reads) and the revalidate service
	// (flushes on content change).
	localCache := gocache.New(cfg.Content.CacheTTL, 2*cfg.Content.CacheTTL)

	revalidateService := revalidate.NewRevalidateService(log, redisClient, localCache)
	resolver := category.NewCategoryResolver(cfg.Content.DefaultCategoryID)
	importer := webhook.NewImporter(log, sanityClient)

	webhookService := webhook.NewWebhookService(
		log,
		postRepo,
		importer,
		revalidateService,
		resolver,
		cfg.Webhook.Secret,
		cfg.Content.AuthorID,
		cfg.Content.DefaultReadTime,
	)

	blogService := blog.NewBlogService(log, postRepo, localCache, cfg.Content.CacheTTL)
	leadService := lead.NewLeadService(log, repo.Lead, repo.Subscriber)
	authService := auth.NewAuthService(
		log,
		cfg.Admin.Email,
		cfg.Admin.PasswordHash,
		cfg.Admin.JWTSecret,
		cfg.Admin.TokenTTL,
	)

	routers := httprouters.NewRouter(log, webhookService, revalidateService, blogService, leadService, authService)

	server := httpapp.New(log, cfg.Admin.JWTSecret, cfg.Webhook.Secret, cfg.HTTP.Host, cfg.HTTP.Port, routers)

	return &App{
		HTTPServer: server,
		Repo:       repo,
		Redis:      redisClient,
	}
}

func (a *App) Stop() {
	_ = a.HTTPServer.Stop()
	a.Repo.Close()
	a.Redis.Close()
}
