package http

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/josesepulvedapino/astra-consulting-sub000/internal/domain/models"
	"github.com/josesepulvedapino/astra-consulting-sub000/internal/lib/logger/sl"
	appmw "github.com/josesepulvedapino/astra-consulting-sub000/internal/middleware"
	authsvc "github.com/josesepulvedapino/astra-consulting-sub000/internal/services/auth_service"
	"github.com/josesepulvedapino/astra-consulting-sub000/internal/storage"
	"github.com/josesepulvedapino/astra-consulting-sub000/internal/transport/http/dto"
	"github.com/josesepulvedapino/astra-consulting-sub000/internal/transport/http/dto/request"
	"github.com/josesepulvedapino/astra-consulting-sub000/internal/transport/http/dto/response"

	_ "github.com/josesepulvedapino/astra-consulting-sub000/docs"
)

type WebhookService interface {
	Dispatch(ctx context.Context, raw []byte, providedSecret string) dto.WebhookResult
}

type RevalidateService interface {
	Invalidate(ctx context.Context, slug string)
}

type BlogService interface {
	ListPosts(ctx context.Context) ([]models.BlogPost, error)
	GetPost(ctx context.Context, slug string) (*models.BlogPost, error)
}

type LeadService interface {
	SubmitContact(ctx context.Context, req dto.ContactRequest) (uuid.UUID, error)
	Subscribe(ctx context.Context, email string) (bool, error)
	ListLeads(ctx context.Context, page, perPage int) ([]models.Lead, int, error)
	ListSubscribers(ctx context.Context) ([]models.Subscriber, error)
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, error)
}

type Routers struct {
	log               *slog.Logger
	WebhookService    WebhookService
	RevalidateService RevalidateService
	BlogService       BlogService
	LeadService       LeadService
	AuthService       AuthService
}

func NewRouter(log *slog.Logger, webhookService WebhookService, revalidateService RevalidateService, blogService BlogService, leadService LeadService, authService AuthService) *Routers {
	return &Routers{
		log:               log,
		WebhookService:    webhookService,
		RevalidateService: revalidateService,
		BlogService:       blogService,
		LeadService:       leadService,
		AuthService:       authService,
	}
}

// HandleWebhook godoc
// @Summary Webhook de contenido
// @Description Recibe eventos del CMS y de la plataforma de automatización; clasifica y procesa cada evento
// @Tags Webhook
// @Accept json
// @Produce json
// @Success 200 {object} dto.WebhookAck "Evento procesado"
// @Success 204 "Evento reconocido pero no accionable"
// @Failure 400 {object} dto.WebhookError "JSON inválido o errores de validación"
// @Failure 401 {object} dto.WebhookError "Secreto compartido incorrecto"
// @Failure 409 {object} dto.WebhookError "Slug duplicado"
// @Failure 500 {object} dto.WebhookError "Error del content store"
// @Router /api/v1/webhook [post]
func (r *Routers) HandleWebhook(c echo.Context) error {
	const op = "http.routers.HandleWebhook"

	log := r.log.With(
		slog.String("op", op),
	)

	raw, err := io.ReadAll(c.Request().Body)
	if err != nil {
		log.Error("failed to read request body", sl.Err(err))
		return c.JSON(http.StatusBadRequest, dto.WebhookError{
			Error: "failed to read request body",
		})
	}

	result := r.WebhookService.Dispatch(
		c.Request().Context(),
		raw,
		appmw.ProvidedSecret(c),
	)

	if result.Body == nil {
		return c.NoContent(result.Status)
	}

	return c.JSON(result.Status, result.Body)
}

// WebhookHealth godoc
// @Summary Estado del webhook
// @Description Comprueba que el endpoint del webhook está accesible
// @Tags Webhook
// @Produce json
// @Success 200 {object} dto.WebhookAck
// @Router /api/v1/webhook [get]
func (r *Routers) WebhookHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.WebhookAck{
		Success: true,
		Message: "webhook endpoint reachable at " + time.Now().UTC().Format(time.RFC3339),
	})
}

// RevalidateCache godoc
// @Summary Limpiar caché del blog
// @Description Invalida manualmente las páginas y tags cacheados del blog; opcionalmente limitado a un slug
// @Tags Caché
// @Accept json
// @Produce json
// @Param request body dto.RevalidateRequest false "Slug opcional"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.ErrorResponse "Secreto compartido incorrecto"
// @Router /api/v1/cache/revalidate [post]
func (r *Routers) RevalidateCache(c echo.Context) error {
	const op = "http.routers.RevalidateCache"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.RevalidateRequest
	// An empty body is a full invalidation; bind errors are not fatal here.
	if err := c.Bind(&req); err != nil {
		log.Debug("revalidate request without body", sl.Err(err))
	}

	r.RevalidateService.Invalidate(c.Request().Context(), req.Slug)

	return c.JSON(http.StatusOK, response.Response{
		Status:  "success",
		Message: "cache invalidated",
	})
}

// ListPosts godoc
// @Summary Lista de posts
// @Description Devuelve los posts publicados del blog, servidos desde el content store con caché
// @Tags Blog
// @Produce json
// @Success 200 {object} response.Response{data=[]models.BlogPost}
// @Failure 500 {object} response.ErrorResponse
// @Router /api/v1/posts [get]
func (r *Routers) ListPosts(c echo.Context) error {
	const op = "http.routers.ListPosts"

	log := r.log.With(
		slog.String("op", op),
	)

	posts, err := r.BlogService.ListPosts(c.Request().Context())
	if err != nil {
		log.Error("failed to list posts", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Status: "error",
			Error:  "failed to list posts",
		})
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(posts))
}

// GetPost godoc
// @Summary Obtener un post
// @Description Devuelve un post por su slug
// @Tags Blog
// @Produce json
// @Param slug path string true "Slug del post"
// @Success 200 {object} response.Response{data=models.BlogPost}
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/posts/{slug} [get]
func (r *Routers) GetPost(c echo.Context) error {
	const op = "http.routers.GetPost"

	log := r.log.With(
		slog.String("op", op),
	)

	slug := c.Param("slug")

	post, err := r.BlogService.GetPost(c.Request().Context(), slug)
	if err != nil {
		if errors.Is(err, storage.ErrPostNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrorResponse{
				Status: "error",
				Error:  "post not found",
			})
		}

		log.Error("failed to get post", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Status: "error",
			Error:  "failed to get post",
		})
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(post))
}

// SubmitContact godoc
// @Summary Formulario de contacto
// @Description Registra una consulta del formulario de contacto del sitio
// @Tags Contacto
// @Accept json
// @Produce json
// @Param request body dto.ContactRequest true "Datos de contacto"
// @Success 201 {object} response.Response{data=object{lead_id=string}}
// @Failure 400 {object} response.ErrorResponse "Formato de solicitud inválido"
// @Failure 500 {object} response.ErrorResponse
// @Router /api/v1/contact [post]
func (r *Routers) SubmitContact(c echo.Context) error {
	const op = "http.routers.SubmitContact"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.ContactRequest

	if err := c.Bind(&req); err != nil {
		log.Error("failed to bind request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		log.Warn("validation failed", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	leadID, err := r.LeadService.SubmitContact(c.Request().Context(), req)
	if err != nil {
		log.Error("failed to submit contact", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Status: "error",
			Error:  "internal_error",
		})
	}

	return c.JSON(http.StatusCreated, response.Response{
		Status: "success",
		Data: map[string]uuid.UUID{
			"lead_id": leadID,
		},
	})
}

// Subscribe godoc
// @Summary Suscripción al newsletter
// @Description Registra un correo en la lista del newsletter; suscribirse dos veces no es un error
// @Tags Contacto
// @Accept json
// @Produce json
// @Param request body dto.SubscribeRequest true "Correo a suscribir"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/v1/newsletter/subscribe [post]
func (r *Routers) Subscribe(c echo.Context) error {
	const op = "http.routers.Subscribe"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.SubscribeRequest

	if err := c.Bind(&req); err != nil {
		log.Error("failed to bind request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		log.Warn("validation failed", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	already, err := r.LeadService.Subscribe(c.Request().Context(), req.Email)
	if err != nil {
		log.Error("failed to subscribe", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Status: "error",
			Error:  "internal_error",
		})
	}

	message := "subscribed"
	if already {
		message = "already subscribed"
	}

	return c.JSON(http.StatusOK, response.Response{
		Status:  "success",
		Message: message,
	})
}

// AdminLogin godoc
// @Summary Login de administración
// @Description Autentica al administrador y devuelve un JWT para el grupo admin
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body request.LoginRequest true "Credenciales"
// @Success 200 {object} response.Response{data=map[string]string}
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /api/v1/admin/login [post]
func (r *Routers) AdminLogin(c echo.Context) error {
	const op = "http.routers.AdminLogin"

	log := r.log.With(
		slog.String("op", op),
	)

	var req request.LoginRequest

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		log.Warn("invalid format request", slog.String("email", req.Email))
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	token, err := r.AuthService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, authsvc.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationFailed)
		}

		log.Error("login failed", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Status: "error",
			Error:  "internal_error",
		})
	}

	return c.JSON(http.StatusOK, response.Response{
		Status: "success",
		Data:   map[string]string{"access_token": token},
	})
}

// ListLeads godoc
// @Summary Lista de leads
// @Description Devuelve las consultas del formulario de contacto con paginación
// @Tags Admin
// @Produce json
// @Param page query int false "Número de página" default(1)
// @Param per_page query int false "Elementos por página" default(20)
// @Success 200 {object} response.Response{data=[]models.Lead}
// @Failure 500 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/admin/leads [get]
func (r *Routers) ListLeads(c echo.Context) error {
	const op = "http.routers.ListLeads"

	log := r.log.With(
		slog.String("op", op),
	)

	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 1 {
		page = 1
	}

	perPage, err := strconv.Atoi(c.QueryParam("per_page"))
	if err != nil || perPage < 1 || perPage > 100 {
		perPage = 20
	}

	leads, total, err := r.LeadService.ListLeads(c.Request().Context(), page, perPage)
	if err != nil {
		log.Error("failed to list leads", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Status: "error",
			Error:  "failed to list leads",
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"data": leads,
		"meta": map[string]interface{}{
			"total":    total,
			"page":     page,
			"per_page": perPage,
		},
	})
}

// ListSubscribers godoc
// @Summary Lista de suscriptores
// @Description Devuelve los correos suscritos al newsletter
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Response{data=[]models.Subscriber}
// @Failure 500 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/admin/subscribers [get]
func (r *Routers) ListSubscribers(c echo.Context) error {
	const op = "http.routers.ListSubscribers"

	log := r.log.With(
		slog.String("op", op),
	)

	subs, err := r.LeadService.ListSubscribers(c.Request().Context())
	if err != nil {
		log.Error("failed to list subscribers", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Status: "error",
			Error:  "failed to list subscribers",
		})
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(subs))
}
