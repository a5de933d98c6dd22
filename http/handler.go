package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/sagarc03/galleria"
)

// AuthService is the credential store as seen by the HTTP layer.
type AuthService interface {
	TokenResolver
	Signup(ctx context.Context, req galleria.SignupRequest) (string, error)
	Login(ctx context.Context, username, password string) (string, error)
}

type GalleryService interface {
	Create(ctx context.Context, user galleria.User, in galleria.GalleryInput) (galleria.Gallery, error)
	Get(ctx context.Context, user galleria.User, id uuid.UUID) (galleria.Gallery, error)
	Update(ctx context.Context, user galleria.User, id uuid.UUID, patch galleria.GalleryPatch) (galleria.Gallery, error)
	Delete(ctx context.Context, user galleria.User, id uuid.UUID) error
	List(ctx context.Context, user galleria.User, page galleria.Page) (galleria.Paged[galleria.Gallery], error)
}

type PictureService interface {
	Upload(ctx context.Context, user galleria.User, galleryID uuid.UUID, in galleria.PictureInput, file *galleria.ImageFile) (galleria.Picture, error)
	Get(ctx context.Context, user galleria.User, galleryID, picID uuid.UUID) (galleria.Picture, error)
	List(ctx context.Context, user galleria.User, galleryID uuid.UUID, page galleria.Page) (galleria.Paged[galleria.Picture], error)
	Delete(ctx context.Context, user galleria.User, galleryID, picID uuid.UUID) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	MaxUploadSize() int64
}

type CORSConfig struct {
	Enabled          bool     `mapstructure:"enabled"`
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type HandlerConfig struct {
	// ServeImages mounts GET /images/* for backends without public URLs.
	ServeImages bool
	// RequestTimeout bounds each request's context. Zero disables it.
	RequestTimeout time.Duration
	CORS           CORSConfig
}

// Handler provides the HTTP API for the gallery server.
type Handler struct {
	config    HandlerConfig
	auth      AuthService
	galleries GalleryService
	pictures  PictureService
}

// NewHandler creates a new Handler with the given configuration and services.
func NewHandler(config *HandlerConfig, auth AuthService, galleries GalleryService, pictures PictureService) *Handler {
	return &Handler{
		config:    *config,
		auth:      auth,
		galleries: galleries,
		pictures:  pictures,
	}
}

// Router returns an http.Handler with every route configured.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	if h.config.RequestTimeout > 0 {
		r.Use(middleware.Timeout(h.config.RequestTimeout))
	}

	if h.config.CORS.Enabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   h.config.CORS.AllowedOrigins,
			AllowedMethods:   h.config.CORS.AllowedMethods,
			AllowedHeaders:   h.config.CORS.AllowedHeaders,
			ExposedHeaders:   h.config.CORS.ExposedHeaders,
			AllowCredentials: h.config.CORS.AllowCredentials,
			MaxAge:           h.config.CORS.MaxAge,
		}))
	}

	r.NotFound(notFound)
	r.MethodNotAllowed(methodNotAllowed)

	r.Get("/healthz", h.handleHealth)

	if h.config.ServeImages {
		r.Get("/images/*", h.handleImage)
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/signup", h.handleSignup)
		r.Get("/login", h.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(BearerAuth(h.auth))

			r.Route("/gallery", func(r chi.Router) {
				r.Post("/", h.handleCreateGallery)
				r.Get("/", h.handleListGalleries)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.handleGetGallery)
					r.Put("/", h.handleUpdateGallery)
					r.Delete("/", h.handleDeleteGallery)

					r.Post("/pic", h.handleUploadPicture)
					r.Get("/pic", h.handleListPictures)
					r.Get("/pic/{picID}", h.handleGetPicture)
					r.Delete("/pic/{picID}", h.handleDeletePicture)
				})
			})
		})
	})

	return r
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	_ = WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleImage(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "*")

	content, err := h.pictures.Open(r.Context(), key)
	if err != nil {
		HandleError(w, err)
		return
	}
	defer func() { _ = content.Close() }()

	w.Header().Set("Content-Type", galleria.ResolveContentType("", key))
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")

	if rs, ok := content.(io.ReadSeeker); ok {
		http.ServeContent(w, r, key, time.Time{}, rs)
		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, content)
}

// currentUser returns the user attached by BearerAuth. Routes that call it are
// always behind the middleware, so a missing user is an internal error.
func currentUser(r *http.Request) (galleria.User, error) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		return galleria.User{}, errors.New("no user in request context")
	}
	return user, nil
}

func parseID(r *http.Request, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		return uuid.Nil, galleria.InvalidInput("invalid %s", param)
	}
	return id, nil
}

// parsePage reads ?page= and ?pagesize=. Unparseable values fall back to defaults.
func parsePage(r *http.Request) galleria.Page {
	q := r.URL.Query()

	var page galleria.Page
	if v, err := strconv.Atoi(q.Get("page")); err == nil {
		page.Page = v
	}
	if v, err := strconv.Atoi(q.Get("pagesize")); err == nil {
		page.PageSize = v
	}

	return page.Normalize()
}
