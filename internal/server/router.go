package server

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/inkmatch/inkmatch-server/internal/classify"
	"github.com/inkmatch/inkmatch-server/internal/config"
	"github.com/inkmatch/inkmatch-server/internal/service/ai"
	"github.com/inkmatch/inkmatch-server/internal/service/cache"
	"github.com/inkmatch/inkmatch-server/internal/service/database"
	"github.com/inkmatch/inkmatch-server/internal/service/geocode"
	"github.com/inkmatch/inkmatch-server/internal/service/storage"
	"go.uber.org/zap"
)

// Server holds the HTTP surface and its collaborators.
type Server struct {
	cfg      *config.Config
	logger   *zap.Logger
	strategy classify.Strategy
	vision   *ai.VisionService
	cache    *cache.CacheService
	users    *database.UserRepository
	artists  *database.ArtistRepository
	reviews  *database.ReviewRepository
	storage  *storage.Client
	geocoder *geocode.Client
}

type Deps struct {
	Config   *config.Config
	Logger   *zap.Logger
	Strategy classify.Strategy
	Vision   *ai.VisionService
	Cache    *cache.CacheService
	Users    *database.UserRepository
	Artists  *database.ArtistRepository
	Reviews  *database.ReviewRepository
	Storage  *storage.Client
	Geocoder *geocode.Client
}

func New(deps Deps) *Server {
	return &Server{
		cfg:      deps.Config,
		logger:   deps.Logger,
		strategy: deps.Strategy,
		vision:   deps.Vision,
		cache:    deps.Cache,
		users:    deps.Users,
		artists:  deps.Artists,
		reviews:  deps.Reviews,
		storage:  deps.Storage,
		geocoder: deps.Geocoder,
	}
}

func (s *Server) Router() http.Handler {
	r := mux.NewRouter()

	r.Use(RequestIDMiddleware())
	r.Use(RecoveryMiddleware(s.logger))
	r.Use(LoggingMiddleware(s.logger))

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/analyze-tattoo", s.handleAnalyzeTattoo).Methods(http.MethodPost)
	api.HandleFunc("/analyze-portfolio", s.handleAnalyzePortfolio).Methods(http.MethodPost)
	api.HandleFunc("/upload", s.handleUpload).Methods(http.MethodPost)

	api.HandleFunc("/users", s.handleCreateUser).Methods(http.MethodPost)
	api.HandleFunc("/users/{id}", s.handleGetUser).Methods(http.MethodGet)

	api.HandleFunc("/artists", s.handleCreateArtist).Methods(http.MethodPost)
	api.HandleFunc("/artists", s.handleListArtists).Methods(http.MethodGet)
	api.HandleFunc("/artists/{id}", s.handleGetArtist).Methods(http.MethodGet)
	api.HandleFunc("/artists/{id}", s.handleUpdateArtist).Methods(http.MethodPut)
	api.HandleFunc("/artists/{id}/styles", s.handleReplaceArtistStyles).Methods(http.MethodPut)

	api.HandleFunc("/artists/{id}/reviews", s.handleCreateReview).Methods(http.MethodPost)
	api.HandleFunc("/artists/{id}/reviews", s.handleListReviews).Methods(http.MethodGet)

	api.HandleFunc("/geocode", s.handleGeocodeForward).Methods(http.MethodGet)
	api.HandleFunc("/geocode/reverse", s.handleGeocodeReverse).Methods(http.MethodGet)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	if s.cache != nil {
		status["cache"] = s.cache.IsConnected(r.Context())
	}
	if s.vision != nil {
		status["circuit"] = s.vision.GetCircuitStatus()
	}
	writeJSON(w, http.StatusOK, status)
}
