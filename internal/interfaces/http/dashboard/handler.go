package dashboard

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	dashboardapp "github.com/genba-survey/validation-api/internal/dashboard/application"
	"go.mongodb.org/mongo-driver/mongo"
)

// Handler wires dashboard HTTP endpoints to application services.
type Handler struct {
	logger               *log.Logger
	submissions          dashboardapp.SubmissionQueryService
	validation           dashboardapp.ValidationService
	cache                dashboardapp.ResponseCache
	cacheTTL             time.Duration
	httpClient           *http.Client
	messengerEndpoint    string
	messengerDestination string
	failedNotifications  *mongo.Collection
}

// Config defines dependencies required by Handler.
type Config struct {
	Logger               *log.Logger
	Submissions          dashboardapp.SubmissionQueryService
	Validation           dashboardapp.ValidationService
	Cache                dashboardapp.ResponseCache
	CacheTTL             time.Duration
	HTTPClient           *http.Client
	MessengerEndpoint    string
	MessengerDestination string
	FailedNotifications  *mongo.Collection
}

// NewHandler constructs a dashboard HTTP handler set.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		logger:               cfg.Logger,
		submissions:          cfg.Submissions,
		validation:           cfg.Validation,
		cache:                cfg.Cache,
		cacheTTL:             cfg.CacheTTL,
		httpClient:           cfg.HTTPClient,
		messengerEndpoint:    cfg.MessengerEndpoint,
		messengerDestination: cfg.MessengerDestination,
		failedNotifications:  cfg.FailedNotifications,
	}
}

// Register mounts dashboard routes onto the router. 全ルートが認証必須。
func (h *Handler) Register(r chi.Router) {
	r.Get("/submissions", h.submissionListHandler())
	r.Patch("/submissions/status", h.statusUpdateHandler())
	r.Get("/stats", h.statsHandler())
}
