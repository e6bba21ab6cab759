package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lodgeworks/roomkeeper/docs" // Import generated docs
	"github.com/lodgeworks/roomkeeper/internal/handler/dto"
	"github.com/lodgeworks/roomkeeper/internal/middleware"
	"github.com/lodgeworks/roomkeeper/internal/notify"
	"github.com/lodgeworks/roomkeeper/internal/repository"
	"github.com/lodgeworks/roomkeeper/internal/service"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	pool           *pgxpool.Pool
	taskService    *service.TaskService
	roomService    *service.RoomService
	taskRepo       *repository.TaskRepository
	actorRepo      *repository.ActorRepository
	dispatcher     *notify.Dispatcher
	prefs          notify.Preferences
	authMiddleware *middleware.AuthMiddleware
}

// New creates a new Handler instance with all dependencies.
func New(pool *pgxpool.Pool, rdb *redis.Client, jwtSecret []byte, pushURL string) *Handler {
	// Create repositories
	taskRepo := repository.NewTaskRepository(pool)
	roomRepo := repository.NewRoomRepository(pool)
	actorRepo := repository.NewActorRepository(pool)

	// Create services
	taskService := service.NewTaskService(taskRepo, roomRepo, actorRepo)
	roomService := service.NewRoomService(roomRepo)

	// Create notification pipeline
	prefs := notify.NewRedisPreferences(rdb)
	sink := notify.NewExpoSink(actorRepo, pushURL)
	dispatcher := notify.NewDispatcher(sink, prefs)

	// Create middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtSecret, actorRepo)

	return &Handler{
		pool:           pool,
		taskService:    taskService,
		roomService:    roomService,
		taskRepo:       taskRepo,
		actorRepo:      actorRepo,
		dispatcher:     dispatcher,
		prefs:          prefs,
		authMiddleware: authMiddleware,
	}
}

// RegisterRoutes registers all HTTP routes.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Health check and metrics
	mux.HandleFunc("GET /healthz", h.handleHealthz)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Swagger UI
	mux.HandleFunc("GET /swagger/", httpSwagger.Handler())

	// API v1 routes with authentication
	mux.Handle("GET /api/v1/tasks", h.authenticated(h.handleListTasks))
	mux.Handle("POST /api/v1/tasks", h.authenticated(h.handleCreateTask))
	mux.Handle("PATCH /api/v1/tasks/{id}", h.authenticated(h.handleUpdateTask))
	mux.Handle("DELETE /api/v1/tasks/{id}", h.authenticated(h.handleDeleteTask))
	mux.Handle("PATCH /api/v1/tasks/{id}/completion", h.authenticated(h.handleToggleCompletion))
	mux.Handle("PUT /api/v1/tasks/{id}/assignee", h.authenticated(h.handleAssignTask))
	mux.Handle("PUT /api/v1/tasks/{id}/room", h.authenticated(h.handleAssignRoom))
	mux.Handle("PUT /api/v1/tasks/{id}/notes", h.authenticated(h.handleSetNotes))

	mux.Handle("GET /api/v1/rooms", h.authenticated(h.handleListRooms))
	mux.Handle("POST /api/v1/rooms", h.authenticated(h.handleCreateRoom))
	mux.Handle("PATCH /api/v1/rooms/{id}", h.authenticated(h.handleUpdateRoom))
	mux.Handle("DELETE /api/v1/rooms/{id}", h.authenticated(h.handleDeleteRoom))

	mux.Handle("GET /api/v1/me", h.authenticated(h.handleGetMe))
	mux.Handle("PUT /api/v1/me/push-token", h.authenticated(h.handleSetPushToken))
	mux.Handle("GET /api/v1/users", h.authenticated(h.handleListUsers))
	mux.Handle("PUT /api/v1/users/{id}/role", h.authenticated(h.handleSetRole))

	mux.Handle("GET /api/v1/settings/notifications", h.authenticated(h.handleGetNotificationSettings))
	mux.Handle("PUT /api/v1/settings/notifications", h.authenticated(h.handleSetNotificationSettings))

	mux.Handle("GET /api/v1/stats", h.authenticated(h.handleGetStats))
}

// authenticated wraps a handler func with bearer authentication.
func (h *Handler) authenticated(fn http.HandlerFunc) http.Handler {
	return h.authMiddleware.Authenticate(fn)
}

// handleHealthz returns 200 OK if the database is reachable.
func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.pool.Ping(ctx); err != nil {
		slog.Error("database health check failed", "error", err)
		http.Error(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// Ping checks if the database is reachable (used for testing).
func (h *Handler) Ping(ctx context.Context) error {
	return h.pool.Ping(ctx)
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// respondError writes a standard error response.
func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, dto.NewErrorResponse(code, message))
}

// extractPathID extracts and validates a UUID path parameter.
// Returns (id, true) if valid, ("", false) if invalid (error already sent to client).
func extractPathID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.PathValue("id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "id is required")
		return "", false
	}

	if _, err := uuid.Parse(id); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "id must be a valid UUID")
		return "", false
	}

	return id, true
}
