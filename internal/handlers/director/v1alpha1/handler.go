// Package v1alpha1 serves the director session over HTTP
package v1alpha1

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/KirkDiggler/rpg-director/internal/entities"
	"github.com/KirkDiggler/rpg-director/internal/errors"
	"github.com/KirkDiggler/rpg-director/internal/orchestrators/saves"
	"github.com/KirkDiggler/rpg-director/internal/orchestrators/turn"
)

// MaxDocumentBytes bounds an imported save document. Documents carry
// base64 portraits and scenes, so they can be large.
const MaxDocumentBytes = 64 << 20

const retryAfterSeconds = "5"

// HandlerConfig holds dependencies for the handler
type HandlerConfig struct {
	GameService  turn.Service
	SavesService saves.Service
	// Gatherer serves /metrics. Defaults to prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.GameService == nil {
		vb.RequiredField("GameService")
	}
	if c.SavesService == nil {
		vb.RequiredField("SavesService")
	}

	return vb.Build()
}

// Handler implements the director HTTP API
type Handler struct {
	gameService  turn.Service
	savesService saves.Service
	gatherer     prometheus.Gatherer
}

// NewHandler creates a new handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	gatherer := cfg.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	return &Handler{
		gameService:  cfg.GameService,
		savesService: cfg.SavesService,
		gatherer:     gatherer,
	}, nil
}

// NewEngine builds a gin engine with recovery, request logging and every
// route registered
func (h *Handler) NewEngine() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger())
	h.Register(r)
	return r
}

// Register adds the routes to r
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/healthz", h.Health)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{})))

	v1 := r.Group("/v1")
	v1.GET("/state", h.GetState)
	v1.POST("/actions", h.SubmitAction)
	v1.POST("/onboarding", h.CompleteOnboarding)
	v1.PATCH("/settings", h.UpdateSettings)
	v1.POST("/restart", h.Restart)

	v1.GET("/saves", h.ListSaves)
	v1.POST("/saves", h.SaveGame)
	v1.POST("/saves/:id/load", h.LoadGame)
	v1.DELETE("/saves/:id", h.DeleteSave)

	v1.GET("/export", h.Export)
	v1.POST("/import", h.Import)
}

// Health reports liveness
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetState returns the current snapshot
func (h *Handler) GetState(c *gin.Context) {
	out, err := h.gameService.GetSnapshot(c.Request.Context(), &turn.GetSnapshotInput{})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, convertState(out.State))
}

// SubmitAction runs one turn and returns the committed state
func (h *Handler) SubmitAction(c *gin.Context) {
	var req ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, errors.InvalidArgumentf("invalid request body: %v", err))
		return
	}

	out, err := h.gameService.SubmitPlayerAction(c.Request.Context(), &turn.SubmitPlayerActionInput{
		Text: req.Text,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, convertState(out.State))
}

// CompleteOnboarding installs the setup result and runs the opening turn
func (h *Handler) CompleteOnboarding(c *gin.Context) {
	var req OnboardingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, errors.InvalidArgumentf("invalid request body: %v", err))
		return
	}

	out, err := h.gameService.CompleteOnboarding(c.Request.Context(), &turn.CompleteOnboardingInput{
		Character:     req.Character,
		World:         req.World,
		OpeningPrompt: req.OpeningPrompt,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, convertState(out.State))
}

// UpdateSettings merges a partial settings object
func (h *Handler) UpdateSettings(c *gin.Context) {
	var patch entities.SettingsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		writeError(c, errors.InvalidArgumentf("invalid request body: %v", err))
		return
	}

	out, err := h.gameService.UpdateSettings(c.Request.Context(), &turn.UpdateSettingsInput{Patch: patch})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, SettingsResponse{Settings: out.Settings})
}

// Restart resets the session
func (h *Handler) Restart(c *gin.Context) {
	out, err := h.gameService.Restart(c.Request.Context(), &turn.RestartInput{})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, convertState(out.State))
}

// ListSaves lists save slots
func (h *Handler) ListSaves(c *gin.Context) {
	out, err := h.savesService.ListSaves(c.Request.Context(), &saves.ListSavesInput{})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, ListSavesResponse{Saves: convertSummaries(out.Summaries)})
}

// SaveGame writes the session to a slot. The body is optional.
func (h *Handler) SaveGame(c *gin.Context) {
	var req SaveRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, errors.InvalidArgumentf("invalid request body: %v", err))
			return
		}
	}

	out, err := h.savesService.SaveGame(c.Request.Context(), &saves.SaveGameInput{SlotID: req.SlotID})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, convertSummary(out.Summary))
}

// LoadGame restores a slot
func (h *Handler) LoadGame(c *gin.Context) {
	out, err := h.savesService.LoadGame(c.Request.Context(), &saves.LoadGameInput{SlotID: c.Param("id")})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, LoadResponse{
		Save:  convertSummary(out.Summary),
		State: convertState(out.State),
	})
}

// DeleteSave removes a slot
func (h *Handler) DeleteSave(c *gin.Context) {
	if _, err := h.savesService.DeleteSave(c.Request.Context(), &saves.DeleteSaveInput{SlotID: c.Param("id")}); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Export downloads the session as a save document
func (h *Handler) Export(c *gin.Context) {
	out, err := h.savesService.ExportDocument(c.Request.Context(), &saves.ExportDocumentInput{})
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+out.FileName+`"`)
	c.Data(http.StatusOK, "application/json", out.Document)
}

// Import replaces the session with the request body
func (h *Handler) Import(c *gin.Context) {
	doc, err := io.ReadAll(io.LimitReader(c.Request.Body, MaxDocumentBytes+1))
	if err != nil {
		writeError(c, errors.InvalidArgumentf("failed to read document: %v", err))
		return
	}
	if len(doc) > MaxDocumentBytes {
		writeError(c, errors.InvalidArgument("document is too large"))
		return
	}

	out, err := h.savesService.ImportDocument(c.Request.Context(), &saves.ImportDocumentInput{Document: doc})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, convertState(out.State))
}

func writeError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	status := code.HTTPStatus()

	if status >= http.StatusInternalServerError {
		slog.Error("Request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", err,
		)
	}

	if code.Retryable() {
		c.Header("Retry-After", retryAfterSeconds)
	}

	resp := ErrorResponse{
		Code:    code.String(),
		Message: err.Error(),
	}
	if fields, ok := errors.GetMeta(err)["validation_errors"].(map[string][]string); ok {
		resp.Fields = fields
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(status, resp)
}

// RequestLogger logs each request with slog. Health and metrics scrapes are
// not logged.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		if path == "/healthz" || path == "/metrics" {
			c.Next()
			return
		}

		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header("X-Request-ID", requestID)

		c.Next()

		attrs := []any{
			"status", c.Writer.Status(),
			"method", c.Request.Method,
			"path", path,
			"latency", time.Since(start),
			"request_id", requestID,
		}

		status := c.Writer.Status()
		switch {
		case status >= http.StatusInternalServerError:
			slog.Error("Server error", attrs...)
		case status >= http.StatusBadRequest:
			slog.Warn("Client error", attrs...)
		default:
			slog.Info("Request completed", attrs...)
		}
	}
}
