package calculator

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/hawkcalc/internal/measurements"
	"github.com/JaimeStill/hawkcalc/pkg/handlers"
	"github.com/JaimeStill/hawkcalc/pkg/routes"
)

// Handler exposes the classifier and the view-model reducer over HTTP.
type Handler struct {
	logger *slog.Logger
}

// CalculateResponse is the body returned by a successful calculation.
type CalculateResponse struct {
	Score     float64               `json:"score"`
	ScoreText string                `json:"score_text"`
	Category  measurements.Category `json:"category"`
	Label     string                `json:"label"`
	Message   string                `json:"message"`
	State     State                 `json:"state"`
}

// DispatchRequest carries the current view and the action to apply.
type DispatchRequest struct {
	View   *View  `json:"view"`
	Action Action `json:"action"`
}

// NewHandler creates a Handler with a handler-scoped logger.
func NewHandler(logger *slog.Logger) *Handler {
	return &Handler{
		logger: logger.With("handler", "calculator"),
	}
}

// Routes returns the route group for calculator endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/ranges", Handler: h.Ranges},
			{Method: "POST", Pattern: "/calculate", Handler: h.Calculate},
			{Method: "POST", Pattern: "/dispatch", Handler: h.Dispatch},
		},
	}
}

// Ranges returns the accepted range of every measurement field.
func (h *Handler) Ranges(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, measurements.Ranges())
}

// Calculate validates the posted measurements and returns the classification.
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	var in measurements.Inputs
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		handlers.RespondError(w, h.logger, decodeStatus(err), fmt.Errorf("decode inputs: %w", err))
		return
	}

	res, err := measurements.Calculate(in)
	if err != nil {
		handlers.RespondError(w, h.logger, measurements.MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, CalculateResponse{
		Score:     res.Score,
		ScoreText: res.ScoreText(),
		Category:  res.Category,
		Label:     res.Category.Label(),
		Message:   res.Message,
		State:     StateOf(res.Category),
	})
}

// Dispatch applies the posted action to the posted view and returns the next view.
// A missing view starts from the initial view.
func (h *Handler) Dispatch(w http.ResponseWriter, r *http.Request) {
	var req DispatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, decodeStatus(err), fmt.Errorf("decode dispatch: %w", err))
		return
	}

	if err := req.Action.Validate(); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	view := Initial()
	if req.View != nil {
		view = *req.View
	}

	handlers.RespondJSON(w, http.StatusOK, Reduce(view, req.Action))
}

func decodeStatus(err error) int {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}
