package handler

import (
	"net/http"

	"github.com/oggyb/zenvia-sms/internal/response"
)

// HomeHandler serves the root and health endpoints.
type HomeHandler struct{}

// NewHomeHandler returns a new HomeHandler.
func NewHomeHandler() *HomeHandler { return &HomeHandler{} }

// Index godoc
// @Summary     Welcome endpoint
// @Description Simple root endpoint that returns a welcome message.
// @Tags        home
// @Produce     json
// @Success     200 {object} response.WelcomeResponse
// @Router      / [get]
func (h *HomeHandler) Index(w http.ResponseWriter, r *http.Request) {
	response.RespondJSON(w, http.StatusOK, response.WelcomePayload{
		Message: "Zenvia SMS relay",
	})
}

// Health godoc
// @Summary     Health check
// @Description Returns a basic status payload to indicate the relay is running.
// @Tags        home
// @Produce     json
// @Success     200 {object} response.HealthResponse
// @Router      /health [get]
func (h *HomeHandler) Health(w http.ResponseWriter, r *http.Request) {
	response.RespondJSON(w, http.StatusOK, response.HealthPayload{Status: "ok"})
}
