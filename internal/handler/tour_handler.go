package handler

import (
	"net/http"

	"tradebook-service/internal/middleware"
	"tradebook-service/internal/tour"
	"tradebook-service/pkg/logger"
	"tradebook-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// TourHandler exposes the guided tour state machine. The manager is injected
// explicitly rather than looked up from a process-wide singleton.
type TourHandler struct {
	Manager *tour.Manager
}

// NewTourHandler wires the handler to a tour manager
func NewTourHandler(manager *tour.Manager) *TourHandler {
	return &TourHandler{Manager: manager}
}

func (h *TourHandler) userID(c echo.Context) (uint, bool) {
	return middleware.UserIDFromContext(c)
}

// Steps returns the full walkthrough step table
func (h *TourHandler) Steps(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Manager.Steps())
}

// State returns the caller's current tour snapshot
func (h *TourHandler) State(c echo.Context) error {
	userID, ok := h.userID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "not authenticated"})
	}
	return c.JSON(http.StatusOK, h.Manager.StateFor(userID))
}

// Start begins the tour at step 0
func (h *TourHandler) Start(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.TourActionsCounter.WithLabelValues("start").Inc()

	userID, ok := h.userID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "not authenticated"})
	}

	state := h.Manager.Start(userID)
	log.Info("Tour started", zap.Uint("user_id", userID))
	return c.JSON(http.StatusOK, state)
}

// Next advances the tour one step, ending it past the last step
func (h *TourHandler) Next(c echo.Context) error {
	prometheus.TourActionsCounter.WithLabelValues("next").Inc()

	userID, ok := h.userID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "not authenticated"})
	}
	return c.JSON(http.StatusOK, h.Manager.Next(userID))
}

// Prev steps the tour back, clamping at step 0
func (h *TourHandler) Prev(c echo.Context) error {
	prometheus.TourActionsCounter.WithLabelValues("prev").Inc()

	userID, ok := h.userID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "not authenticated"})
	}
	return c.JSON(http.StatusOK, h.Manager.Prev(userID))
}

// Stop ends the tour wherever it is
func (h *TourHandler) Stop(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.TourActionsCounter.WithLabelValues("stop").Inc()

	userID, ok := h.userID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "not authenticated"})
	}

	state := h.Manager.Stop(userID)
	log.Info("Tour stopped", zap.Uint("user_id", userID))
	return c.JSON(http.StatusOK, state)
}
