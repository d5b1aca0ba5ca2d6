package handler

import (
	"errors"
	"net/http"
	"time"

	"tradebook-service/internal/model"
	"tradebook-service/pkg/database"
	"tradebook-service/pkg/logger"
	"tradebook-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Number of recent submissions shown on the dashboard root screen
const recentSubmissionCount = 5

// capRecent returns at most n rows from an already newest-first slice
func capRecent(rows []model.Submission, n int) []model.Submission {
	if len(rows) <= n {
		return rows
	}
	return rows[:n]
}

// DashboardOverview returns the dashboard root screen's numbers: entity
// counts across all four tables, the active trade card, and the most
// recent submissions
func DashboardOverview(c echo.Context) error {
	log := logger.FromContext(c)

	defer prometheus.TrackDBOperation("query")(time.Now())
	db := database.GetDB()

	var totalTrades int64
	if err := db.Model(&model.Trade{}).Count(&totalTrades).Error; err != nil {
		log.Error("Failed to count trades", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to load dashboard"})
	}

	var poolingLocations int64
	if err := db.Model(&model.PoolingSchedule{}).Count(&poolingLocations).Error; err != nil {
		log.Error("Failed to count pooling locations", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to load dashboard"})
	}

	var dropdownOptions int64
	if err := db.Model(&model.DropdownOption{}).Count(&dropdownOptions).Error; err != nil {
		log.Error("Failed to count dropdown options", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to load dashboard"})
	}

	var totalSubmissions int64
	if err := db.Model(&model.Submission{}).Count(&totalSubmissions).Error; err != nil {
		log.Error("Failed to count submissions", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to load dashboard"})
	}

	var activeTrade *model.Trade
	var active model.Trade
	if result := db.Where("is_active = ?", true).First(&active); result.Error == nil {
		activeTrade = &active
	} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		log.Error("Failed to load active trade", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to load dashboard"})
	}

	recent, err := fetchSubmissions()
	if err != nil {
		log.Error("Failed to load recent submissions", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to load dashboard"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"total_trades":       totalTrades,
		"pooling_locations":  poolingLocations,
		"dropdown_options":   dropdownOptions,
		"total_submissions":  totalSubmissions,
		"active_trade":       activeTrade,
		"recent_submissions": capRecent(recent, recentSubmissionCount),
	})
}
