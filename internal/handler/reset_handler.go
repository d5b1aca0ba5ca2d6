package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"tradebook-service/internal/model"
	"tradebook-service/pkg/database"
	"tradebook-service/pkg/logger"
	"tradebook-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ResetOverview returns the weekly reset screen's summary numbers
func ResetOverview(c echo.Context) error {
	log := logger.FromContext(c)

	defer prometheus.TrackDBOperation("query")(time.Now())
	db := database.GetDB()

	var activeTrade *model.Trade
	var active model.Trade
	if result := db.Where("is_active = ?", true).First(&active); result.Error == nil {
		activeTrade = &active
	} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		log.Error("Failed to load active trade", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to load overview"})
	}

	var totalTrades int64
	if err := db.Model(&model.Trade{}).Count(&totalTrades).Error; err != nil {
		log.Error("Failed to count trades", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to load overview"})
	}

	inactiveTrades := totalTrades
	var submissionCount int64
	if activeTrade != nil {
		inactiveTrades--
		if err := db.Model(&model.Submission{}).
			Where("trade_number = ?", activeTrade.TradeNumber).
			Count(&submissionCount).Error; err != nil {
			log.Error("Failed to count submissions", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to load overview"})
		}
	}

	var lastTradeNumber string
	var last model.Trade
	if result := db.Order("created_at DESC").First(&last); result.Error == nil {
		lastTradeNumber = last.TradeNumber
	}

	return c.JSON(http.StatusOK, echo.Map{
		"active_trade":      activeTrade,
		"total_trades":      totalTrades,
		"inactive_trades":   inactiveTrades,
		"submission_count":  submissionCount,
		"last_trade_number": lastTradeNumber,
	})
}

// CloseActiveTrade marks the current active trade inactive
func CloseActiveTrade(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.ResetOperationsCounter.WithLabelValues("close").Inc()

	var active model.Trade
	if result := database.GetDB().Where("is_active = ?", true).First(&active); result.Error != nil {
		log.Warn("No active trade to close")
		return c.JSON(http.StatusNotFound, echo.Map{"error": "No active trade found"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	if err := database.GetDB().Model(&active).Update("is_active", false).Error; err != nil {
		log.Error("Failed to close trade",
			zap.Uint("trade_id", active.ID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to close trade"})
	}

	log.Info("Trade closed",
		zap.Uint("trade_id", active.ID),
		zap.String("trade_number", active.TradeNumber))
	return c.JSON(http.StatusOK, echo.Map{"message": "Trade " + active.TradeNumber + " has been closed"})
}

// CreateNextTrade inserts a new trade as the single active one. Prior active
// trades are deactivated inside the same transaction; creating the next trade
// standalone can never leave two trades active.
func CreateNextTrade(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.ResetOperationsCounter.WithLabelValues("create").Inc()

	var req TradeRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	req.TradeNumber = strings.TrimSpace(req.TradeNumber)
	req.TradeDate = strings.TrimSpace(req.TradeDate)
	if req.TradeNumber == "" || req.TradeDate == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "trade_number and trade_date are required"})
	}

	trade := model.Trade{
		TradeNumber: req.TradeNumber,
		TradeDate:   req.TradeDate,
		IsActive:    true,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&trade).Error; err != nil {
			return err
		}
		return activateTradeTx(tx, trade.ID)
	})
	if err != nil {
		log.Error("Failed to create next trade",
			zap.String("trade_number", req.TradeNumber),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create trade"})
	}

	log.Info("Next trade created",
		zap.Uint("trade_id", trade.ID),
		zap.String("trade_number", trade.TradeNumber))
	return c.JSON(http.StatusCreated, trade)
}

// WeeklyReset closes the current trade and creates the next one as a single
// transaction; a failure in either step rolls back both, so the system never
// passes through a zero-active or dual-active state.
func WeeklyReset(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.ResetOperationsCounter.WithLabelValues("full").Inc()

	var req TradeRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	req.TradeNumber = strings.TrimSpace(req.TradeNumber)
	req.TradeDate = strings.TrimSpace(req.TradeDate)
	if req.TradeNumber == "" || req.TradeDate == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "trade_number and trade_date are required"})
	}

	trade := model.Trade{
		TradeNumber: req.TradeNumber,
		TradeDate:   req.TradeDate,
		IsActive:    true,
	}

	var closedNumber string
	defer prometheus.TrackDBOperation("update")(time.Now())
	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		var active model.Trade
		if result := tx.Where("is_active = ?", true).First(&active); result.Error == nil {
			closedNumber = active.TradeNumber
		}
		if err := tx.Create(&trade).Error; err != nil {
			return err
		}
		return activateTradeTx(tx, trade.ID)
	})
	if err != nil {
		log.Error("Weekly reset failed",
			zap.String("trade_number", req.TradeNumber),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to complete weekly reset"})
	}

	log.Info("Weekly reset completed",
		zap.String("closed_trade", closedNumber),
		zap.Uint("new_trade_id", trade.ID),
		zap.String("new_trade_number", trade.TradeNumber))
	return c.JSON(http.StatusOK, echo.Map{
		"message":      "Weekly reset completed successfully",
		"closed_trade": closedNumber,
		"new_trade":    trade,
	})
}
