package handler

import (
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

// TradeRequest defines the structure for trade creation/update requests
type TradeRequest struct {
	TradeNumber string `json:"trade_number"`
	TradeDate   string `json:"trade_date"`
	IsActive    bool   `json:"is_active"`
}

// activateTradeTx makes tradeID the only active trade and points every
// pooling schedule row at it. Runs inside the caller's transaction so the
// single-active invariant cannot be observed half-applied.
func activateTradeTx(tx *gorm.DB, tradeID uint) error {
	if err := tx.Model(&model.Trade{}).
		Where("is_active = ? AND id <> ?", true, tradeID).
		Update("is_active", false).Error; err != nil {
		return err
	}

	result := tx.Model(&model.Trade{}).Where("id = ?", tradeID).Update("is_active", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	// Pooling schedule always follows the active trade
	return tx.Model(&model.PoolingSchedule{}).
		Where("trade_id <> ?", tradeID).
		Update("trade_id", tradeID).Error
}

// ListTrades handles retrieving all trades, newest first
func ListTrades(c echo.Context) error {
	log := logger.FromContext(c)

	defer prometheus.TrackDBOperation("query")(time.Now())
	var trades []model.Trade
	result := database.GetDB().Order("created_at DESC").Find(&trades)
	if result.Error != nil {
		log.Error("Failed to list trades", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve trades"})
	}

	return c.JSON(http.StatusOK, trades)
}

// CreateTrade handles creating a new trade
func CreateTrade(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.TradeOperationsCounter.WithLabelValues("create").Inc()

	var req TradeRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	req.TradeNumber = strings.TrimSpace(req.TradeNumber)
	req.TradeDate = strings.TrimSpace(req.TradeDate)
	if req.TradeNumber == "" || req.TradeDate == "" {
		log.Warn("Missing trade fields")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "trade_number and trade_date are required"})
	}

	trade := model.Trade{
		TradeNumber: req.TradeNumber,
		TradeDate:   req.TradeDate,
		IsActive:    req.IsActive,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&trade).Error; err != nil {
			return err
		}
		if trade.IsActive {
			return activateTradeTx(tx, trade.ID)
		}
		return nil
	})
	if err != nil {
		log.Error("Failed to create trade",
			zap.String("trade_number", req.TradeNumber),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create trade"})
	}

	log.Info("Trade created",
		zap.Uint("trade_id", trade.ID),
		zap.String("trade_number", trade.TradeNumber),
		zap.Bool("is_active", trade.IsActive))
	return c.JSON(http.StatusCreated, trade)
}

// UpdateTrade handles editing an existing trade
func UpdateTrade(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.TradeOperationsCounter.WithLabelValues("update").Inc()
	id := c.Param("id")

	var req TradeRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.String("trade_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	req.TradeNumber = strings.TrimSpace(req.TradeNumber)
	req.TradeDate = strings.TrimSpace(req.TradeDate)
	if req.TradeNumber == "" || req.TradeDate == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "trade_number and trade_date are required"})
	}

	var trade model.Trade
	result := database.GetDB().First(&trade, id)
	if result.Error != nil {
		log.Error("Trade not found for update", zap.String("trade_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Trade not found"})
	}

	trade.TradeNumber = req.TradeNumber
	trade.TradeDate = req.TradeDate
	trade.IsActive = req.IsActive

	defer prometheus.TrackDBOperation("update")(time.Now())
	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&trade).Error; err != nil {
			return err
		}
		if trade.IsActive {
			return activateTradeTx(tx, trade.ID)
		}
		return nil
	})
	if err != nil {
		log.Error("Failed to update trade", zap.String("trade_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update trade"})
	}

	log.Info("Trade updated",
		zap.Uint("trade_id", trade.ID),
		zap.String("trade_number", trade.TradeNumber),
		zap.Bool("is_active", trade.IsActive))
	return c.JSON(http.StatusOK, trade)
}

// ActivateTrade makes the given trade the single active one
func ActivateTrade(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.TradeOperationsCounter.WithLabelValues("activate").Inc()
	id := c.Param("id")

	var trade model.Trade
	result := database.GetDB().First(&trade, id)
	if result.Error != nil {
		log.Error("Trade not found for activation", zap.String("trade_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Trade not found"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		return activateTradeTx(tx, trade.ID)
	})
	if err != nil {
		log.Error("Failed to activate trade", zap.String("trade_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to activate trade"})
	}

	trade.IsActive = true
	log.Info("Trade activated",
		zap.Uint("trade_id", trade.ID),
		zap.String("trade_number", trade.TradeNumber))
	return c.JSON(http.StatusOK, trade)
}

// DeleteTrade handles deleting a trade (hard delete)
func DeleteTrade(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.TradeOperationsCounter.WithLabelValues("delete").Inc()
	id := c.Param("id")

	defer prometheus.TrackDBOperation("delete")(time.Now())
	result := database.GetDB().Delete(&model.Trade{}, id)
	if result.Error != nil {
		log.Error("Failed to delete trade", zap.String("trade_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete trade"})
	}
	if result.RowsAffected == 0 {
		log.Warn("Trade not found for deletion", zap.String("trade_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Trade not found"})
	}

	log.Info("Trade deleted", zap.String("trade_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Trade deleted successfully"})
}
