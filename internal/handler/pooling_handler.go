package handler

import (
	"errors"
	"fmt"
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

// PoolingRequest defines the structure for pooling schedule create/update requests
type PoolingRequest struct {
	TradeID     uint   `json:"trade_id"`
	Location    string `json:"location"`
	PoolingDate string `json:"pooling_date"`
}

// ReorderRequest carries row IDs in their desired display order
type ReorderRequest struct {
	IDs []uint `json:"ids"`
}

// reorderError marks a reorder payload that fails validation, so the
// handlers can map it to 400 while storage failures stay 500
type reorderError struct {
	reason string
}

func (e reorderError) Error() string {
	return e.reason
}

// applyPoolingOrder returns rows rearranged to match ids, with contiguous
// order indices 0..n-1. ids must be exactly the IDs of rows, no more, no
// fewer, no duplicates.
func applyPoolingOrder(rows []model.PoolingSchedule, ids []uint) ([]model.PoolingSchedule, error) {
	if len(ids) != len(rows) {
		return nil, reorderError{fmt.Sprintf("expected %d ids, got %d", len(rows), len(ids))}
	}

	byID := make(map[uint]model.PoolingSchedule, len(rows))
	for _, row := range rows {
		byID[row.ID] = row
	}

	ordered := make([]model.PoolingSchedule, 0, len(ids))
	seen := make(map[uint]bool, len(ids))
	for position, id := range ids {
		row, ok := byID[id]
		if !ok {
			return nil, reorderError{fmt.Sprintf("unknown pooling schedule id %d", id)}
		}
		if seen[id] {
			return nil, reorderError{fmt.Sprintf("duplicate pooling schedule id %d", id)}
		}
		seen[id] = true
		row.OrderIndex = position
		ordered = append(ordered, row)
	}
	return ordered, nil
}

// ListPooling handles retrieving the pooling schedule in display order,
// optionally scoped to a trade
func ListPooling(c echo.Context) error {
	log := logger.FromContext(c)

	query := database.GetDB().Order("order_index ASC")
	if tradeID := c.QueryParam("trade_id"); tradeID != "" {
		query = query.Where("trade_id = ?", tradeID)
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var rows []model.PoolingSchedule
	result := query.Find(&rows)
	if result.Error != nil {
		log.Error("Failed to list pooling schedule", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve pooling schedule"})
	}

	return c.JSON(http.StatusOK, rows)
}

// CreatePooling handles adding a pooling schedule row
func CreatePooling(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.PoolingOperationsCounter.WithLabelValues("create").Inc()

	var req PoolingRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	req.Location = strings.TrimSpace(req.Location)
	req.PoolingDate = strings.TrimSpace(req.PoolingDate)
	if req.Location == "" || req.PoolingDate == "" {
		log.Warn("Missing pooling fields")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "location and pooling_date are required"})
	}

	row := model.PoolingSchedule{
		TradeID:     req.TradeID,
		Location:    req.Location,
		PoolingDate: req.PoolingDate,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		// New rows go to the end of the list; default the trade to the
		// active one when the client did not pick a trade
		if row.TradeID == 0 {
			var active model.Trade
			if err := tx.Where("is_active = ?", true).First(&active).Error; err == nil {
				row.TradeID = active.ID
			}
		}
		var next int
		if err := tx.Model(&model.PoolingSchedule{}).
			Select("COALESCE(MAX(order_index), -1) + 1").Scan(&next).Error; err != nil {
			return err
		}
		row.OrderIndex = next
		return tx.Create(&row).Error
	})
	if err != nil {
		log.Error("Failed to create pooling schedule row",
			zap.String("location", req.Location),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to add location"})
	}

	log.Info("Pooling schedule row created",
		zap.Uint("pooling_id", row.ID),
		zap.String("location", row.Location),
		zap.Int("order_index", row.OrderIndex))
	return c.JSON(http.StatusCreated, row)
}

// UpdatePooling handles inline edits to a pooling schedule row
func UpdatePooling(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.PoolingOperationsCounter.WithLabelValues("update").Inc()
	id := c.Param("id")

	var req PoolingRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.String("pooling_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	req.Location = strings.TrimSpace(req.Location)
	req.PoolingDate = strings.TrimSpace(req.PoolingDate)
	if req.Location == "" || req.PoolingDate == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "location and pooling_date are required"})
	}

	var row model.PoolingSchedule
	result := database.GetDB().First(&row, id)
	if result.Error != nil {
		log.Error("Pooling row not found for update", zap.String("pooling_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Location not found"})
	}

	row.Location = req.Location
	row.PoolingDate = req.PoolingDate
	if req.TradeID != 0 {
		row.TradeID = req.TradeID
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	if result := database.GetDB().Save(&row); result.Error != nil {
		log.Error("Failed to update pooling row", zap.String("pooling_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update location"})
	}

	log.Info("Pooling schedule row updated",
		zap.Uint("pooling_id", row.ID),
		zap.String("location", row.Location))
	return c.JSON(http.StatusOK, row)
}

// DeletePooling handles removing a pooling schedule row
func DeletePooling(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.PoolingOperationsCounter.WithLabelValues("delete").Inc()
	id := c.Param("id")

	defer prometheus.TrackDBOperation("delete")(time.Now())
	result := database.GetDB().Delete(&model.PoolingSchedule{}, id)
	if result.Error != nil {
		log.Error("Failed to delete pooling row", zap.String("pooling_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete location"})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Location not found"})
	}

	log.Info("Pooling schedule row deleted", zap.String("pooling_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Location deleted successfully"})
}

// ReorderPooling persists a new display order for the whole schedule. The
// body lists every row ID in the desired order; rows get contiguous indices
// 0..n-1 in a single transaction.
func ReorderPooling(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.PoolingOperationsCounter.WithLabelValues("reorder").Inc()

	var req ReorderRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	var ordered []model.PoolingSchedule
	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		var rows []model.PoolingSchedule
		if err := tx.Find(&rows).Error; err != nil {
			return err
		}

		var orderErr error
		ordered, orderErr = applyPoolingOrder(rows, req.IDs)
		if orderErr != nil {
			return orderErr
		}

		for _, row := range ordered {
			if err := tx.Model(&model.PoolingSchedule{}).
				Where("id = ?", row.ID).
				Update("order_index", row.OrderIndex).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		var badOrder reorderError
		if errors.As(err, &badOrder) {
			log.Warn("Rejected pooling reorder payload", zap.String("reason", badOrder.Error()))
			return c.JSON(http.StatusBadRequest, echo.Map{"error": badOrder.Error()})
		}
		log.Error("Failed to reorder pooling schedule", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update order"})
	}

	log.Info("Pooling schedule reordered", zap.Int("count", len(ordered)))
	return c.JSON(http.StatusOK, ordered)
}
