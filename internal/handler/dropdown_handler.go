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

// DropdownRequest defines the structure for dropdown option create/update requests
type DropdownRequest struct {
	Category string `json:"category"`
	Label    string `json:"label"`
}

// DropdownReorderRequest lists a category's visible option IDs in desired order
type DropdownReorderRequest struct {
	Category string `json:"category"`
	IDs      []uint `json:"ids"`
}

// applyOptionOrder returns the category's visible options rearranged to match
// ids, with contiguous order indices 0..n-1. ids must cover exactly the
// given options.
func applyOptionOrder(options []model.DropdownOption, ids []uint) ([]model.DropdownOption, error) {
	if len(ids) != len(options) {
		return nil, reorderError{fmt.Sprintf("expected %d ids, got %d", len(options), len(ids))}
	}

	byID := make(map[uint]model.DropdownOption, len(options))
	for _, opt := range options {
		byID[opt.ID] = opt
	}

	ordered := make([]model.DropdownOption, 0, len(ids))
	seen := make(map[uint]bool, len(ids))
	for position, id := range ids {
		opt, ok := byID[id]
		if !ok {
			return nil, reorderError{fmt.Sprintf("unknown dropdown option id %d", id)}
		}
		if seen[id] {
			return nil, reorderError{fmt.Sprintf("duplicate dropdown option id %d", id)}
		}
		seen[id] = true
		opt.OrderIndex = position
		ordered = append(ordered, opt)
	}
	return ordered, nil
}

// ListDropdowns handles retrieving visible options, optionally for one category
func ListDropdowns(c echo.Context) error {
	log := logger.FromContext(c)

	query := database.GetDB().Where("is_active = ?", true).Order("category ASC, order_index ASC")
	if category := c.QueryParam("category"); category != "" {
		if !model.ValidCategory(category) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown category"})
		}
		query = query.Where("category = ?", category)
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var options []model.DropdownOption
	result := query.Find(&options)
	if result.Error != nil {
		log.Error("Failed to list dropdown options", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve options"})
	}

	return c.JSON(http.StatusOK, options)
}

// CreateDropdown handles adding a new option at the end of its category
func CreateDropdown(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.DropdownOperationsCounter.WithLabelValues("create").Inc()

	var req DropdownRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	req.Label = strings.TrimSpace(req.Label)
	if !model.ValidCategory(req.Category) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown category"})
	}
	if req.Label == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "label is required"})
	}

	option := model.DropdownOption{
		Category: req.Category,
		Label:    req.Label,
		IsActive: true,
	}

	// Computing max+1 inside the insert transaction keeps concurrent adds
	// from claiming the same index
	defer prometheus.TrackDBOperation("insert")(time.Now())
	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		var next int
		if err := tx.Model(&model.DropdownOption{}).
			Where("category = ?", req.Category).
			Select("COALESCE(MAX(order_index), -1) + 1").Scan(&next).Error; err != nil {
			return err
		}
		option.OrderIndex = next
		return tx.Create(&option).Error
	})
	if err != nil {
		log.Error("Failed to create dropdown option",
			zap.String("category", req.Category),
			zap.String("label", req.Label),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to add option"})
	}

	log.Info("Dropdown option created",
		zap.Uint("option_id", option.ID),
		zap.String("category", option.Category),
		zap.String("label", option.Label),
		zap.Int("order_index", option.OrderIndex))
	return c.JSON(http.StatusCreated, option)
}

// UpdateDropdown handles relabeling an option
func UpdateDropdown(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.DropdownOperationsCounter.WithLabelValues("update").Inc()
	id := c.Param("id")

	var req DropdownRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.String("option_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	req.Label = strings.TrimSpace(req.Label)
	if req.Label == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "label is required"})
	}

	var option model.DropdownOption
	result := database.GetDB().First(&option, id)
	if result.Error != nil {
		log.Error("Dropdown option not found for update", zap.String("option_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Option not found"})
	}

	option.Label = req.Label

	defer prometheus.TrackDBOperation("update")(time.Now())
	if result := database.GetDB().Save(&option); result.Error != nil {
		log.Error("Failed to update dropdown option", zap.String("option_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update option"})
	}

	log.Info("Dropdown option updated",
		zap.Uint("option_id", option.ID),
		zap.String("label", option.Label))
	return c.JSON(http.StatusOK, option)
}

// DeleteDropdown soft-deletes an option; history is retained and the option
// simply leaves the visible list
func DeleteDropdown(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.DropdownOperationsCounter.WithLabelValues("delete").Inc()
	id := c.Param("id")

	defer prometheus.TrackDBOperation("update")(time.Now())
	result := database.GetDB().Model(&model.DropdownOption{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	if result.Error != nil {
		log.Error("Failed to delete dropdown option", zap.String("option_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete option"})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Option not found"})
	}

	log.Info("Dropdown option deactivated", zap.String("option_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Option deleted successfully"})
}

// ReorderDropdowns persists a new display order for one category's visible
// options, reassigning contiguous indices 0..n-1 in a single transaction
func ReorderDropdowns(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.DropdownOperationsCounter.WithLabelValues("reorder").Inc()

	var req DropdownReorderRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if !model.ValidCategory(req.Category) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown category"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	var ordered []model.DropdownOption
	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		var options []model.DropdownOption
		if err := tx.Where("category = ? AND is_active = ?", req.Category, true).
			Find(&options).Error; err != nil {
			return err
		}

		var orderErr error
		ordered, orderErr = applyOptionOrder(options, req.IDs)
		if orderErr != nil {
			return orderErr
		}

		for _, opt := range ordered {
			if err := tx.Model(&model.DropdownOption{}).
				Where("id = ?", opt.ID).
				Update("order_index", opt.OrderIndex).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		var badOrder reorderError
		if errors.As(err, &badOrder) {
			log.Warn("Rejected dropdown reorder payload",
				zap.String("category", req.Category),
				zap.String("reason", badOrder.Error()))
			return c.JSON(http.StatusBadRequest, echo.Map{"error": badOrder.Error()})
		}
		log.Error("Failed to reorder dropdown options",
			zap.String("category", req.Category),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update order"})
	}

	log.Info("Dropdown options reordered",
		zap.String("category", req.Category),
		zap.Int("count", len(ordered)))
	return c.JSON(http.StatusOK, ordered)
}
