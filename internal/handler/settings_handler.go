package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"tradebook-service/internal/model"
	"tradebook-service/pkg/database"
	"tradebook-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SettingRequest carries the raw value for an admin setting
type SettingRequest struct {
	Value string `json:"value"`
}

// previewOpeningDate renders a YYYY-MM-DD string as a human-readable
// weekday/month/day/year line, or "" when the value does not parse
func previewOpeningDate(value string) string {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return ""
	}
	return t.Format("Monday, January 2, 2006")
}

// GetNextOpeningDate returns the stored opening date and its display preview
func GetNextOpeningDate(c echo.Context) error {
	log := logger.FromContext(c)

	var setting model.AdminSetting
	result := database.GetDB().Where("key = ?", model.SettingNextOpeningDate).First(&setting)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusOK, echo.Map{"key": model.SettingNextOpeningDate, "value": "", "preview": ""})
		}
		log.Error("Failed to load setting", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve setting"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"key":     setting.Key,
		"value":   setting.Value,
		"preview": previewOpeningDate(setting.Value),
	})
}

// UpdateNextOpeningDate upserts the opening date shown on the public form
func UpdateNextOpeningDate(c echo.Context) error {
	log := logger.FromContext(c)

	var req SettingRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	req.Value = strings.TrimSpace(req.Value)
	if req.Value == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "value is required"})
	}

	var setting model.AdminSetting
	result := database.GetDB().Where("key = ?", model.SettingNextOpeningDate).First(&setting)
	if result.Error != nil {
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			log.Error("Failed to load setting", zap.Error(result.Error))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to save setting"})
		}
		setting = model.AdminSetting{Key: model.SettingNextOpeningDate}
	}

	setting.Value = req.Value
	if err := database.GetDB().Save(&setting).Error; err != nil {
		log.Error("Failed to save setting", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to save setting"})
	}

	log.Info("Setting updated",
		zap.String("key", setting.Key),
		zap.String("value", setting.Value))
	return c.JSON(http.StatusOK, echo.Map{
		"key":     setting.Key,
		"value":   setting.Value,
		"preview": previewOpeningDate(setting.Value),
	})
}
