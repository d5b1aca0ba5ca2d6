package handler

import (
	"net/http"
	"strings"
	"time"

	"tradebook-service/internal/model"
	"tradebook-service/pkg/database"
	"tradebook-service/pkg/export"
	"tradebook-service/pkg/logger"
	"tradebook-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// SubmissionRequest is the payload of the public intake form
type SubmissionRequest struct {
	Name              string `json:"name"`
	PhoneNumber       string `json:"phone_number"`
	Details           string `json:"details"`
	Weight            string `json:"weight"`
	Type              string `json:"type"`
	Depot             string `json:"depot"`
	DeviceFingerprint string `json:"device_fingerprint"`
}

func submissionQueryFromContext(c echo.Context) SubmissionQuery {
	return SubmissionQuery{
		Search:      c.QueryParam("q"),
		TradeNumber: c.QueryParam("trade_number"),
		Depot:       c.QueryParam("depot"),
		Type:        c.QueryParam("type"),
		Details:     c.QueryParam("details"),
		Unique:      c.QueryParam("unique"),
	}
}

// fetchSubmissions loads every submission newest-first; filtering happens in
// memory, mirroring the original screen's behavior over a small table
func fetchSubmissions() ([]model.Submission, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var rows []model.Submission
	result := database.GetDB().Order("submitted_at DESC").Find(&rows)
	return rows, result.Error
}

// ListSubmissions returns the filtered rows plus the screen's aggregates:
// counts, total weight, and duplicate-device tags
func ListSubmissions(c echo.Context) error {
	log := logger.FromContext(c)

	rows, err := fetchSubmissions()
	if err != nil {
		log.Error("Failed to list submissions", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve submissions"})
	}

	query := submissionQueryFromContext(c)
	filtered := FilterSubmissions(rows, query)

	return c.JSON(http.StatusOK, echo.Map{
		"submissions":    filtered,
		"total":          len(rows),
		"filtered":       len(filtered),
		"total_weight":   TotalWeight(filtered),
		"duplicate_tags": DuplicateTags(filtered),
	})
}

// csvProjection is the fixed export column set
var csvProjection = []string{"Name", "Phone", "Details", "Weight", "Type", "Depot", "Trade Number", "Submitted At"}

func csvRow(sub model.Submission) []string {
	tradeNumber := sub.TradeNumber
	if tradeNumber == "" {
		tradeNumber = "N/A"
	}
	return []string{
		sub.Name,
		sub.PhoneNumber,
		sub.Details,
		sub.Weight,
		sub.Type,
		sub.Depot,
		tradeNumber,
		sub.SubmittedAt.Format("2 Jan 2006, 3:04 PM"),
	}
}

func exportFileName(extension string) string {
	return "submissions_" + time.Now().Format("2006-01-02") + "." + extension
}

// ExportSubmissionsCSV exports the currently filtered set as a CSV download
func ExportSubmissionsCSV(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.SubmissionExportCounter.WithLabelValues("csv").Inc()

	rows, err := fetchSubmissions()
	if err != nil {
		log.Error("Failed to load submissions for export", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve submissions"})
	}

	filtered := FilterSubmissions(rows, submissionQueryFromContext(c))
	if len(filtered) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "No data to export"})
	}

	records := make([][]string, len(filtered))
	for i, sub := range filtered {
		records[i] = csvRow(sub)
	}

	log.Info("Submissions exported", zap.String("format", "csv"), zap.Int("count", len(filtered)))
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+exportFileName("csv")+`"`)
	return c.Blob(http.StatusOK, "text/csv", []byte(export.CSV(csvProjection, records)))
}

// ExportSubmissionsJSON exports the currently filtered set as pretty-printed JSON
func ExportSubmissionsJSON(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.SubmissionExportCounter.WithLabelValues("json").Inc()

	rows, err := fetchSubmissions()
	if err != nil {
		log.Error("Failed to load submissions for export", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve submissions"})
	}

	filtered := FilterSubmissions(rows, submissionQueryFromContext(c))
	if len(filtered) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "No data to export"})
	}

	body, err := export.JSONPretty(filtered)
	if err != nil {
		log.Error("Failed to encode submissions", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to export submissions"})
	}

	log.Info("Submissions exported", zap.String("format", "json"), zap.Int("count", len(filtered)))
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+exportFileName("json")+`"`)
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, []byte(body))
}

// ExportSubmissionsClipboard renders the filtered set as pipe-delimited text
// for clipboard copies
func ExportSubmissionsClipboard(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.SubmissionExportCounter.WithLabelValues("clipboard").Inc()

	rows, err := fetchSubmissions()
	if err != nil {
		log.Error("Failed to load submissions for export", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve submissions"})
	}

	filtered := FilterSubmissions(rows, submissionQueryFromContext(c))
	if len(filtered) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "No data to copy"})
	}

	records := make([][]string, len(filtered))
	for i, sub := range filtered {
		records[i] = []string{sub.Name, sub.PhoneNumber, sub.Details, sub.Weight + "kg", sub.Type, sub.Depot}
	}

	log.Info("Submissions exported", zap.String("format", "clipboard"), zap.Int("count", len(filtered)))
	return c.String(http.StatusOK, export.PipeDelimited(records))
}

// CreateSubmission is the unauthenticated intake endpoint used by the public
// booking form. Rows are immutable once created; the admin surface only
// reads them.
func CreateSubmission(c echo.Context) error {
	log := logger.FromContext(c)

	var req SubmissionRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	req.Name = strings.TrimSpace(req.Name)
	req.PhoneNumber = strings.TrimSpace(req.PhoneNumber)
	if req.Name == "" || req.PhoneNumber == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and phone_number are required"})
	}

	// Bookings are only open while a trade is active
	var active model.Trade
	if result := database.GetDB().Where("is_active = ?", true).First(&active); result.Error != nil {
		log.Warn("Submission rejected, no active trade")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bookings are currently closed"})
	}

	submission := model.Submission{
		TradeNumber:       active.TradeNumber,
		Name:              req.Name,
		PhoneNumber:       req.PhoneNumber,
		Details:           req.Details,
		Weight:            strings.TrimSpace(req.Weight),
		Type:              req.Type,
		Depot:             req.Depot,
		DeviceFingerprint: req.DeviceFingerprint,
		SubmittedAt:       time.Now(),
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if result := database.GetDB().Create(&submission); result.Error != nil {
		log.Error("Failed to create submission", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to save booking"})
	}

	log.Info("Submission created",
		zap.Uint("submission_id", submission.ID),
		zap.String("trade_number", submission.TradeNumber))
	return c.JSON(http.StatusCreated, submission)
}
