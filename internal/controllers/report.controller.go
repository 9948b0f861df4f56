package controllers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"healthrecord/internal/services"
)

// multipartOverhead leaves room for boundaries and part headers on top of
// the file itself.
const multipartOverhead = 1 << 20

type ReportController struct {
	reports    *services.ReportService
	production bool
}

func NewReportController(reports *services.ReportService, production bool) *ReportController {
	return &ReportController{reports: reports, production: production}
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"message": message,
	})
}

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr) || strings.Contains(err.Error(), "request body too large")
}

// UploadReport godoc
// @Summary Upload a medical report
// @Description Analyze, store and record a PDF, PNG or JPEG file of at most 5MB
// @Tags report
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Report file"
// @Success 200 {object} map[string]interface{} "Report uploaded successfully"
// @Failure 400 {object} map[string]interface{} "Missing, oversized, unsupported or unreadable file"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 500 {object} map[string]interface{} "Storage or database failure"
// @Router /report/upload [post]
func (rc *ReportController) UploadReport(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, services.MaxUploadBytes+multipartOverhead)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		if isBodyTooLarge(err) {
			badRequest(c, "File size exceeds 5MB limit")
			return
		}
		badRequest(c, "File is required")
		return
	}
	if fileHeader.Size > services.MaxUploadBytes {
		badRequest(c, "File size exceeds 5MB limit")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		badRequest(c, "File is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, services.MaxUploadBytes+1))
	if err != nil {
		badRequest(c, "File is required")
		return
	}

	report, err := rc.reports.Ingest(c.Request.Context(), services.IngestInput{
		UserID:   userID,
		Data:     data,
		MimeType: services.ResolveMimeType(fileHeader.Header.Get("Content-Type"), data),
		Filename: fileHeader.Filename,
	})
	if err != nil {
		respondError(c, err, rc.production)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Report uploaded successfully",
		"report":  report,
	})
}

// MyReports godoc
// @Summary List my reports
// @Description Newest first
// @Tags report
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Reports"
// @Failure 500 {object} map[string]interface{} "Failed to fetch reports"
// @Router /report/myreports [get]
func (rc *ReportController) MyReports(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	reports, err := rc.reports.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, rc.production)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"reports": reports,
	})
}

// Insights godoc
// @Summary Condensed explanations of my reports
// @Tags report
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Insights fetched successfully"
// @Failure 500 {object} map[string]interface{} "Server error while fetching insights"
// @Router /report/insights [get]
func (rc *ReportController) Insights(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	insights, err := rc.reports.Insights(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, rc.production)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Insights fetched successfully",
		"insights": insights,
	})
}

// GetReport godoc
// @Summary Get one of my reports
// @Tags report
// @Produce json
// @Security BearerAuth
// @Param id path int true "Report ID"
// @Success 200 {object} map[string]interface{} "Report"
// @Failure 400 {object} map[string]interface{} "Invalid report ID"
// @Failure 404 {object} map[string]interface{} "Report not found"
// @Router /report/{id} [get]
func (rc *ReportController) GetReport(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	reportID, ok := parseIDParam(c, "id", "Invalid report ID")
	if !ok {
		return
	}

	report, err := rc.reports.Get(c.Request.Context(), reportID, userID)
	if err != nil {
		respondError(c, err, rc.production)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"report":  report,
	})
}

// DeleteReport godoc
// @Summary Delete one of my reports
// @Description Removes the stored file and the record; the record is removed even if the file cannot be
// @Tags report
// @Produce json
// @Security BearerAuth
// @Param id path int true "Report ID"
// @Success 200 {object} map[string]interface{} "Report deleted successfully"
// @Failure 400 {object} map[string]interface{} "Invalid report ID"
// @Failure 404 {object} map[string]interface{} "Report not found"
// @Failure 500 {object} map[string]interface{} "Error while deleting report"
// @Router /report/{id} [delete]
func (rc *ReportController) DeleteReport(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	reportID, ok := parseIDParam(c, "id", "Invalid report ID")
	if !ok {
		return
	}

	result, err := rc.reports.Delete(c.Request.Context(), reportID, userID)
	if err != nil {
		respondError(c, err, rc.production)
		return
	}

	message := "Report deleted successfully"
	if !result.ObjectRemoved {
		message = "Report deleted, but its stored file could not be removed"
	}
	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"message":        message,
		"object_removed": result.ObjectRemoved,
	})
}
