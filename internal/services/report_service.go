package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"healthrecord/internal/analyzer"
	"healthrecord/internal/apperrors"
	"healthrecord/internal/models"
	"healthrecord/internal/repository"
	"healthrecord/internal/storage"
)

const (
	MaxUploadBytes = 5 << 20

	MimePDF  = "application/pdf"
	MimePNG  = "image/png"
	MimeJPEG = "image/jpeg"

	DefaultReportTitle = "Untitled Report"
	dateLayout         = "2006-01-02"
)

var allowedMimeTypes = map[string]bool{
	MimePDF:  true,
	MimePNG:  true,
	MimeJPEG: true,
}

// ReportCache holds per-user report lists. Implementations must be safe for
// concurrent use; failures never fail a request.
//
// Each user has a generation that Invalidate advances. SetReports stores a
// list only if the generation still equals the one read before the database
// query, so a list read before a concurrent write is never cached.
type ReportCache interface {
	GetReports(ctx context.Context, userID uint) ([]models.Report, bool, error)
	Version(ctx context.Context, userID uint) (int64, error)
	SetReports(ctx context.Context, userID uint, version int64, reports []models.Report) (bool, error)
	Invalidate(ctx context.Context, userID uint) error
}

type IngestInput struct {
	UserID   uint
	Data     []byte
	MimeType string
	Filename string
}

type DeleteResult struct {
	ObjectRemoved bool
}

type ReportService struct {
	reports  repository.ReportRepository
	store    storage.ObjectStore
	analyzer analyzer.Analyzer
	cache    ReportCache
	folder   string
	log      *zap.Logger
	now      func() time.Time
}

// NewReportService wires the ingestion pipeline. cache may be nil.
func NewReportService(
	reports repository.ReportRepository,
	store storage.ObjectStore,
	docAnalyzer analyzer.Analyzer,
	cache ReportCache,
	folder string,
	log *zap.Logger,
) *ReportService {
	return &ReportService{
		reports:  reports,
		store:    store,
		analyzer: docAnalyzer,
		cache:    cache,
		folder:   folder,
		log:      log.Named("reports"),
		now:      time.Now,
	}
}

// ResolveMimeType prefers the sniffed content type over the declared one.
// image/jpg is normalised to image/jpeg.
func ResolveMimeType(declared string, data []byte) string {
	mt := declared
	if len(data) > 0 {
		if detected := mimetype.Detect(data); !detected.Is("application/octet-stream") {
			mt = detected.String()
		}
	}
	if i := strings.Index(mt, ";"); i != -1 {
		mt = mt[:i]
	}
	mt = strings.ToLower(strings.TrimSpace(mt))
	if mt == "image/jpg" {
		mt = MimeJPEG
	}
	return mt
}

func validateUpload(in IngestInput) error {
	if len(in.Data) == 0 {
		return apperrors.Validation("File is required")
	}
	if len(in.Data) > MaxUploadBytes {
		return apperrors.Validation("File size exceeds 5MB limit")
	}
	if !allowedMimeTypes[in.MimeType] {
		return apperrors.Validation("Only PDF, PNG and JPEG files are allowed")
	}
	return nil
}

// Ingest analyzes, stores and records one document, in that order. A failed
// insert deletes the stored object again so no file is left without a row.
func (s *ReportService) Ingest(ctx context.Context, in IngestInput) (*models.Report, error) {
	if err := validateUpload(in); err != nil {
		return nil, err
	}

	log := s.log.With(
		zap.Uint("user_id", in.UserID),
		zap.String("filename", in.Filename),
		zap.String("mime_type", in.MimeType),
		zap.Int("size", len(in.Data)),
	)

	result, err := s.analyzer.Analyze(ctx, in.Data, in.MimeType)
	if err != nil {
		log.Warn("analysis aborted", zap.Error(err))
		return nil, apperrors.Analysis("Error analyzing the file. Please make sure it is a valid PDF or image file.", err)
	}
	if result == nil || !result.OK || result.Fields == nil {
		message := "Error analyzing the file. Please make sure it is a valid PDF or image file."
		var cause error
		if result != nil {
			if result.Message != "" {
				message = result.Message
			}
			cause = result.Err
		}
		log.Warn("analysis failed", zap.String("message", message), zap.Error(cause))
		return nil, apperrors.Analysis(message, cause)
	}

	obj, err := s.store.Put(ctx, in.Data, storage.PutOptions{
		Folder:      s.folder,
		FileName:    in.Filename,
		ContentType: in.MimeType,
	})
	if err != nil {
		log.Error("upload to object store failed", zap.Error(err))
		return nil, apperrors.Storage("Error uploading file to storage", err)
	}

	report := BuildReport(in.UserID, in.Filename, result.Fields, obj, s.now())
	if err := s.reports.Create(ctx, report); err != nil {
		log.Error("failed to save report", zap.String("handle", obj.Handle), zap.Error(err))
		s.compensate(ctx, log, obj.Handle)
		return nil, apperrors.Persistence("Error saving report to database", err)
	}

	s.invalidate(ctx, in.UserID)
	log.Info("report ingested", zap.Uint("report_id", report.ID), zap.String("handle", obj.Handle))
	return report, nil
}

func (s *ReportService) compensate(ctx context.Context, log *zap.Logger, handle string) {
	if err := s.store.Delete(context.WithoutCancel(ctx), handle); err != nil {
		log.Error("failed to remove orphaned object", zap.String("handle", handle), zap.Error(err))
		return
	}
	log.Info("removed orphaned object", zap.String("handle", handle))
}

// BuildReport fills every field of a new report, applying defaults for
// anything the analyzer left out.
func BuildReport(userID uint, filename string, fields *analyzer.Fields, obj *storage.Object, now time.Time) *models.Report {
	if fields == nil {
		fields = &analyzer.Fields{}
	}

	title := strings.TrimSpace(fields.Title)
	if title == "" {
		title = DefaultReportTitle
	}
	dateSeen := strings.TrimSpace(fields.Date)
	if dateSeen == "" {
		dateSeen = now.Format(dateLayout)
	}
	questions := fields.SuggestedQuestions
	if questions == nil {
		questions = []string{}
	}

	return &models.Report{
		UserID:             userID,
		Filename:           filename,
		FileURL:            obj.URL,
		StorageHandle:      obj.Handle,
		Title:              title,
		DateSeen:           dateSeen,
		Summary:            fields.Summary,
		ExplanationEN:      fields.ExplanationEN,
		ExplanationRO:      fields.ExplanationRO,
		SuggestedQuestions: questions,
	}
}

// List returns the user's reports newest first, served from the cache when
// possible.
func (s *ReportService) List(ctx context.Context, userID uint) ([]models.Report, error) {
	var (
		version int64
		fill    bool
	)
	if s.cache != nil {
		reports, found, err := s.cache.GetReports(ctx, userID)
		switch {
		case err != nil:
			s.log.Warn("report cache read failed", zap.Uint("user_id", userID), zap.Error(err))
		case found:
			return reports, nil
		}

		if version, err = s.cache.Version(ctx, userID); err != nil {
			s.log.Warn("report cache version read failed", zap.Uint("user_id", userID), zap.Error(err))
		} else {
			fill = true
		}
	}

	reports, err := s.reports.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Persistence("Failed to fetch reports", err)
	}

	if fill {
		stored, err := s.cache.SetReports(ctx, userID, version, reports)
		switch {
		case err != nil:
			s.log.Warn("report cache write failed", zap.Uint("user_id", userID), zap.Error(err))
		case !stored:
			s.log.Debug("report list changed during read, not cached", zap.Uint("user_id", userID))
		}
	}
	return reports, nil
}

func (s *ReportService) Insights(ctx context.Context, userID uint) ([]models.Insight, error) {
	reports, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	insights := make([]models.Insight, 0, len(reports))
	for i := range reports {
		insights = append(insights, reports[i].Insight())
	}
	return insights, nil
}

func (s *ReportService) Get(ctx context.Context, reportID, userID uint) (*models.Report, error) {
	report, err := s.reports.FindOwned(ctx, reportID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Report not found")
		}
		return nil, apperrors.Persistence("Failed to fetch report", err)
	}
	return report, nil
}

// Delete removes the stored object first and then the row. The row is removed
// even when the object store refuses; ObjectRemoved reports the outcome.
func (s *ReportService) Delete(ctx context.Context, reportID, userID uint) (*DeleteResult, error) {
	report, err := s.Get(ctx, reportID, userID)
	if err != nil {
		return nil, err
	}

	log := s.log.With(zap.Uint("user_id", userID), zap.Uint("report_id", reportID))
	result := &DeleteResult{ObjectRemoved: true}

	// Once the object is gone the row must follow, even if the client leaves.
	ctx = context.WithoutCancel(ctx)

	if report.StorageHandle != "" {
		err := s.store.Delete(ctx, report.StorageHandle)
		switch {
		case err == nil, errors.Is(err, storage.ErrObjectNotFound):
		default:
			log.Error("failed to delete stored object", zap.String("handle", report.StorageHandle), zap.Error(err))
			result.ObjectRemoved = false
		}
	}

	if err := s.reports.Delete(ctx, reportID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Report not found")
		}
		return nil, apperrors.Persistence("Error while deleting report", err)
	}

	s.invalidate(ctx, userID)
	return result, nil
}

func (s *ReportService) invalidate(ctx context.Context, userID uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(context.WithoutCancel(ctx), userID); err != nil {
		s.log.Warn("report cache invalidation failed", zap.Uint("user_id", userID), zap.Error(err))
	}
}
