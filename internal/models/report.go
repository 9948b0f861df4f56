package models

import "time"

type Report struct {
	ID                 uint      `gorm:"primaryKey" json:"id" example:"1"`
	CreatedAt          time.Time `gorm:"index" json:"created_at" example:"2023-01-01T00:00:00Z"`
	UpdatedAt          time.Time `json:"updated_at" example:"2023-01-01T00:00:00Z"`
	UserID             uint      `gorm:"not null;index" json:"user_id" example:"1"`
	User               User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Filename           string    `json:"filename" example:"blood-test.pdf"`
	FileURL            string    `json:"file_url" example:"https://cdn.example.com/reports/2024/01/01/4f1c.pdf"`
	StorageHandle      string    `json:"storage_handle" example:"reports/2024/01/01/4f1c.pdf"`
	Title              string    `json:"title" example:"Complete Blood Count"`
	DateSeen           string    `json:"date_seen" example:"2024-01-01"`
	Summary            string    `gorm:"type:text" json:"summary"`
	ExplanationEN      string    `gorm:"column:explanation_en;type:text" json:"explanation_en"`
	ExplanationRO      string    `gorm:"column:explanation_ro;type:text" json:"explanation_ro"`
	SuggestedQuestions []string  `gorm:"type:jsonb;serializer:json" json:"suggested_questions"`
}

// Insight is the condensed view served by /report/insights.
type Insight struct {
	ID            uint   `json:"id" example:"1"`
	ReportTitle   string `json:"report_title" example:"Complete Blood Count"`
	Summary       string `json:"summary"`
	ExplanationEN string `json:"explanation_en"`
	ExplanationRO string `json:"explanation_ro"`
}

const (
	noSummary     = "No summary available"
	noExplanation = "No explanation available"
)

func (r *Report) Insight() Insight {
	title := r.Title
	if title == "" {
		title = r.Filename
	}
	return Insight{
		ID:            r.ID,
		ReportTitle:   title,
		Summary:       orDefault(r.Summary, noSummary),
		ExplanationEN: orDefault(r.ExplanationEN, noExplanation),
		ExplanationRO: orDefault(r.ExplanationRO, noExplanation),
	}
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
