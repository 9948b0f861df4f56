package models

import "time"

type Vitals struct {
	ID        uint      `gorm:"primaryKey" json:"id" example:"1"`
	CreatedAt time.Time `json:"created_at" example:"2023-01-01T00:00:00Z"`
	UpdatedAt time.Time `json:"updated_at" example:"2023-01-01T00:00:00Z"`
	UserID    uint      `gorm:"not null;index" json:"user_id" example:"1"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	BP        string    `gorm:"column:bp" json:"bp" example:"120/80"`
	Sugar     string    `json:"sugar" example:"95"`
	Weight    string    `json:"weight" example:"72"`
	Note      string    `json:"note" example:"after breakfast"`
	Date      time.Time `gorm:"index" json:"date" example:"2024-01-01T08:00:00Z"`
}

func (Vitals) TableName() string {
	return "vitals"
}
