package models

import "time"

const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id" example:"1"`
	CreatedAt time.Time `json:"created_at" example:"2023-01-01T00:00:00Z"`
	UpdatedAt time.Time `json:"updated_at" example:"2023-01-01T00:00:00Z"`
	Firstname string    `gorm:"size:12;not null" json:"firstname" example:"John"`
	Lastname  string    `gorm:"size:12" json:"lastname" example:"Smith"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email" example:"john@example.com"`
	Password  string    `gorm:"not null" json:"-"`
	Gender    string    `gorm:"size:6" json:"gender,omitempty" example:"Male"`
}

// UserSummary is the public projection returned by /profile/getuser.
type UserSummary struct {
	ID        uint   `json:"id" example:"1"`
	Firstname string `json:"firstname" example:"John"`
	Lastname  string `json:"lastname" example:"Smith"`
	Email     string `json:"email" example:"john@example.com"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:        u.ID,
		Firstname: u.Firstname,
		Lastname:  u.Lastname,
		Email:     u.Email,
	}
}
