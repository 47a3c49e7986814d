// File: internal/domain/insurance.go
package domain

import "time"

// InsurancePolicy is a plain record of a policy the user already holds,
// tracked for premium and renewal reminders.
type InsurancePolicy struct {
	ID          uint      `json:"id" gorm:"primarykey"`
	UserID      uint      `json:"user_id" gorm:"not null;index"`
	Type        string    `json:"type" gorm:"not null"` // e.g. "Health Insurance"
	Premium     float64   `json:"premium" gorm:"not null"`
	Frequency   string    `json:"frequency" gorm:"not null"` // Monthly, Quarterly, Half-Yearly, Yearly
	RenewalDate time.Time `json:"renewal_date" gorm:"not null"`
	SumInsured  float64   `json:"sum_insured" gorm:"not null"`
	Reminder    bool      `json:"reminder"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
