// File: internal/domain/summary.go
package domain

import "time"

// Summary is the AI-generated digest of an uploaded policy document.
// TranslationID points to the single live translation of this summary,
// or is zero when none exists. At most one translation is ever linked.
type Summary struct {
	ID             uint   `json:"id" gorm:"primarykey"`
	UserID         uint   `json:"user_id" gorm:"not null;index"`
	Title          string `json:"title" gorm:"not null"`
	DocumentRef    string `json:"document_ref" gorm:"not null"` // object-store key of the uploaded file
	SummarizedText string `json:"summarized_text" gorm:"not null"`
	TranslationID  uint   `json:"translation_id,omitempty"`
	Translation    *Translation `json:"translation,omitempty" gorm:"foreignKey:TranslationID"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}
