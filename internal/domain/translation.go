// File: internal/domain/translation.go
package domain

import "time"

// Translation is text converted into a regional language. A translation
// either stands alone (ad-hoc tool) or is linked from exactly one Summary.
type Translation struct {
	ID             uint      `json:"id" gorm:"primarykey"`
	UserID         uint      `json:"user_id" gorm:"not null;index"`
	Title          string    `json:"title" gorm:"not null"`
	OriginalText   string    `json:"original_text" gorm:"not null"`
	TranslatedText string    `json:"translated_text" gorm:"not null"`
	Language       string    `json:"language" gorm:"not null"`
	CreatedAt      time.Time `json:"created_at"`
}
