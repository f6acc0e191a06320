package db_models

type EmailType string

const (
	EmailWelcome       EmailType = "welcome"
	EmailInvitation    EmailType = "invitation"
	EmailPasswordReset EmailType = "password_reset"
)

type EmailStatus string

const (
	EmailSent   EmailStatus = "sent"
	EmailFailed EmailStatus = "failed"
)

// EmailLog records one delivery attempt.
type EmailLog struct {
	BaseModel
	Recipient         string      `gorm:"not null;index"`
	Sender            string      `gorm:"not null"`
	Subject           string      `gorm:"not null"`
	Type              EmailType   `gorm:"type:varchar(20);not null"`
	Status            EmailStatus `gorm:"type:varchar(10);not null;index"`
	Provider          string      `gorm:"type:varchar(20)"`
	ProviderMessageID string
	Error             string `gorm:"type:text"`
}
