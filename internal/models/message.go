package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message statuses
const (
	MessageStatusSent   = "SENT"
	MessageStatusFailed = "FAILED"
)

// Message records the outcome of one delivery attempt to one subscriber.
type Message struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email      string             `bson:"email" json:"email"`
	CampaignID primitive.ObjectID `bson:"campaignId" json:"campaignId"`
	Subject    string             `bson:"subject" json:"subject"`
	Status     string             `bson:"status" json:"status"`
	Gateway    string             `bson:"gateway" json:"gateway"` // SENDGRID, BREVO, MOCK
	Error      string             `bson:"error,omitempty" json:"error,omitempty"`
	SentAt     time.Time          `bson:"sentAt,omitempty" json:"sentAt,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}
