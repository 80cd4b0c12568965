package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Subscriber statuses
const (
	SubscriberStatusActive       = "active"
	SubscriberStatusUnsubscribed = "unsubscribed"
)

// Subscriber represents a mailing-list member. A subscriber is eligible for
// a campaign when status is active, consent is true and the campaign segment
// is "all" or appears in Tags.
type Subscriber struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email            string             `bson:"email" json:"email"`
	Name             string             `bson:"name,omitempty" json:"name,omitempty"`
	Status           string             `bson:"status" json:"status"`
	Consent          bool               `bson:"consent" json:"consent"`
	Tags             []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	UnsubscribeToken string             `bson:"unsubscribeToken" json:"unsubscribeToken"`
	UnsubscribedAt   time.Time          `bson:"unsubscribedAt,omitempty" json:"unsubscribedAt,omitempty"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}
