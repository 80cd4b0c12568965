package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Template represents a reusable email skeleton with {{token}} placeholders.
// A template referenced by a campaign that has left draft is treated as
// immutable by convention; the dispatch service only ever reads it.
type Template struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Subject   string             `bson:"subject" json:"subject"`
	HTMLBody  string             `bson:"htmlBody" json:"htmlBody"`
	CTAUrl    string             `bson:"ctaUrl,omitempty" json:"ctaUrl,omitempty"`
	CTAText   string             `bson:"ctaText,omitempty" json:"ctaText,omitempty"`
	BannerURL string             `bson:"bannerUrl,omitempty" json:"bannerUrl,omitempty"`
	IsActive  bool               `bson:"isActive" json:"isActive"`
	CreatedBy string             `bson:"createdBy" json:"createdBy"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
