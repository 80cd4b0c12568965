package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Campaign statuses. A campaign only moves forward:
// draft/scheduled -> sending -> sent or failed.
const (
	CampaignStatusDraft     = "draft"
	CampaignStatusScheduled = "scheduled"
	CampaignStatusSending   = "sending"
	CampaignStatusSent      = "sent"
	CampaignStatusFailed    = "failed"
)

// SegmentAll is the sentinel segment targeting every eligible subscriber.
const SegmentAll = "all"

// CampaignStats holds per-campaign delivery counters. Sent and Failed are
// owned by the dispatch service; Opened and Clicked are written by external
// analytics collectors and must not be overwritten by a send.
type CampaignStats struct {
	TotalRecipients int `bson:"totalRecipients" json:"totalRecipients"`
	Sent            int `bson:"sent" json:"sent"`
	Failed          int `bson:"failed" json:"failed"`
	Opened          int `bson:"opened" json:"opened"`
	Clicked         int `bson:"clicked" json:"clicked"`
}

// Campaign represents an emailing campaign
type Campaign struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name       string             `bson:"name" json:"name"`
	TemplateID primitive.ObjectID `bson:"templateId" json:"templateId"`
	Segment    string             `bson:"segment" json:"segment"` // tag name or "all"
	Overrides  map[string]string  `bson:"overrides,omitempty" json:"overrides,omitempty"`
	Status     string             `bson:"status" json:"status"`
	ScheduleAt time.Time          `bson:"scheduleAt,omitempty" json:"scheduleAt,omitempty"`
	SentAt     time.Time          `bson:"sentAt,omitempty" json:"sentAt,omitempty"`
	Stats      CampaignStats      `bson:"stats" json:"stats"`
	CreatedBy  string             `bson:"createdBy" json:"createdBy"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}
