package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/delizza/mailing-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound is returned when a requested document does not exist.
var ErrNotFound = errors.New("not found")

// ErrStatusConflict is returned when a campaign cannot be claimed for
// sending because its status is no longer draft or scheduled. A concurrent
// send observing this error must abort without touching the campaign.
var ErrStatusConflict = errors.New("campaign is not in a sendable status")

// CampaignRepository defines the interface for campaign data operations
type CampaignRepository interface {
	Create(ctx context.Context, campaign *models.Campaign) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Campaign, error)
	FindAll(ctx context.Context, page, limit int) ([]*models.Campaign, error)
	FindByStatus(ctx context.Context, status string, page, limit int) ([]*models.Campaign, error)
	// FindDue returns scheduled campaigns whose scheduleAt has elapsed.
	FindDue(ctx context.Context, now time.Time) ([]*models.Campaign, error)
	// ClaimForSending atomically moves a campaign from draft/scheduled to
	// sending and seeds its stats. Returns ErrStatusConflict when the
	// campaign is not in a claimable status.
	ClaimForSending(ctx context.Context, id primitive.ObjectID, stats models.CampaignStats) error
	// MarkSent records the terminal success state. Only stats.sent and
	// stats.failed are written; opened/clicked belong to analytics.
	MarkSent(ctx context.Context, id primitive.ObjectID, sent, failed int, sentAt time.Time) error
	MarkFailed(ctx context.Context, id primitive.ObjectID) error
	Update(ctx context.Context, campaign *models.Campaign) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
}

// TemplateRepository defines the interface for template data operations
type TemplateRepository interface {
	Create(ctx context.Context, template *models.Template) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Template, error)
	FindByName(ctx context.Context, name string) (*models.Template, error)
	FindAll(ctx context.Context, page, limit int) ([]*models.Template, error)
	Update(ctx context.Context, template *models.Template) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
}

// SubscriberRepository defines the interface for subscriber data operations
type SubscriberRepository interface {
	Create(ctx context.Context, subscriber *models.Subscriber) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Subscriber, error)
	FindByEmail(ctx context.Context, email string) (*models.Subscriber, error)
	// FindEligibleBySegment runs the eligibility query server-side:
	// status=active, consent=true and, unless segment is "all", the segment
	// tag present. An empty result is a valid outcome, not an error.
	FindEligibleBySegment(ctx context.Context, segment string) ([]*models.Subscriber, error)
	FindByUnsubscribeToken(ctx context.Context, token string) (*models.Subscriber, error)
	CountByUnsubscribeToken(ctx context.Context, token string) (int64, error)
	// UnsubscribeByToken applies the idempotent unsubscribe write.
	UnsubscribeByToken(ctx context.Context, token string, at time.Time) error
	FindAll(ctx context.Context, page, limit int) ([]*models.Subscriber, error)
	Update(ctx context.Context, subscriber *models.Subscriber) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
}

// MessageRepository defines the interface for delivery-record operations
type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	FindByCampaignID(ctx context.Context, campaignID primitive.ObjectID, page, limit int) ([]*models.Message, error)
	FindByEmail(ctx context.Context, email string, page, limit int) ([]*models.Message, error)
	Count(ctx context.Context) (int64, error)
}

// AdminUserRepository defines the interface for admin user data operations
type AdminUserRepository interface {
	Create(ctx context.Context, adminUser *models.AdminUser) error
	FindByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.AdminUser, error)
}
