package services

import (
	"context"
	"time"

	"github.com/delizza/mailing-backend/internal/models"
	"github.com/delizza/mailing-backend/internal/repositories"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Compile-time check to ensure subscriberService implements SubscriberService
var _ SubscriberService = (*subscriberService)(nil)

// SubscriberService handles subscriber-related business logic
type SubscriberService interface {
	CreateSubscriber(ctx context.Context, subscriber *models.Subscriber) error
	GetSubscriberByID(ctx context.Context, id primitive.ObjectID) (*models.Subscriber, error)
	GetSubscriberByEmail(ctx context.Context, email string) (*models.Subscriber, error)
	GetAllSubscribers(ctx context.Context, page, limit int) ([]*models.Subscriber, error)
	UpdateSubscriber(ctx context.Context, subscriber *models.Subscriber) error
	DeleteSubscriber(ctx context.Context, id primitive.ObjectID) error
	GetSubscriberCount(ctx context.Context) (int64, error)
	Unsubscribe(ctx context.Context, token string) error
}

type subscriberService struct {
	subscriberRepo repositories.SubscriberRepository
	logger         *zap.Logger
}

// NewSubscriberService creates a new SubscriberService
func NewSubscriberService(subscriberRepo repositories.SubscriberRepository, logger *zap.Logger) SubscriberService {
	return &subscriberService{
		subscriberRepo: subscriberRepo,
		logger:         logger,
	}
}

// CreateSubscriber creates a new subscriber with a fresh unsubscribe token.
// The token is stable for the subscriber's lifetime.
func (s *subscriberService) CreateSubscriber(ctx context.Context, subscriber *models.Subscriber) error {
	if subscriber.Status == "" {
		subscriber.Status = models.SubscriberStatusActive
	}
	if subscriber.UnsubscribeToken == "" {
		subscriber.UnsubscribeToken = uuid.NewString()
	}
	return s.subscriberRepo.Create(ctx, subscriber)
}

// GetSubscriberByID retrieves a subscriber by ID
func (s *subscriberService) GetSubscriberByID(ctx context.Context, id primitive.ObjectID) (*models.Subscriber, error) {
	return s.subscriberRepo.FindByID(ctx, id)
}

// GetSubscriberByEmail retrieves a subscriber by email
func (s *subscriberService) GetSubscriberByEmail(ctx context.Context, email string) (*models.Subscriber, error) {
	return s.subscriberRepo.FindByEmail(ctx, email)
}

// GetAllSubscribers retrieves all subscribers with pagination
func (s *subscriberService) GetAllSubscribers(ctx context.Context, page, limit int) ([]*models.Subscriber, error) {
	return s.subscriberRepo.FindAll(ctx, page, limit)
}

// UpdateSubscriber updates a subscriber
func (s *subscriberService) UpdateSubscriber(ctx context.Context, subscriber *models.Subscriber) error {
	return s.subscriberRepo.Update(ctx, subscriber)
}

// DeleteSubscriber deletes a subscriber
func (s *subscriberService) DeleteSubscriber(ctx context.Context, id primitive.ObjectID) error {
	return s.subscriberRepo.Delete(ctx, id)
}

// GetSubscriberCount gets the total number of subscribers
func (s *subscriberService) GetSubscriberCount(ctx context.Context) (int64, error) {
	return s.subscriberRepo.Count(ctx)
}

// Unsubscribe marks the subscriber holding the token as unsubscribed and
// withdraws consent. Re-invoking with an already-applied token succeeds
// silently. An unknown token yields repositories.ErrNotFound.
func (s *subscriberService) Unsubscribe(ctx context.Context, token string) error {
	count, err := s.subscriberRepo.CountByUnsubscribeToken(ctx, token)
	if err != nil {
		return err
	}
	if count == 0 {
		return repositories.ErrNotFound
	}
	if count > 1 {
		// Tokens are unique by construction; more than one match is a
		// data-integrity violation worth surfacing, not silently ignoring.
		s.logger.Error("duplicate unsubscribe token",
			zap.String("token", token),
			zap.Int64("matches", count))
	}

	return s.subscriberRepo.UnsubscribeByToken(ctx, token, time.Now())
}
