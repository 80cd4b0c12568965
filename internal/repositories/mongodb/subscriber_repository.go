package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/delizza/mailing-backend/internal/models"
	"github.com/delizza/mailing-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Compile-time check to ensure SubscriberRepository implements the interface
var _ repositories.SubscriberRepository = (*SubscriberRepository)(nil)

// SubscriberRepository implements the repositories.SubscriberRepository interface
type SubscriberRepository struct {
	collection *mongo.Collection
}

// NewSubscriberRepository creates a new SubscriberRepository
func NewSubscriberRepository(db *mongo.Database) *SubscriberRepository {
	return &SubscriberRepository{
		collection: db.Collection("subscribers"),
	}
}

// segmentFilter builds the server-side eligibility filter for a campaign
// segment: active, consented and, unless the segment is the "all" sentinel,
// carrying the segment tag.
func segmentFilter(segment string) bson.M {
	filter := bson.M{
		"status":  models.SubscriberStatusActive,
		"consent": true,
	}
	if segment != models.SegmentAll {
		filter["tags"] = segment
	}
	return filter
}

// Create inserts a new subscriber
func (r *SubscriberRepository) Create(ctx context.Context, subscriber *models.Subscriber) error {
	subscriber.ID = primitive.NewObjectID()
	subscriber.CreatedAt = time.Now()
	subscriber.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, subscriber)
	return err
}

// FindByID finds a subscriber by ID
func (r *SubscriberRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Subscriber, error) {
	var subscriber models.Subscriber
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&subscriber)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repositories.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &subscriber, nil
}

// FindByEmail finds a subscriber by email
func (r *SubscriberRepository) FindByEmail(ctx context.Context, email string) (*models.Subscriber, error) {
	var subscriber models.Subscriber
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&subscriber)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repositories.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &subscriber, nil
}

// FindEligibleBySegment finds the eligible subscriber set for a campaign.
// Result ordering is whatever the server returns; callers must not rely
// on it. No match yields an empty slice, not an error.
func (r *SubscriberRepository) FindEligibleBySegment(ctx context.Context, segment string) ([]*models.Subscriber, error) {
	cursor, err := r.collection.Find(ctx, segmentFilter(segment))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var subscribers []*models.Subscriber
	if err := cursor.All(ctx, &subscribers); err != nil {
		return nil, err
	}
	if subscribers == nil {
		subscribers = []*models.Subscriber{}
	}
	return subscribers, nil
}

// FindByUnsubscribeToken finds one subscriber by unsubscribe token
func (r *SubscriberRepository) FindByUnsubscribeToken(ctx context.Context, token string) (*models.Subscriber, error) {
	var subscriber models.Subscriber
	err := r.collection.FindOne(ctx, bson.M{"unsubscribeToken": token}).Decode(&subscriber)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repositories.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &subscriber, nil
}

// CountByUnsubscribeToken counts subscribers holding a token. Tokens are
// unique by construction, so a count above one is a data-integrity problem.
func (r *SubscriberRepository) CountByUnsubscribeToken(ctx context.Context, token string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"unsubscribeToken": token})
}

// UnsubscribeByToken applies the unsubscribe write. The status guard in the
// filter makes the call idempotent: a token already unsubscribed matches
// nothing and the stamp is not rewritten.
func (r *SubscriberRepository) UnsubscribeByToken(ctx context.Context, token string, at time.Time) error {
	filter := bson.M{
		"unsubscribeToken": token,
		"status":           bson.M{"$ne": models.SubscriberStatusUnsubscribed},
	}
	update := bson.M{"$set": bson.M{
		"status":         models.SubscriberStatusUnsubscribed,
		"consent":        false,
		"unsubscribedAt": at,
		"updatedAt":      time.Now(),
	}}

	_, err := r.collection.UpdateOne(ctx, filter, update)
	return err
}

// FindAll retrieves all subscribers with pagination
func (r *SubscriberRepository) FindAll(ctx context.Context, page, limit int) ([]*models.Subscriber, error) {
	opts := options.Find().
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit)).
		SetSort(bson.M{"createdAt": -1})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var subscribers []*models.Subscriber
	if err := cursor.All(ctx, &subscribers); err != nil {
		return nil, err
	}
	if subscribers == nil {
		subscribers = []*models.Subscriber{}
	}
	return subscribers, nil
}

// Update updates an existing subscriber
func (r *SubscriberRepository) Update(ctx context.Context, subscriber *models.Subscriber) error {
	subscriber.UpdatedAt = time.Now()
	filter := bson.M{"_id": subscriber.ID}
	update := bson.M{"$set": subscriber}
	_, err := r.collection.UpdateOne(ctx, filter, update)
	return err
}

// Delete deletes a subscriber by ID
func (r *SubscriberRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// Count counts all subscribers
func (r *SubscriberRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
