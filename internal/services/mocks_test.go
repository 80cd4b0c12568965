package services

import (
	"context"
	"sync"
	"time"

	"github.com/delizza/mailing-backend/internal/models"
	"github.com/delizza/mailing-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory fakes for the repository interfaces and the delivery gateway.

type fakeCampaignRepo struct {
	mu          sync.Mutex
	campaign    *models.Campaign
	findErr     error
	dueList     []*models.Campaign
	dueErr      error
	claimErr    error
	claimStats  *models.CampaignStats
	sentCount   int
	failedCount int
	sentAt      time.Time
	markSent    bool
	markFailed  bool
}

func (f *fakeCampaignRepo) Create(ctx context.Context, c *models.Campaign) error { return nil }

func (f *fakeCampaignRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Campaign, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	if f.campaign == nil || f.campaign.ID != id {
		return nil, repositories.ErrNotFound
	}
	return f.campaign, nil
}

func (f *fakeCampaignRepo) FindAll(ctx context.Context, page, limit int) ([]*models.Campaign, error) {
	return nil, nil
}

func (f *fakeCampaignRepo) FindByStatus(ctx context.Context, status string, page, limit int) ([]*models.Campaign, error) {
	return nil, nil
}

func (f *fakeCampaignRepo) FindDue(ctx context.Context, now time.Time) ([]*models.Campaign, error) {
	return f.dueList, f.dueErr
}

func (f *fakeCampaignRepo) ClaimForSending(ctx context.Context, id primitive.ObjectID, stats models.CampaignStats) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.claimErr != nil {
		return f.claimErr
	}
	f.claimStats = &stats
	return nil
}

func (f *fakeCampaignRepo) MarkSent(ctx context.Context, id primitive.ObjectID, sent, failed int, sentAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.markSent = true
	f.sentCount = sent
	f.failedCount = failed
	f.sentAt = sentAt
	return nil
}

func (f *fakeCampaignRepo) MarkFailed(ctx context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.markFailed = true
	return nil
}

func (f *fakeCampaignRepo) Update(ctx context.Context, c *models.Campaign) error { return nil }
func (f *fakeCampaignRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	return nil
}
func (f *fakeCampaignRepo) Count(ctx context.Context) (int64, error) { return 0, nil }

type fakeTemplateRepo struct {
	template *models.Template
	findErr  error
}

func (f *fakeTemplateRepo) Create(ctx context.Context, t *models.Template) error { return nil }

func (f *fakeTemplateRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Template, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	if f.template == nil || f.template.ID != id {
		return nil, repositories.ErrNotFound
	}
	return f.template, nil
}

func (f *fakeTemplateRepo) FindByName(ctx context.Context, name string) (*models.Template, error) {
	return nil, repositories.ErrNotFound
}

func (f *fakeTemplateRepo) FindAll(ctx context.Context, page, limit int) ([]*models.Template, error) {
	return nil, nil
}

func (f *fakeTemplateRepo) Update(ctx context.Context, t *models.Template) error { return nil }
func (f *fakeTemplateRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	return nil
}
func (f *fakeTemplateRepo) Count(ctx context.Context) (int64, error) { return 0, nil }

type fakeSubscriberRepo struct {
	mu         sync.Mutex
	eligible   []*models.Subscriber
	eligibleErr error
	queried    bool
	byToken    map[string]*models.Subscriber
	tokenCount map[string]int64
}

func (f *fakeSubscriberRepo) Create(ctx context.Context, s *models.Subscriber) error { return nil }

func (f *fakeSubscriberRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Subscriber, error) {
	return nil, repositories.ErrNotFound
}

func (f *fakeSubscriberRepo) FindByEmail(ctx context.Context, email string) (*models.Subscriber, error) {
	return nil, repositories.ErrNotFound
}

func (f *fakeSubscriberRepo) FindEligibleBySegment(ctx context.Context, segment string) ([]*models.Subscriber, error) {
	f.mu.Lock()
	f.queried = true
	f.mu.Unlock()
	if f.eligibleErr != nil {
		return nil, f.eligibleErr
	}
	return f.eligible, nil
}

func (f *fakeSubscriberRepo) FindByUnsubscribeToken(ctx context.Context, token string) (*models.Subscriber, error) {
	if s, ok := f.byToken[token]; ok {
		return s, nil
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeSubscriberRepo) CountByUnsubscribeToken(ctx context.Context, token string) (int64, error) {
	if n, ok := f.tokenCount[token]; ok {
		return n, nil
	}
	if _, ok := f.byToken[token]; ok {
		return 1, nil
	}
	return 0, nil
}

func (f *fakeSubscriberRepo) UnsubscribeByToken(ctx context.Context, token string, at time.Time) error {
	s, ok := f.byToken[token]
	if !ok {
		return nil
	}
	// Mirrors the conditional update: an already-unsubscribed record
	// is left untouched.
	if s.Status == models.SubscriberStatusUnsubscribed {
		return nil
	}
	s.Status = models.SubscriberStatusUnsubscribed
	s.Consent = false
	s.UnsubscribedAt = at
	return nil
}

func (f *fakeSubscriberRepo) FindAll(ctx context.Context, page, limit int) ([]*models.Subscriber, error) {
	return nil, nil
}

func (f *fakeSubscriberRepo) Update(ctx context.Context, s *models.Subscriber) error { return nil }
func (f *fakeSubscriberRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	return nil
}
func (f *fakeSubscriberRepo) Count(ctx context.Context) (int64, error) { return 0, nil }

type fakeMessageRepo struct {
	mu       sync.Mutex
	messages []*models.Message
}

func (f *fakeMessageRepo) Create(ctx context.Context, m *models.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, m)
	return nil
}

func (f *fakeMessageRepo) FindByCampaignID(ctx context.Context, campaignID primitive.ObjectID, page, limit int) ([]*models.Message, error) {
	return f.messages, nil
}

func (f *fakeMessageRepo) FindByEmail(ctx context.Context, email string, page, limit int) ([]*models.Message, error) {
	return nil, nil
}

func (f *fakeMessageRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.messages)), nil
}

type fakeGateway struct {
	mu        sync.Mutex
	sent      []string
	failFor   map[string]error
	globalErr error
}

func (f *fakeGateway) Name() string { return "FAKE" }

func (f *fakeGateway) Send(ctx context.Context, to, subject, htmlBody string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.globalErr != nil {
		return f.globalErr
	}
	if err, ok := f.failFor[to]; ok {
		return err
	}
	f.sent = append(f.sent, to)
	return nil
}

func (f *fakeGateway) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}
