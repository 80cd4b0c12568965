package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/delizza/mailing-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type fakeDispatch struct {
	mu      sync.Mutex
	calls   []primitive.ObjectID
	failFor map[primitive.ObjectID]error
}

func (f *fakeDispatch) SendCampaign(ctx context.Context, campaignID primitive.ObjectID, batchSize int) (*DispatchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, campaignID)
	if err, ok := f.failFor[campaignID]; ok {
		return nil, err
	}
	return &DispatchResult{Sent: 1, Total: 1}, nil
}

func TestCheckScheduledCampaignsDispatchesAllDue(t *testing.T) {
	first := &models.Campaign{ID: primitive.NewObjectID(), Name: "first"}
	second := &models.Campaign{ID: primitive.NewObjectID(), Name: "second"}
	campaignRepo := &fakeCampaignRepo{dueList: []*models.Campaign{first, second}}
	dispatch := &fakeDispatch{}

	scheduler := NewScheduler(campaignRepo, dispatch, zap.NewNop())
	scheduler.CheckScheduledCampaigns(context.Background())

	assert.Equal(t, []primitive.ObjectID{first.ID, second.ID}, dispatch.calls)
}

func TestCheckScheduledCampaignsOneFailureDoesNotBlockRest(t *testing.T) {
	first := &models.Campaign{ID: primitive.NewObjectID(), Name: "first"}
	second := &models.Campaign{ID: primitive.NewObjectID(), Name: "second"}
	campaignRepo := &fakeCampaignRepo{dueList: []*models.Campaign{first, second}}
	dispatch := &fakeDispatch{failFor: map[primitive.ObjectID]error{first.ID: errors.New("boom")}}

	scheduler := NewScheduler(campaignRepo, dispatch, zap.NewNop())
	scheduler.CheckScheduledCampaigns(context.Background())

	assert.Len(t, dispatch.calls, 2)
	assert.Equal(t, second.ID, dispatch.calls[1])
}

func TestCheckScheduledCampaignsScanFailure(t *testing.T) {
	campaignRepo := &fakeCampaignRepo{dueErr: errors.New("mongo down")}
	dispatch := &fakeDispatch{}

	scheduler := NewScheduler(campaignRepo, dispatch, zap.NewNop())
	scheduler.CheckScheduledCampaigns(context.Background())

	assert.Empty(t, dispatch.calls)
}
