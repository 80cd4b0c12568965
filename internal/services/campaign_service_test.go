package services

import (
	"context"
	"testing"
	"time"

	"github.com/delizza/mailing-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreateCampaignDefaultsToDraft(t *testing.T) {
	service := NewCampaignService(&fakeCampaignRepo{})

	campaign := &models.Campaign{
		Name:       "Promo",
		Segment:    models.SegmentAll,
		TemplateID: primitive.NewObjectID(),
	}
	require.NoError(t, service.CreateCampaign(context.Background(), campaign))

	assert.Equal(t, models.CampaignStatusDraft, campaign.Status)
}

func TestCreateCampaignWithScheduleDateIsScheduled(t *testing.T) {
	service := NewCampaignService(&fakeCampaignRepo{})

	campaign := &models.Campaign{
		Name:       "Promo",
		Segment:    "vip",
		TemplateID: primitive.NewObjectID(),
		ScheduleAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, service.CreateCampaign(context.Background(), campaign))

	assert.Equal(t, models.CampaignStatusScheduled, campaign.Status)
}

func TestCreateCampaignValidation(t *testing.T) {
	service := NewCampaignService(&fakeCampaignRepo{})

	err := service.CreateCampaign(context.Background(), &models.Campaign{
		Name:       "no segment",
		TemplateID: primitive.NewObjectID(),
	})
	assert.EqualError(t, err, "campaign segment is required")

	err = service.CreateCampaign(context.Background(), &models.Campaign{
		Name:    "no template",
		Segment: models.SegmentAll,
	})
	assert.EqualError(t, err, "campaign template is required")

	err = service.CreateCampaign(context.Background(), &models.Campaign{
		Name:       "scheduled without date",
		Segment:    models.SegmentAll,
		TemplateID: primitive.NewObjectID(),
		Status:     models.CampaignStatusScheduled,
	})
	assert.EqualError(t, err, "scheduled campaign needs a schedule date")
}

func TestUpdateCampaignRejectsNonEditableStatus(t *testing.T) {
	existing := &models.Campaign{
		ID:     primitive.NewObjectID(),
		Name:   "Promo",
		Status: models.CampaignStatusSending,
	}
	service := NewCampaignService(&fakeCampaignRepo{campaign: existing})

	err := service.UpdateCampaign(context.Background(), &models.Campaign{ID: existing.ID, Name: "edited"})

	assert.EqualError(t, err, "campaign can no longer be edited")
}

func TestUpdateCampaignPreservesDispatchOwnedFields(t *testing.T) {
	sentAt := time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)
	existing := &models.Campaign{
		ID:     primitive.NewObjectID(),
		Name:   "Promo",
		Status: models.CampaignStatusDraft,
		Stats:  models.CampaignStats{TotalRecipients: 10, Sent: 9, Failed: 1, Opened: 4},
		SentAt: sentAt,
	}
	service := NewCampaignService(&fakeCampaignRepo{campaign: existing})

	edited := &models.Campaign{
		ID:      existing.ID,
		Name:    "Promo v2",
		Segment: "vip",
		Stats:   models.CampaignStats{TotalRecipients: 999},
	}
	require.NoError(t, service.UpdateCampaign(context.Background(), edited))

	assert.Equal(t, existing.Stats, edited.Stats)
	assert.Equal(t, sentAt, edited.SentAt)
}
