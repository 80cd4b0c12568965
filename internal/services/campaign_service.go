package services

import (
	"context"
	"errors"
	"time"

	"github.com/delizza/mailing-backend/internal/models"
	"github.com/delizza/mailing-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Compile-time check to ensure campaignService implements CampaignService
var _ CampaignService = (*campaignService)(nil)

// CampaignService handles campaign CRUD; dispatching is DispatchService's job
type CampaignService interface {
	CreateCampaign(ctx context.Context, campaign *models.Campaign) error
	GetCampaignByID(ctx context.Context, id primitive.ObjectID) (*models.Campaign, error)
	GetAllCampaigns(ctx context.Context, page, limit int) ([]*models.Campaign, error)
	GetCampaignsByStatus(ctx context.Context, status string, page, limit int) ([]*models.Campaign, error)
	UpdateCampaign(ctx context.Context, campaign *models.Campaign) error
	DeleteCampaign(ctx context.Context, id primitive.ObjectID) error
	GetCampaignCount(ctx context.Context) (int64, error)
}

type campaignService struct {
	campaignRepo repositories.CampaignRepository
}

// NewCampaignService creates a new CampaignService
func NewCampaignService(campaignRepo repositories.CampaignRepository) CampaignService {
	return &campaignService{campaignRepo: campaignRepo}
}

// CreateCampaign creates a new campaign in draft, or scheduled when a
// schedule date is supplied
func (s *campaignService) CreateCampaign(ctx context.Context, campaign *models.Campaign) error {
	if campaign.Segment == "" {
		return errors.New("campaign segment is required")
	}
	if campaign.TemplateID.IsZero() {
		return errors.New("campaign template is required")
	}
	if campaign.Status == "" {
		campaign.Status = models.CampaignStatusDraft
		if !campaign.ScheduleAt.IsZero() {
			campaign.Status = models.CampaignStatusScheduled
		}
	}
	if campaign.Status == models.CampaignStatusScheduled && campaign.ScheduleAt.IsZero() {
		return errors.New("scheduled campaign needs a schedule date")
	}
	return s.campaignRepo.Create(ctx, campaign)
}

// GetCampaignByID retrieves a campaign by ID
func (s *campaignService) GetCampaignByID(ctx context.Context, id primitive.ObjectID) (*models.Campaign, error) {
	return s.campaignRepo.FindByID(ctx, id)
}

// GetAllCampaigns retrieves all campaigns with pagination
func (s *campaignService) GetAllCampaigns(ctx context.Context, page, limit int) ([]*models.Campaign, error) {
	return s.campaignRepo.FindAll(ctx, page, limit)
}

// GetCampaignsByStatus retrieves campaigns by status with pagination
func (s *campaignService) GetCampaignsByStatus(ctx context.Context, status string, page, limit int) ([]*models.Campaign, error) {
	return s.campaignRepo.FindByStatus(ctx, status, page, limit)
}

// UpdateCampaign updates a campaign that has not left draft/scheduled.
// Once a campaign is sending or terminal it is immutable here; only the
// dispatch path and external analytics collectors touch it.
func (s *campaignService) UpdateCampaign(ctx context.Context, campaign *models.Campaign) error {
	current, err := s.campaignRepo.FindByID(ctx, campaign.ID)
	if err != nil {
		return err
	}
	switch current.Status {
	case models.CampaignStatusDraft, models.CampaignStatusScheduled:
	default:
		return errors.New("campaign can no longer be edited")
	}
	campaign.Stats = current.Stats
	campaign.SentAt = current.SentAt
	campaign.CreatedAt = current.CreatedAt
	campaign.UpdatedAt = time.Now()
	return s.campaignRepo.Update(ctx, campaign)
}

// DeleteCampaign deletes a campaign
func (s *campaignService) DeleteCampaign(ctx context.Context, id primitive.ObjectID) error {
	return s.campaignRepo.Delete(ctx, id)
}

// GetCampaignCount gets the total number of campaigns
func (s *campaignService) GetCampaignCount(ctx context.Context) (int64, error) {
	return s.campaignRepo.Count(ctx)
}
