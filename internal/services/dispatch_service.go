package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/delizza/mailing-backend/internal/config"
	"github.com/delizza/mailing-backend/internal/models"
	"github.com/delizza/mailing-backend/internal/repositories"
	"github.com/delizza/mailing-backend/pkg/emailgateway"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Compile-time check to ensure dispatchService implements DispatchService
var _ DispatchService = (*dispatchService)(nil)

// DispatchService drives the end-to-end campaign send
type DispatchService interface {
	SendCampaign(ctx context.Context, campaignID primitive.ObjectID, batchSize int) (*DispatchResult, error)
}

// DispatchResult reports the aggregate outcome of a completed send
type DispatchResult struct {
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
	Total  int `json:"total"`
}

type dispatchService struct {
	campaignRepo   repositories.CampaignRepository
	templateRepo   repositories.TemplateRepository
	subscriberRepo repositories.SubscriberRepository
	messageRepo    repositories.MessageRepository
	gateway        emailgateway.Gateway
	dispatchCfg    config.DispatchConfig
	logger         *zap.Logger
}

// NewDispatchService creates a new DispatchService
func NewDispatchService(
	campaignRepo repositories.CampaignRepository,
	templateRepo repositories.TemplateRepository,
	subscriberRepo repositories.SubscriberRepository,
	messageRepo repositories.MessageRepository,
	gateway emailgateway.Gateway,
	dispatchCfg config.DispatchConfig,
	logger *zap.Logger,
) DispatchService {
	return &dispatchService{
		campaignRepo:   campaignRepo,
		templateRepo:   templateRepo,
		subscriberRepo: subscriberRepo,
		messageRepo:    messageRepo,
		gateway:        gateway,
		dispatchCfg:    dispatchCfg,
		logger:         logger,
	}
}

// SendCampaign executes a campaign send: load campaign and template, resolve
// the eligible subscriber set, claim the campaign for sending, deliver in
// paced batches and record the terminal state with final counters.
//
// A zero or negative batchSize falls back to the configured default. One
// subscriber's delivery failure only increments the failed counter; errors
// before or outside the batch loop mark the campaign failed and propagate.
func (s *dispatchService) SendCampaign(ctx context.Context, campaignID primitive.ObjectID, batchSize int) (*DispatchResult, error) {
	if batchSize <= 0 {
		batchSize = s.dispatchCfg.BatchSize
	}
	if batchSize < 1 {
		return nil, fmt.Errorf("batch size must be >= 1, got %d", batchSize)
	}

	campaign, err := s.campaignRepo.FindByID(ctx, campaignID)
	if err != nil {
		return nil, fmt.Errorf("campaign %s: %w", campaignID.Hex(), err)
	}

	template, err := s.templateRepo.FindByID(ctx, campaign.TemplateID)
	if err != nil {
		s.markFailed(campaignID)
		return nil, fmt.Errorf("template %s: %w", campaign.TemplateID.Hex(), err)
	}

	subscribers, err := s.subscriberRepo.FindEligibleBySegment(ctx, campaign.Segment)
	if err != nil {
		s.markFailed(campaignID)
		return nil, fmt.Errorf("resolve recipients: %w", err)
	}

	// Claiming the campaign is the first observable side effect and the
	// mutual-exclusion point: a concurrent send of the same campaign loses
	// the conditional update and aborts here.
	stats := models.CampaignStats{TotalRecipients: len(subscribers)}
	if err := s.campaignRepo.ClaimForSending(ctx, campaignID, stats); err != nil {
		return nil, err
	}

	sent, failed := 0, 0
	for start := 0; start < len(subscribers); start += batchSize {
		if start > 0 {
			// Static pacing between batches to stay under the email
			// provider's throughput cap.
			select {
			case <-ctx.Done():
				s.markFailed(campaignID)
				return nil, ctx.Err()
			case <-time.After(s.dispatchCfg.BatchDelay):
			}
		}

		end := start + batchSize
		if end > len(subscribers) {
			end = len(subscribers)
		}

		for _, subscriber := range subscribers[start:end] {
			if err := ctx.Err(); err != nil {
				s.markFailed(campaignID)
				return nil, err
			}

			renderCtx := buildRenderContext(campaign, template, subscriber, s.dispatchCfg)
			subject := RenderTemplate(template.Subject, renderCtx)
			htmlBody := RenderTemplate(template.HTMLBody, renderCtx)

			sendErr := s.gateway.Send(ctx, subscriber.Email, subject, htmlBody)
			if errors.Is(sendErr, emailgateway.ErrNotConfigured) {
				// Missing credential fails the whole send, not one recipient.
				s.markFailed(campaignID)
				return nil, sendErr
			}

			if sendErr != nil {
				failed++
				s.logger.Warn("delivery failed",
					zap.String("campaignId", campaignID.Hex()),
					zap.String("email", subscriber.Email),
					zap.Error(sendErr))
			} else {
				sent++
			}
			s.recordMessage(campaign, subscriber, subject, sendErr)
		}
	}

	if err := s.campaignRepo.MarkSent(ctx, campaignID, sent, failed, time.Now()); err != nil {
		s.markFailed(campaignID)
		return nil, fmt.Errorf("finalize campaign: %w", err)
	}

	return &DispatchResult{Sent: sent, Failed: failed, Total: len(subscribers)}, nil
}

// markFailed best-effort marks the campaign failed. The write uses a fresh
// context so a canceled send can still leave a terminal status behind; if it
// fails anyway the campaign stays in sending for the reconciliation sweep.
func (s *dispatchService) markFailed(campaignID primitive.ObjectID) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.campaignRepo.MarkFailed(ctx, campaignID); err != nil {
		s.logger.Error("failed to mark campaign as failed",
			zap.String("campaignId", campaignID.Hex()),
			zap.Error(err))
	}
}

func (s *dispatchService) recordMessage(campaign *models.Campaign, subscriber *models.Subscriber, subject string, sendErr error) {
	message := &models.Message{
		Email:      subscriber.Email,
		CampaignID: campaign.ID,
		Subject:    subject,
		Gateway:    s.gateway.Name(),
	}
	if sendErr != nil {
		message.Status = models.MessageStatusFailed
		message.Error = sendErr.Error()
	} else {
		message.Status = models.MessageStatusSent
		message.SentAt = time.Now()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.messageRepo.Create(ctx, message); err != nil {
		// Bookkeeping only; never fails a send.
		s.logger.Error("failed to record delivery attempt",
			zap.String("campaignId", campaign.ID.Hex()),
			zap.String("email", subscriber.Email),
			zap.Error(err))
	}
}
