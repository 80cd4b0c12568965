package services

import (
	"context"
	"time"

	"github.com/delizza/mailing-backend/internal/repositories"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler periodically scans for scheduled campaigns whose time has
// elapsed and hands each one to the dispatch service. The handoff goes
// through the full send path, so a due campaign does not just flip status,
// it actually goes out.
type Scheduler struct {
	cron         *cron.Cron
	campaignRepo repositories.CampaignRepository
	dispatch     DispatchService
	logger       *zap.Logger
}

// NewScheduler creates a new Scheduler
func NewScheduler(campaignRepo repositories.CampaignRepository, dispatch DispatchService, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:         cron.New(),
		campaignRepo: campaignRepo,
		dispatch:     dispatch,
		logger:       logger,
	}
}

// Start registers the poll on the given cron spec (e.g. "@every 15m") and
// starts the cron runner.
func (s *Scheduler) Start(spec string) error {
	if _, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
		defer cancel()
		s.CheckScheduledCampaigns(ctx)
	}); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop stops the cron runner and waits for a running poll to finish
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// CheckScheduledCampaigns runs one poll cycle. Per-campaign failures are
// logged and never block the remaining due campaigns.
func (s *Scheduler) CheckScheduledCampaigns(ctx context.Context) {
	campaigns, err := s.campaignRepo.FindDue(ctx, time.Now())
	if err != nil {
		s.logger.Error("scheduled campaign scan failed", zap.Error(err))
		return
	}

	for _, campaign := range campaigns {
		s.logger.Info("dispatching scheduled campaign",
			zap.String("campaignId", campaign.ID.Hex()),
			zap.String("name", campaign.Name))

		result, err := s.dispatch.SendCampaign(ctx, campaign.ID, 0)
		if err != nil {
			s.logger.Error("scheduled campaign send failed",
				zap.String("campaignId", campaign.ID.Hex()),
				zap.Error(err))
			continue
		}

		s.logger.Info("scheduled campaign sent",
			zap.String("campaignId", campaign.ID.Hex()),
			zap.Int("sent", result.Sent),
			zap.Int("failed", result.Failed),
			zap.Int("total", result.Total))
	}
}
