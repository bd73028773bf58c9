package application

import (
	"context"
	"fmt"

	"github.com/bnema/camp-cli/internal/domain"
	"github.com/bnema/camp-cli/internal/ports"
)

type CampaignService struct {
	campaigns *Store[domain.Campaign]
	roster    ports.CampaignRoster
	notifier  ports.Notifier
}

func NewCampaignService(campaigns *Store[domain.Campaign], roster ports.CampaignRoster, notifier ports.Notifier) *CampaignService {
	if notifier == nil {
		notifier = ports.NopNotifier{}
	}
	return &CampaignService{campaigns: campaigns, roster: roster, notifier: notifier}
}

func (s *CampaignService) AddCharacter(ctx context.Context, campaignID, characterID string) (domain.Campaign, error) {
	if campaign, ok := s.campaigns.Get(campaignID); ok && campaign.HasCharacter(characterID) {
		return campaign, nil
	}
	return s.changeRoster(ctx, "add character to", campaignID, characterID, s.roster.AddCharacter)
}

func (s *CampaignService) RemoveCharacter(ctx context.Context, campaignID, characterID string) (domain.Campaign, error) {
	return s.changeRoster(ctx, "remove character from", campaignID, characterID, s.roster.RemoveCharacter)
}

func (s *CampaignService) changeRoster(ctx context.Context, action, campaignID, characterID string, call func(context.Context, string, string) error) (domain.Campaign, error) {
	if campaignID == "" || characterID == "" {
		return domain.Campaign{}, fmt.Errorf("%w: campaign and character ids are required", domain.ErrValidation)
	}

	if err := call(ctx, campaignID, characterID); err != nil {
		s.notifier.Notify(domain.Notification{
			Level:   domain.NotifyError,
			Title:   "could not " + action + " campaign",
			Message: err.Error(),
		})
		return domain.Campaign{}, fmt.Errorf("%s campaign %s: %w", action, campaignID, err)
	}

	return s.campaigns.Refresh(ctx, campaignID)
}
