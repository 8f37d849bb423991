package service

import (
	"errors"

	"artscore_backend/internal/model"
	"artscore_backend/internal/repository"
	"artscore_backend/internal/util"

	"gorm.io/gorm"
)

type LeadService struct {
	LeadRepo *repository.LeadRepository
	UserRepo *repository.UserRepository
	Mailer   *MailerService
}

func NewLeadService(leadRepo *repository.LeadRepository, userRepo *repository.UserRepository, mailer *MailerService) *LeadService {
	return &LeadService{
		LeadRepo: leadRepo,
		UserRepo: userRepo,
		Mailer:   mailer,
	}
}

func (s *LeadService) SubmitLead(lead *model.Lead) error {
	partner, err := s.UserRepo.FindByID(lead.PartnerID)
	if err != nil {
		return util.ErrUserNotFound
	}

	lead.Status = model.LeadNew
	if err := s.LeadRepo.Create(lead); err != nil {
		return err
	}

	s.Mailer.NotifyLeadCreated(lead, partner)
	return nil
}

// ListLeads returns leads visible to the caller: partners see only their
// own, admins see everything (partnerID 0).
func (s *LeadService) ListLeads(page, limit int, partnerID uint, status, search string) ([]model.Lead, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.LeadRepo.FindWithPagination((page-1)*limit, limit, partnerID, status, search)
}

func (s *LeadService) GetLead(id uint) (*model.Lead, error) {
	lead, err := s.LeadRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrLeadNotFound
	}
	return lead, err
}

func (s *LeadService) UpdateStatus(id uint, next model.LeadStatus, commission *float64) (*model.Lead, error) {
	lead, err := s.GetLead(id)
	if err != nil {
		return nil, err
	}

	if !lead.Status.CanTransitionTo(next) {
		return nil, util.ErrInvalidTransition
	}

	lead.Status = next
	if commission != nil {
		lead.Commission = *commission
	}

	return lead, s.LeadRepo.Update(lead)
}

func (s *LeadService) LeadsForExport(status string) ([]model.Lead, error) {
	return s.LeadRepo.FindAllForExport(status)
}
