package repository

import (
	"artscore_backend/internal/model"

	"gorm.io/gorm"
)

type LeadRepository struct {
	DB *gorm.DB
}

func NewLeadRepository(db *gorm.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

func (r *LeadRepository) Create(lead *model.Lead) error {
	return r.DB.Create(lead).Error
}

func (r *LeadRepository) FindByID(id uint) (*model.Lead, error) {
	var lead model.Lead
	err := r.DB.Preload("Partner").First(&lead, id).Error
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

func (r *LeadRepository) FindWithPagination(offset, limit int, partnerID uint, status, search string) ([]model.Lead, int64, error) {
	var leads []model.Lead
	var total int64

	query := r.DB.Model(&model.Lead{})

	if partnerID > 0 {
		query = query.Where("partner_id = ?", partnerID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if search != "" {
		query = query.Where("customer_name LIKE ? OR email LIKE ?", "%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").Offset(offset).Limit(limit).
		Preload("Partner").
		Find(&leads).Error
	if err != nil {
		return nil, 0, err
	}

	return leads, total, nil
}

func (r *LeadRepository) Update(lead *model.Lead) error {
	return r.DB.Save(lead).Error
}

// FindAllForExport returns every lead with its partner, oldest first, for
// the tabular report exports.
func (r *LeadRepository) FindAllForExport(status string) ([]model.Lead, error) {
	var leads []model.Lead
	query := r.DB.Model(&model.Lead{}).Preload("Partner").Order("created_at ASC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Find(&leads).Error
	return leads, err
}
