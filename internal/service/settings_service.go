package service

import (
	"errors"

	"artscore_backend/internal/model"
	"artscore_backend/internal/repository"

	"gorm.io/gorm"
)

// SettingsService reads and writes admin-tunable configuration through the
// storage layer. There is no in-process settings object to drift from the
// database.
type SettingsService struct {
	SettingRepo *repository.SettingRepository
}

func NewSettingsService(settingRepo *repository.SettingRepository) *SettingsService {
	return &SettingsService{SettingRepo: settingRepo}
}

func (s *SettingsService) GetAll() ([]model.Setting, error) {
	return s.SettingRepo.GetAll()
}

func (s *SettingsService) Get(key string) (string, error) {
	setting, err := s.SettingRepo.Get(key)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return setting.Value, nil
}

func (s *SettingsService) Update(values map[string]string) error {
	for key, value := range values {
		if err := s.SettingRepo.Upsert(key, value); err != nil {
			return err
		}
	}
	return nil
}
