package service

import (
	"errors"

	"artscore_backend/internal/model"
	"artscore_backend/internal/repository"
	"artscore_backend/internal/util"

	"gorm.io/gorm"
)

type UserService struct {
	UserRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{UserRepo: userRepo}
}

func (s *UserService) ListUsers(page, limit int, role, search string) ([]model.User, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.UserRepo.FindWithPagination((page-1)*limit, limit, role, search)
}

func (s *UserService) GetUser(id uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	return user, err
}

func (s *UserService) SetDisabled(id uint, disabled bool) (*model.User, error) {
	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}
	user.Disabled = disabled
	return user, s.UserRepo.Update(user)
}

func (s *UserService) SetRole(id uint, role model.UserRole) (*model.User, error) {
	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}
	user.Role = role
	return user, s.UserRepo.Update(user)
}

func (s *UserService) UpdateProfile(id uint, name, company, phone string) (*model.User, error) {
	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}
	if name != "" {
		user.Name = name
	}
	user.Company = company
	user.Phone = phone
	return user, s.UserRepo.Update(user)
}
