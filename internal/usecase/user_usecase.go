package usecase

import (
	"context"
	"time"

	"campustrade/internal/domain/entity"
	"campustrade/internal/domain/repository"
)

type UserUseCase struct {
	userRepo repository.UserRepository
}

func NewUserUseCase(userRepo repository.UserRepository) *UserUseCase {
	return &UserUseCase{
		userRepo: userRepo,
	}
}

type UpdateProfileInput struct {
	FullName     string `json:"full_name" validate:"omitempty,min=2,max=100"`
	BusinessName string `json:"business_name" validate:"omitempty,max=100"`
	AvatarURL    string `json:"avatar_url" validate:"omitempty,url"`
	UniversityID string `json:"university_id"`
	CampusID     string `json:"campus_id"`
}

func (u *UserUseCase) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	return u.userRepo.GetByID(ctx, userID)
}

func (u *UserUseCase) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*entity.User, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.FullName != "" {
		user.FullName = input.FullName
	}
	if input.BusinessName != "" {
		user.BusinessName = input.BusinessName
	}
	if input.AvatarURL != "" {
		user.AvatarURL = input.AvatarURL
	}
	if input.UniversityID != "" {
		user.UniversityID = input.UniversityID
	}
	if input.CampusID != "" {
		user.CampusID = input.CampusID
	}
	user.UpdatedAt = time.Now()

	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
