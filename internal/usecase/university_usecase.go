package usecase

import (
	"context"

	"campustrade/internal/domain/entity"
	"campustrade/internal/domain/repository"
)

type UniversityUseCase struct {
	universityRepo repository.UniversityRepository
	campusRepo     repository.CampusRepository
}

func NewUniversityUseCase(
	universityRepo repository.UniversityRepository,
	campusRepo repository.CampusRepository,
) *UniversityUseCase {
	return &UniversityUseCase{
		universityRepo: universityRepo,
		campusRepo:     campusRepo,
	}
}

func (u *UniversityUseCase) ListUniversities(ctx context.Context) ([]*entity.University, error) {
	return u.universityRepo.ListActive(ctx)
}

func (u *UniversityUseCase) ListCampuses(ctx context.Context) ([]*entity.Campus, error) {
	return u.campusRepo.ListActive(ctx)
}

func (u *UniversityUseCase) GetCampus(ctx context.Context, id string) (*entity.Campus, error) {
	return u.campusRepo.GetByID(ctx, id)
}
