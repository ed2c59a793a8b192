package repository

import (
	"context"

	"campustrade/internal/domain/entity"
)

type UniversityRepository interface {
	ListActive(ctx context.Context) ([]*entity.University, error)
	GetByID(ctx context.Context, id string) (*entity.University, error)
}

type CampusRepository interface {
	ListActive(ctx context.Context) ([]*entity.Campus, error)
	GetByID(ctx context.Context, id string) (*entity.Campus, error)
}
