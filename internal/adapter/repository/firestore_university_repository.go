package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"campustrade/internal/domain/entity"
	"campustrade/internal/domain/repository"
	"campustrade/pkg/errors"
)

type firestoreUniversityRepository struct {
	client *firestore.Client
}

func NewFirestoreUniversityRepository(client *firestore.Client) repository.UniversityRepository {
	return &firestoreUniversityRepository{
		client: client,
	}
}

func (r *firestoreUniversityRepository) ListActive(ctx context.Context) ([]*entity.University, error) {
	query := r.client.Collection("universities").
		Where("isActive", "==", true).
		OrderBy("name", firestore.Asc)

	iter := query.Documents(ctx)
	var universities []*entity.University

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate universities", err)
		}

		var university entity.University
		if err := doc.DataTo(&university); err != nil {
			return nil, errors.Internal("Failed to parse university data", err)
		}
		universities = append(universities, &university)
	}

	return universities, nil
}

func (r *firestoreUniversityRepository) GetByID(ctx context.Context, id string) (*entity.University, error) {
	doc, err := r.client.Collection("universities").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("University", err)
		}
		return nil, errors.Internal("Failed to get university", err)
	}

	var university entity.University
	if err := doc.DataTo(&university); err != nil {
		return nil, errors.Internal("Failed to parse university data", err)
	}

	return &university, nil
}

type firestoreCampusRepository struct {
	client *firestore.Client
}

func NewFirestoreCampusRepository(client *firestore.Client) repository.CampusRepository {
	return &firestoreCampusRepository{
		client: client,
	}
}

func (r *firestoreCampusRepository) ListActive(ctx context.Context) ([]*entity.Campus, error) {
	query := r.client.Collection("campuses").
		Where("isActive", "==", true).
		OrderBy("name", firestore.Asc)

	iter := query.Documents(ctx)
	var campuses []*entity.Campus

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate campuses", err)
		}

		var campus entity.Campus
		if err := doc.DataTo(&campus); err != nil {
			return nil, errors.Internal("Failed to parse campus data", err)
		}
		campuses = append(campuses, &campus)
	}

	return campuses, nil
}

func (r *firestoreCampusRepository) GetByID(ctx context.Context, id string) (*entity.Campus, error) {
	doc, err := r.client.Collection("campuses").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Campus", err)
		}
		return nil, errors.Internal("Failed to get campus", err)
	}

	var campus entity.Campus
	if err := doc.DataTo(&campus); err != nil {
		return nil, errors.Internal("Failed to parse campus data", err)
	}

	return &campus, nil
}
