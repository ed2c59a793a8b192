package usecase

import (
	"context"
	"time"

	"campustrade/internal/domain/entity"
	"campustrade/internal/domain/repository"
	"campustrade/pkg/errors"
	"campustrade/pkg/logger"
)

type ProductUseCase struct {
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
}

func NewProductUseCase(
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
) *ProductUseCase {
	return &ProductUseCase{
		productRepo: productRepo,
		userRepo:    userRepo,
	}
}

type CreateProductInput struct {
	Title       string   `json:"title" validate:"required,min=3,max=100"`
	Description string   `json:"description" validate:"required,min=10,max=1000"`
	Price       float64  `json:"price" validate:"gte=0"`
	Category    string   `json:"category" validate:"required"`
	Images      []string `json:"images" validate:"required,min=1,max=4,dive,url"`
}

type UpdateProductInput struct {
	Title       string   `json:"title" validate:"omitempty,min=3,max=100"`
	Description string   `json:"description" validate:"omitempty,min=10,max=1000"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Category    string   `json:"category"`
	Images      []string `json:"images" validate:"omitempty,min=1,max=4,dive,url"`
}

type ListProductsInput struct {
	Category string
	CampusID string
	Sort     string // "newest", "price-low", "price-high", "featured"
	Query    string
	Page     int
	PageSize int
}

func (u *ProductUseCase) Create(ctx context.Context, sellerID string, input CreateProductInput) (*entity.Product, error) {
	seller, err := u.userRepo.GetByID(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	product := &entity.Product{
		SellerID:    sellerID,
		CampusID:    seller.CampusID,
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		Category:    input.Category,
		Images:      input.Images,
		Status:      entity.ProductStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := u.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// Get returns the product and records the view without blocking the read.
// Listings in removed status are hidden from everyone but their seller.
func (u *ProductUseCase) Get(ctx context.Context, productID, viewerID string) (*entity.Product, error) {
	product, err := u.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if product.Status == entity.ProductStatusRemoved && product.SellerID != viewerID {
		return nil, errors.NotFound("Product", nil)
	}

	if viewerID != product.SellerID {
		go func(id string) {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := u.productRepo.IncrementViews(ctx, id); err != nil {
				logger.Error("Failed to increment views for %s: %v", id, err)
			}
		}(product.ID)
	}

	return product, nil
}

func (u *ProductUseCase) List(ctx context.Context, input ListProductsInput) ([]*entity.Product, int64, error) {
	filter := repository.ProductFilter{
		Category: input.Category,
		CampusID: input.CampusID,
		Status:   entity.ProductStatusActive,
	}

	offset := (input.Page - 1) * input.PageSize

	if input.Query != "" {
		return u.productRepo.Search(ctx, input.Query, filter, input.PageSize, offset)
	}

	return u.productRepo.List(ctx, filter, input.Sort, input.PageSize, offset)
}

// ListMine returns the caller's own listings in any status.
func (u *ProductUseCase) ListMine(ctx context.Context, sellerID, status string, page, pageSize int) ([]*entity.Product, int64, error) {
	offset := (page - 1) * pageSize
	return u.productRepo.ListBySellerID(ctx, sellerID, status, pageSize, offset)
}

func (u *ProductUseCase) Update(ctx context.Context, userID, productID string, input UpdateProductInput) (*entity.Product, error) {
	product, err := u.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if product.SellerID != userID {
		return nil, errors.Forbidden("You do not own this listing", nil)
	}

	if input.Title != "" {
		product.Title = input.Title
	}
	if input.Description != "" {
		product.Description = input.Description
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Category != "" {
		product.Category = input.Category
	}
	if len(input.Images) > 0 {
		product.Images = input.Images
	}
	product.UpdatedAt = time.Now()

	if err := u.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// Delete retires the listing instead of erasing it, so existing carts and
// conversations that reference it keep a resolvable target.
func (u *ProductUseCase) Delete(ctx context.Context, userID, productID string) error {
	product, err := u.productRepo.GetByID(ctx, productID)
	if err != nil {
		return err
	}

	if product.SellerID != userID {
		return errors.Forbidden("You do not own this listing", nil)
	}

	return u.productRepo.UpdateStatus(ctx, productID, entity.ProductStatusRemoved)
}

func (u *ProductUseCase) MarkSold(ctx context.Context, userID, productID string) error {
	product, err := u.productRepo.GetByID(ctx, productID)
	if err != nil {
		return err
	}

	if product.SellerID != userID {
		return errors.Forbidden("You do not own this listing", nil)
	}

	if product.Status != entity.ProductStatusActive {
		return errors.BadRequest("Only active listings can be marked sold", nil)
	}

	return u.productRepo.UpdateStatus(ctx, productID, entity.ProductStatusSold)
}
