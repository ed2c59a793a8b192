package usecase

import (
	"context"
	"time"

	"campustrade/internal/domain/entity"
	"campustrade/internal/domain/repository"
	"campustrade/pkg/errors"
	"campustrade/pkg/logger"
)

type CartUseCase struct {
	cartRepo      repository.CartRepository
	guestCartRepo repository.GuestCartRepository
	productRepo   repository.ProductRepository
}

func NewCartUseCase(
	cartRepo repository.CartRepository,
	guestCartRepo repository.GuestCartRepository,
	productRepo repository.ProductRepository,
) *CartUseCase {
	return &CartUseCase{
		cartRepo:      cartRepo,
		guestCartRepo: guestCartRepo,
		productRepo:   productRepo,
	}
}

// CartLine is a cart row joined with the live listing. Title and price come
// from the product at read time, never from the stored row.
type CartLine struct {
	ProductID string  `json:"product_id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Image     string  `json:"image,omitempty"`
	SellerID  string  `json:"seller_id"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
	Available bool    `json:"available"`
}

// CartView is the aggregate the client renders. Lines whose listing is sold
// or removed stay visible but do not count toward the totals.
type CartView struct {
	Items      []CartLine `json:"items"`
	TotalItems int        `json:"total_items"`
	TotalPrice float64    `json:"total_price"`
}

// AddItem puts one more unit of the product in the user's cart. Adding the
// same product n times yields a single line with quantity n.
func (u *CartUseCase) AddItem(ctx context.Context, userID, productID string) error {
	product, err := u.productRepo.GetByID(ctx, productID)
	if err != nil {
		return err
	}

	if !product.Purchasable() {
		return errors.BadRequest("This listing is no longer available", nil)
	}
	if product.SellerID == userID {
		return errors.BadRequest("You cannot add your own listing to the cart", nil)
	}

	item, err := u.cartRepo.GetItem(ctx, userID, productID)
	if err != nil {
		if !errors.Is(err, "NOT_FOUND") {
			return err
		}
		item = &entity.CartItem{
			UserID:    userID,
			ProductID: productID,
			Quantity:  0,
			CreatedAt: time.Now(),
		}
	}

	item.Quantity++
	item.UpdatedAt = time.Now()

	return u.cartRepo.Upsert(ctx, item)
}

// RemoveItem deletes the whole line regardless of quantity. Removing an
// absent product is a no-op.
func (u *CartUseCase) RemoveItem(ctx context.Context, userID, productID string) error {
	return u.cartRepo.Delete(ctx, userID, productID)
}

// UpdateQuantity sets the line's quantity outright. Zero or negative is
// equivalent to removing the line.
func (u *CartUseCase) UpdateQuantity(ctx context.Context, userID, productID string, quantity int) error {
	if quantity <= 0 {
		return u.cartRepo.Delete(ctx, userID, productID)
	}

	item, err := u.cartRepo.GetItem(ctx, userID, productID)
	if err != nil {
		return err
	}

	item.Quantity = quantity
	item.UpdatedAt = time.Now()

	return u.cartRepo.Upsert(ctx, item)
}

func (u *CartUseCase) Clear(ctx context.Context, userID string) error {
	return u.cartRepo.DeleteAll(ctx, userID)
}

func (u *CartUseCase) GetCart(ctx context.Context, userID string) (*CartView, error) {
	items, err := u.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	pairs := make([]productQuantity, 0, len(items))
	for _, item := range items {
		pairs = append(pairs, productQuantity{item.ProductID, item.Quantity})
	}

	return u.buildView(ctx, pairs)
}

// Guest cart. Same operations, keyed by the guest's cart token instead of a
// user ID, backed by an expiring blob.

func (u *CartUseCase) GuestAddItem(ctx context.Context, token, productID string) error {
	product, err := u.productRepo.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if !product.Purchasable() {
		return errors.BadRequest("This listing is no longer available", nil)
	}

	items, err := u.guestCartRepo.Get(ctx, token)
	if err != nil {
		return err
	}

	found := false
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		items = append(items, entity.GuestCartItem{ProductID: productID, Quantity: 1})
	}

	return u.guestCartRepo.Save(ctx, token, items)
}

func (u *CartUseCase) GuestRemoveItem(ctx context.Context, token, productID string) error {
	items, err := u.guestCartRepo.Get(ctx, token)
	if err != nil {
		return err
	}

	kept := items[:0]
	for _, item := range items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}

	return u.guestCartRepo.Save(ctx, token, kept)
}

func (u *CartUseCase) GuestUpdateQuantity(ctx context.Context, token, productID string, quantity int) error {
	if quantity <= 0 {
		return u.GuestRemoveItem(ctx, token, productID)
	}

	items, err := u.guestCartRepo.Get(ctx, token)
	if err != nil {
		return err
	}

	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity = quantity
			return u.guestCartRepo.Save(ctx, token, items)
		}
	}

	return errors.NotFound("Cart item", nil)
}

func (u *CartUseCase) GuestClear(ctx context.Context, token string) error {
	return u.guestCartRepo.Delete(ctx, token)
}

func (u *CartUseCase) GetGuestCart(ctx context.Context, token string) (*CartView, error) {
	items, err := u.guestCartRepo.Get(ctx, token)
	if err != nil {
		return nil, err
	}

	pairs := make([]productQuantity, 0, len(items))
	for _, item := range items {
		pairs = append(pairs, productQuantity{item.ProductID, item.Quantity})
	}

	return u.buildView(ctx, pairs)
}

// MergeGuestCart folds a guest cart into the user's cart after login.
// Quantities for products present in both add up. The guest blob is deleted
// once merged so a reused token starts empty.
func (u *CartUseCase) MergeGuestCart(ctx context.Context, userID, token string) error {
	items, err := u.guestCartRepo.Get(ctx, token)
	if err != nil {
		return err
	}

	for _, guestItem := range items {
		product, err := u.productRepo.GetByID(ctx, guestItem.ProductID)
		if err != nil || !product.Purchasable() || product.SellerID == userID {
			continue
		}

		existing, err := u.cartRepo.GetItem(ctx, userID, guestItem.ProductID)
		if err != nil {
			if !errors.Is(err, "NOT_FOUND") {
				return err
			}
			existing = &entity.CartItem{
				UserID:    userID,
				ProductID: guestItem.ProductID,
				Quantity:  0,
				CreatedAt: time.Now(),
			}
		}

		existing.Quantity += guestItem.Quantity
		existing.UpdatedAt = time.Now()

		if err := u.cartRepo.Upsert(ctx, existing); err != nil {
			return err
		}
	}

	return u.guestCartRepo.Delete(ctx, token)
}

type productQuantity struct {
	ProductID string
	Quantity  int
}

func (u *CartUseCase) buildView(ctx context.Context, pairs []productQuantity) (*CartView, error) {
	view := &CartView{Items: []CartLine{}}

	for _, pair := range pairs {
		product, err := u.productRepo.GetByID(ctx, pair.ProductID)
		if err != nil {
			if errors.Is(err, "NOT_FOUND") {
				logger.Warn("Cart references missing product %s", pair.ProductID)
				continue
			}
			return nil, err
		}

		line := CartLine{
			ProductID: product.ID,
			Title:     product.Title,
			Price:     product.Price,
			SellerID:  product.SellerID,
			Quantity:  pair.Quantity,
			Available: product.Purchasable(),
		}
		if len(product.Images) > 0 {
			line.Image = product.Images[0]
		}

		if line.Available {
			line.Subtotal = product.Price * float64(pair.Quantity)
			view.TotalItems += pair.Quantity
			view.TotalPrice += line.Subtotal
		}

		view.Items = append(view.Items, line)
	}

	return view, nil
}
