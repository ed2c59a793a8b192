package usecase

import (
	"context"

	"campustrade/internal/domain/entity"
	"campustrade/internal/domain/repository"
	ws "campustrade/internal/infrastructure/websocket"
	"campustrade/pkg/errors"
)

type PurchaseRequestUseCase struct {
	requestRepo repository.PurchaseRequestRepository
	productRepo repository.ProductRepository
	notifier    ChatNotifier
	limiter     RateLimiter
}

func NewPurchaseRequestUseCase(
	requestRepo repository.PurchaseRequestRepository,
	productRepo repository.ProductRepository,
	notifier ChatNotifier,
	limiter RateLimiter,
) *PurchaseRequestUseCase {
	return &PurchaseRequestUseCase{
		requestRepo: requestRepo,
		productRepo: productRepo,
		notifier:    notifier,
		limiter:     limiter,
	}
}

// Create records the buyer's interest and pings the seller. No inventory or
// money moves; the exchange happens in person.
func (u *PurchaseRequestUseCase) Create(ctx context.Context, buyerID, productID string) (*entity.PurchaseRequest, error) {
	product, err := u.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if !product.Purchasable() {
		return nil, errors.BadRequest("This listing is no longer available", nil)
	}
	if product.SellerID == buyerID {
		return nil, errors.BadRequest("You cannot request your own listing", nil)
	}

	if allowed, _ := u.limiter.Allow(buyerID, "purchase_request"); !allowed {
		return nil, errors.TooManyRequests("You are sending requests too quickly")
	}

	req := &entity.PurchaseRequest{
		ProductID: productID,
		BuyerID:   buyerID,
		SellerID:  product.SellerID,
	}

	if err := u.requestRepo.Create(ctx, req); err != nil {
		return nil, err
	}

	u.notifier.SendToUser(product.SellerID, ws.Event{
		Type: ws.EventConversationUpdate,
		Payload: map[string]interface{}{
			"kind":       "purchase_request",
			"product_id": productID,
			"buyer_id":   buyerID,
		},
	})

	return req, nil
}

// ListForSeller returns requests received against the caller's listings.
func (u *PurchaseRequestUseCase) ListForSeller(ctx context.Context, sellerID string, page, pageSize int) ([]*entity.PurchaseRequest, int64, error) {
	offset := (page - 1) * pageSize
	return u.requestRepo.ListBySeller(ctx, sellerID, pageSize, offset)
}
