package usecase

import (
	"context"
	"time"

	"campustrade/internal/domain/entity"
	"campustrade/internal/domain/repository"
	ws "campustrade/internal/infrastructure/websocket"
	"campustrade/pkg/errors"
	"campustrade/pkg/logger"
)

type CheckoutUseCase struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	requestRepo repository.PurchaseRequestRepository
	notifier    ChatNotifier
}

func NewCheckoutUseCase(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	requestRepo repository.PurchaseRequestRepository,
	notifier ChatNotifier,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		requestRepo: requestRepo,
		notifier:    notifier,
	}
}

type PlaceOrderInput struct {
	MeetupLocation string    `json:"meetup_location" validate:"required,min=3,max=200"`
	MeetupDate     time.Time `json:"meetup_date" validate:"required"`
	Notes          string    `json:"notes" validate:"omitempty,max=500"`
}

// PlaceOrder turns the user's cart into an order carrying the meetup details.
// The cart is re-read and re-priced here; whatever the client showed during
// review has no authority. Lines whose listing went sold or removed since
// then are dropped, and an order with nothing left to buy is rejected.
func (u *CheckoutUseCase) PlaceOrder(ctx context.Context, buyerID string, input PlaceOrderInput) (*entity.Order, error) {
	if !input.MeetupDate.After(time.Now()) {
		return nil, errors.Validation("meetup_date", "meetup date must be in the future")
	}

	cartItems, err := u.cartRepo.ListByUser(ctx, buyerID)
	if err != nil {
		return nil, err
	}
	if len(cartItems) == 0 {
		return nil, errors.BadRequest("Your cart is empty", nil)
	}

	var orderItems []entity.OrderItem
	var total float64
	sellers := make(map[string]bool)

	for _, item := range cartItems {
		product, err := u.productRepo.GetByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, "NOT_FOUND") {
				continue
			}
			return nil, err
		}
		if !product.Purchasable() {
			continue
		}

		orderItems = append(orderItems, entity.OrderItem{
			ProductID: product.ID,
			Title:     product.Title,
			Price:     product.Price,
			Quantity:  item.Quantity,
			SellerID:  product.SellerID,
		})
		total += product.Price * float64(item.Quantity)
		sellers[product.SellerID] = true
	}

	if len(orderItems) == 0 {
		return nil, errors.BadRequest("None of the items in your cart are still available", nil)
	}

	order := &entity.Order{
		BuyerID:        buyerID,
		Items:          orderItems,
		TotalPrice:     total,
		MeetupLocation: input.MeetupLocation,
		MeetupDate:     input.MeetupDate,
		Notes:          input.Notes,
		Status:         entity.OrderStatusPlaced,
	}

	if err := u.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	if err := u.cartRepo.DeleteAll(ctx, buyerID); err != nil {
		// The order exists; a stale cart is recoverable, so log and move on.
		logger.Error("Failed to clear cart for %s after order %s: %v", buyerID, order.ID, err)
	}

	u.notifySellers(buyerID, order)

	return order, nil
}

// notifySellers records a purchase request per ordered item and pings each
// seller's live connections. Best effort on a detached context so checkout
// never waits on it.
func (u *CheckoutUseCase) notifySellers(buyerID string, order *entity.Order) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		for _, item := range order.Items {
			req := &entity.PurchaseRequest{
				ProductID: item.ProductID,
				BuyerID:   buyerID,
				SellerID:  item.SellerID,
			}
			if err := u.requestRepo.Create(ctx, req); err != nil {
				logger.Error("Failed to record purchase request for %s: %v", item.ProductID, err)
			}
		}

		seen := make(map[string]bool)
		for _, item := range order.Items {
			if seen[item.SellerID] {
				continue
			}
			seen[item.SellerID] = true
			u.notifier.SendToUser(item.SellerID, ws.Event{
				Type: ws.EventConversationUpdate,
				Payload: map[string]interface{}{
					"kind":     "order_placed",
					"order_id": order.ID,
					"buyer_id": buyerID,
				},
			})
		}
	}()
}

func (u *CheckoutUseCase) GetOrder(ctx context.Context, userID, orderID string) (*entity.Order, error) {
	order, err := u.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.BuyerID != userID {
		return nil, errors.Forbidden("You do not have access to this order", nil)
	}

	return order, nil
}

func (u *CheckoutUseCase) ListMyOrders(ctx context.Context, buyerID string, page, pageSize int) ([]*entity.Order, int64, error) {
	offset := (page - 1) * pageSize
	return u.orderRepo.ListByBuyer(ctx, buyerID, pageSize, offset)
}
