package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campustrade/internal/domain/entity"
	"campustrade/pkg/errors"
)

func newCheckoutFixture(products ...*entity.Product) (*CheckoutUseCase, *CartUseCase, *fakeOrderRepo, *fakeNotifier) {
	cartRepo := newFakeCartRepo()
	productRepo := newFakeProductRepo(products...)
	orderRepo := &fakeOrderRepo{}
	requestRepo := &fakePurchaseRequestRepo{}
	notifier := &fakeNotifier{}

	checkout := NewCheckoutUseCase(cartRepo, productRepo, orderRepo, requestRepo, notifier)
	cart := NewCartUseCase(cartRepo, newFakeGuestCartRepo(), productRepo)

	return checkout, cart, orderRepo, notifier
}

func futureMeetup() PlaceOrderInput {
	return PlaceOrderInput{
		MeetupLocation: "Library entrance",
		MeetupDate:     time.Now().Add(48 * time.Hour),
	}
}

func TestPlaceOrderSnapshotsCartAndClearsIt(t *testing.T) {
	checkout, cart, orderRepo, _ := newCheckoutFixture(
		activeProduct("p1", "seller-1", 5000),
		activeProduct("p2", "seller-2", 3000),
	)
	ctx := context.Background()

	require.NoError(t, cart.AddItem(ctx, "buyer-1", "p1"))
	require.NoError(t, cart.AddItem(ctx, "buyer-1", "p1"))
	require.NoError(t, cart.AddItem(ctx, "buyer-1", "p2"))

	order, err := checkout.PlaceOrder(ctx, "buyer-1", futureMeetup())
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusPlaced, order.Status)
	assert.Equal(t, 13000.0, order.TotalPrice)
	assert.Len(t, order.Items, 2)
	assert.Equal(t, "Library entrance", order.MeetupLocation)

	view, err := cart.GetCart(ctx, "buyer-1")
	require.NoError(t, err)
	assert.Empty(t, view.Items)

	require.Len(t, orderRepo.orders, 1)
}

func TestPlaceOrderRejectsEmptyCart(t *testing.T) {
	checkout, _, _, _ := newCheckoutFixture()

	_, err := checkout.PlaceOrder(context.Background(), "buyer-1", futureMeetup())
	require.Error(t, err)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestPlaceOrderRejectsPastMeetupDate(t *testing.T) {
	checkout, cart, _, _ := newCheckoutFixture(activeProduct("p1", "seller-1", 5000))
	ctx := context.Background()

	require.NoError(t, cart.AddItem(ctx, "buyer-1", "p1"))

	input := futureMeetup()
	input.MeetupDate = time.Now().Add(-time.Hour)

	_, err := checkout.PlaceOrder(ctx, "buyer-1", input)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "VALIDATION_ERROR"))
}

func TestPlaceOrderDropsLinesThatWentUnavailable(t *testing.T) {
	p1 := activeProduct("p1", "seller-1", 5000)
	p2 := activeProduct("p2", "seller-2", 3000)
	checkout, cart, _, _ := newCheckoutFixture(p1, p2)
	ctx := context.Background()

	require.NoError(t, cart.AddItem(ctx, "buyer-1", "p1"))
	require.NoError(t, cart.AddItem(ctx, "buyer-1", "p2"))

	p2.Status = entity.ProductStatusSold

	order, err := checkout.PlaceOrder(ctx, "buyer-1", futureMeetup())
	require.NoError(t, err)

	require.Len(t, order.Items, 1)
	assert.Equal(t, "p1", order.Items[0].ProductID)
	assert.Equal(t, 5000.0, order.TotalPrice)
}

func TestPlaceOrderRejectsWhenNothingLeftToBuy(t *testing.T) {
	p1 := activeProduct("p1", "seller-1", 5000)
	checkout, cart, _, _ := newCheckoutFixture(p1)
	ctx := context.Background()

	require.NoError(t, cart.AddItem(ctx, "buyer-1", "p1"))
	p1.Status = entity.ProductStatusRemoved

	_, err := checkout.PlaceOrder(ctx, "buyer-1", futureMeetup())
	require.Error(t, err)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestGetOrderEnforcesOwnership(t *testing.T) {
	checkout, cart, orderRepo, _ := newCheckoutFixture(activeProduct("p1", "seller-1", 5000))
	ctx := context.Background()

	require.NoError(t, cart.AddItem(ctx, "buyer-1", "p1"))
	_, err := checkout.PlaceOrder(ctx, "buyer-1", futureMeetup())
	require.NoError(t, err)

	_, err = checkout.GetOrder(ctx, "someone-else", orderRepo.orders[0].ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	order, err := checkout.GetOrder(ctx, "buyer-1", orderRepo.orders[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "buyer-1", order.BuyerID)
}
