package handler

import (
	"github.com/labstack/echo/v4"

	"campustrade/internal/usecase"
	"campustrade/pkg/errors"
	"campustrade/pkg/response"
)

type CartHandler struct {
	cartUseCase *usecase.CartUseCase
}

func NewCartHandler(cartUseCase *usecase.CartUseCase) *CartHandler {
	return &CartHandler{
		cartUseCase: cartUseCase,
	}
}

type cartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

type cartQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) GetCart(c echo.Context) error {
	uid := c.Get("uid").(string)

	view, err := h.cartUseCase.GetCart(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, view)
}

func (h *CartHandler) AddItem(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req cartItemRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	if err := h.cartUseCase.AddItem(c.Request().Context(), uid, req.ProductID); err != nil {
		return response.Error(c, err)
	}

	view, err := h.cartUseCase.GetCart(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, view)
}

func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req cartQuantityRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := h.cartUseCase.UpdateQuantity(c.Request().Context(), uid, c.Param("productId"), req.Quantity); err != nil {
		return response.Error(c, err)
	}

	view, err := h.cartUseCase.GetCart(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, view)
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.cartUseCase.RemoveItem(c.Request().Context(), uid, c.Param("productId")); err != nil {
		return response.Error(c, err)
	}

	view, err := h.cartUseCase.GetCart(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, view)
}

func (h *CartHandler) ClearCart(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.cartUseCase.Clear(c.Request().Context(), uid); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"message": "Cart cleared"})
}

func (h *CartHandler) MergeGuestCart(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req struct {
		CartToken string `json:"cart_token" validate:"required"`
	}
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	if err := h.cartUseCase.MergeGuestCart(c.Request().Context(), uid, req.CartToken); err != nil {
		return response.Error(c, err)
	}

	view, err := h.cartUseCase.GetCart(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, view)
}

// Guest cart endpoints. The client identifies its cart with an opaque token
// it generated, carried in the X-Cart-Token header.

func guestToken(c echo.Context) (string, error) {
	token := c.Request().Header.Get("X-Cart-Token")
	if token == "" {
		return "", errors.BadRequest("X-Cart-Token header is required", nil)
	}
	return token, nil
}

func (h *CartHandler) GetGuestCart(c echo.Context) error {
	token, err := guestToken(c)
	if err != nil {
		return response.Error(c, err)
	}

	view, err := h.cartUseCase.GetGuestCart(c.Request().Context(), token)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, view)
}

func (h *CartHandler) GuestAddItem(c echo.Context) error {
	token, err := guestToken(c)
	if err != nil {
		return response.Error(c, err)
	}

	var req cartItemRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	if err := h.cartUseCase.GuestAddItem(c.Request().Context(), token, req.ProductID); err != nil {
		return response.Error(c, err)
	}

	view, err := h.cartUseCase.GetGuestCart(c.Request().Context(), token)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, view)
}

func (h *CartHandler) GuestUpdateQuantity(c echo.Context) error {
	token, err := guestToken(c)
	if err != nil {
		return response.Error(c, err)
	}

	var req cartQuantityRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := h.cartUseCase.GuestUpdateQuantity(c.Request().Context(), token, c.Param("productId"), req.Quantity); err != nil {
		return response.Error(c, err)
	}

	view, err := h.cartUseCase.GetGuestCart(c.Request().Context(), token)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, view)
}

func (h *CartHandler) GuestRemoveItem(c echo.Context) error {
	token, err := guestToken(c)
	if err != nil {
		return response.Error(c, err)
	}

	if err := h.cartUseCase.GuestRemoveItem(c.Request().Context(), token, c.Param("productId")); err != nil {
		return response.Error(c, err)
	}

	view, err := h.cartUseCase.GetGuestCart(c.Request().Context(), token)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, view)
}

func (h *CartHandler) GuestClearCart(c echo.Context) error {
	token, err := guestToken(c)
	if err != nil {
		return response.Error(c, err)
	}

	if err := h.cartUseCase.GuestClear(c.Request().Context(), token); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"message": "Cart cleared"})
}
