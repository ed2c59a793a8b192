package handler

import (
	"github.com/labstack/echo/v4"

	"campustrade/internal/usecase"
	"campustrade/pkg/response"
	"campustrade/pkg/utils"
)

type PurchaseRequestHandler struct {
	purchaseRequestUseCase *usecase.PurchaseRequestUseCase
}

func NewPurchaseRequestHandler(purchaseRequestUseCase *usecase.PurchaseRequestUseCase) *PurchaseRequestHandler {
	return &PurchaseRequestHandler{
		purchaseRequestUseCase: purchaseRequestUseCase,
	}
}

type purchaseRequestRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

func (h *PurchaseRequestHandler) Create(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req purchaseRequestRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	created, err := h.purchaseRequestUseCase.Create(c.Request().Context(), uid, req.ProductID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, created)
}

func (h *PurchaseRequestHandler) ListReceived(c echo.Context) error {
	uid := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	requests, total, err := h.purchaseRequestUseCase.ListForSeller(c.Request().Context(), uid, pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, requests, total, pagination.Page, pagination.PageSize)
}
