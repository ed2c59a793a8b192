package handler

import (
	"github.com/labstack/echo/v4"

	"campustrade/internal/usecase"
	"campustrade/pkg/logger"
	"campustrade/pkg/response"
)

type AuthHandler struct {
	authUseCase *usecase.AuthUseCase
	cartUseCase *usecase.CartUseCase
}

func NewAuthHandler(authUseCase *usecase.AuthUseCase, cartUseCase *usecase.CartUseCase) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
		cartUseCase: cartUseCase,
	}
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req usecase.RegisterInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.authUseCase.Register(c.Request().Context(), req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, result)
}

type loginRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	CartToken string `json:"cart_token,omitempty"`
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.authUseCase.Login(c.Request().Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return response.Error(c, err)
	}

	// Fold the pre-login cart into the account. Login must not fail over a
	// cart problem, so merge errors are only logged.
	if req.CartToken != "" {
		if err := h.cartUseCase.MergeGuestCart(c.Request().Context(), result.User.ID, req.CartToken); err != nil {
			logger.Error("Guest cart merge failed for %s: %v", result.User.ID, err)
		}
	}

	return response.Success(c, result)
}
