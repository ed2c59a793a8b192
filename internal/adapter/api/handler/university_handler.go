package handler

import (
	"github.com/labstack/echo/v4"

	"campustrade/internal/usecase"
	"campustrade/pkg/response"
)

type UniversityHandler struct {
	universityUseCase *usecase.UniversityUseCase
}

func NewUniversityHandler(universityUseCase *usecase.UniversityUseCase) *UniversityHandler {
	return &UniversityHandler{
		universityUseCase: universityUseCase,
	}
}

func (h *UniversityHandler) ListUniversities(c echo.Context) error {
	universities, err := h.universityUseCase.ListUniversities(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, universities)
}

func (h *UniversityHandler) ListCampuses(c echo.Context) error {
	campuses, err := h.universityUseCase.ListCampuses(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, campuses)
}
