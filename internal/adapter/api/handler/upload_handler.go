package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"campustrade/internal/usecase"
	"campustrade/pkg/errors"
	"campustrade/pkg/response"
)

type UploadHandler struct {
	uploadUseCase *usecase.UploadUseCase
}

func NewUploadHandler(uploadUseCase *usecase.UploadUseCase) *UploadHandler {
	return &UploadHandler{
		uploadUseCase: uploadUseCase,
	}
}

// UploadProductImages accepts multipart form files under "images". Uploads
// happen before the listing exists, so the path segment is a fresh draft ID
// unless the client passes product_id for an existing listing.
func (h *UploadHandler) UploadProductImages(c echo.Context) error {
	uid := c.Get("uid").(string)

	form, err := c.MultipartForm()
	if err != nil {
		return response.Error(c, errors.BadRequest("Expected multipart form data", err))
	}

	files := form.File["images"]
	if len(files) == 0 {
		return response.Error(c, errors.BadRequest("No files provided under 'images'", nil))
	}

	productID := c.FormValue("product_id")
	if productID == "" {
		productID = uuid.New().String()
	}

	uploaded, err := h.uploadUseCase.UploadProductImages(c.Request().Context(), uid, productID, files)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, map[string]interface{}{
		"product_id": productID,
		"images":     uploaded,
	})
}
