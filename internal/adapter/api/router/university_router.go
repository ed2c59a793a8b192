package router

import (
	"github.com/labstack/echo/v4"

	"campustrade/internal/adapter/api/handler"
)

func SetupUniversityRouter(e *echo.Echo) {
	universityHandler := handler.GetUniversityHandler()

	e.GET("/v1/universities", universityHandler.ListUniversities)
	e.GET("/v1/campuses", universityHandler.ListCampuses)
}
