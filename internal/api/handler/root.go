package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Root handles GET / with a pointer to the interactive API docs.
//
// @Summary  API entry point
// @Tags     root
// @Produce  json
// @Success  200  {object}  messageResponse
// @Router   / [get]
func Root(c echo.Context) error {
	return c.JSON(http.StatusOK, messageResponse{Message: "To begin navigate to /docs"})
}
