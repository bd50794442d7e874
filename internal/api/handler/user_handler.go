package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/useraccounts/user-service/internal/core/ports"
)

// UserHandler handles HTTP requests for the user directory.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Create handles POST /user/.
//
// @Summary      Create a new user
// @Description  The role of a new user is always "User"; any supplied role is ignored.
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        body  body      createUserRequest  true  "User details"
// @Success      201   {object}  domain.BasicUser
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /user/ [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.service.Create(c.Request().Context(), toCreateInput(req))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, user)
}

// List handles GET /user/.
//
// @Summary      List users
// @Tags         user
// @Produce      json
// @Success      200  {array}   domain.BasicUser
// @Failure      500  {object}  errorResponse
// @Router       /user/ [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, users)
}

// Get handles GET /user/:id.
//
// @Summary      Get a single user by id
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  domain.User
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /user/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	caller, err := ctxUser(c)
	if err != nil {
		return err
	}

	user, err := h.service.GetByID(c.Request().Context(), c.Param("id"), caller)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, user)
}

// Update handles PUT /user/. Callers may only update their own record.
//
// @Summary      Update the logged in user
// @Tags         user
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateUserRequest  true  "Fields to change"
// @Success      200   {object}  domain.BasicUser
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /user/ [put]
func (h *UserHandler) Update(c echo.Context) error {
	caller, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.service.UpdateSelf(c.Request().Context(), toUpdateInput(req), caller)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, user)
}

// Delete handles DELETE /user/:id.
//
// @Summary      Delete a user
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /user/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	caller, err := ctxUser(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("id"), caller); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "User deleted."})
}

// Me handles GET /user/me/.
//
// @Summary      Current user
// @Description  Check the bearer token and return the logged in user's details.
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.BasicUser
// @Failure      401  {object}  errorResponse
// @Router       /user/me/ [get]
func (h *UserHandler) Me(c echo.Context) error {
	caller, err := ctxUser(c)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, h.service.ReadSelf(caller))
}
