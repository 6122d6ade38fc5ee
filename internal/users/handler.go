package users

import (
	"fmt"
	"net/http"
	"strconv"

	reasoncodes "github.com/OluSmartDev/3mtt-module3-miniprojects/pkg/reason_codes"
	"github.com/OluSmartDev/3mtt-module3-miniprojects/pkg/rest"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{Service: service}
}

// GetUsers godoc
// @Summary      List users
// @Description  Returns every user ordered by id
// @Tags         Users
// @Produce      json
// @Success      200  {array}   users.User
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]interface{}
// @Router       /users [get]
func (h *Handler) GetUsers(c *gin.Context) {
	users, err := h.Service.ListUsers(c.Request.Context())
	if err != nil {
		rest.RespondError(c, err)
		return
	}
	if len(users) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": emptyTableMessage})
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetUser godoc
// @Summary      Get user by ID
// @Tags         Users
// @Produce      json
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  users.User
// @Failure      400  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [get]
func (h *Handler) GetUser(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		rest.RespondError(c, err)
		return
	}

	user, err := h.Service.GetUser(c.Request.Context(), id)
	if err != nil {
		rest.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// CreateUser godoc
// @Summary      Create a user
// @Tags         Users
// @Accept       json
// @Produce      json
// @Param        body  body      users.CreateUserRequest  true  "User"
// @Success      201   {object}  users.User
// @Failure      400   {object}  map[string]interface{}
// @Failure      500   {object}  map[string]interface{}
// @Router       /users [post]
func (h *Handler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		rest.RespondError(c, reasoncodes.Validation("Invalid request body", rest.BindingDetails(err)))
		return
	}

	user, err := h.Service.CreateUser(c.Request.Context(), req)
	if err != nil {
		rest.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// UpdateUser godoc
// @Summary      Update a user
// @Description  Only the supplied fields are changed
// @Tags         Users
// @Accept       json
// @Produce      json
// @Param        id    path      int              true  "User ID"
// @Param        body  body      users.UserPatch  true  "Fields to change"
// @Success      200   {object}  users.User
// @Failure      400   {object}  map[string]interface{}
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]interface{}
// @Router       /users/{id} [put]
func (h *Handler) UpdateUser(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		rest.RespondError(c, err)
		return
	}

	var patch UserPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		rest.RespondError(c, reasoncodes.Validation("Invalid request body", rest.BindingDetails(err)))
		return
	}

	user, err := h.Service.UpdateUser(c.Request.Context(), id, patch)
	if err != nil {
		rest.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteUser godoc
// @Summary      Delete a user
// @Tags         Users
// @Produce      json
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [delete]
func (h *Handler) DeleteUser(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		rest.RespondError(c, err)
		return
	}

	if err := h.Service.DeleteUser(c.Request.Context(), id); err != nil {
		rest.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("User with ID %d has been successfully deleted", id)})
}

func (h *Handler) Routes() []rest.Route {
	return []rest.Route{
		rest.NewRoute(rest.GET, "users", "", h.GetUsers),
		rest.NewRoute(rest.GET, "users", "/:id", h.GetUser),
		rest.NewRoute(rest.POST, "users", "", h.CreateUser),
		rest.NewRoute(rest.PUT, "users", "/:id", h.UpdateUser),
		rest.NewRoute(rest.DELETE, "users", "/:id", h.DeleteUser),
	}
}

func parseID(c *gin.Context) (int, error) {
	raw := c.Param("id")
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, reasoncodes.Validation("Invalid request parameters", []rest.FieldError{
			rest.NewFieldError("params", "id", "id must be a positive integer", raw),
		})
	}
	return id, nil
}
