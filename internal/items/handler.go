package items

import (
	"fmt"
	"net/http"
	"strings"

	reasoncodes "github.com/OluSmartDev/3mtt-module3-miniprojects/pkg/reason_codes"
	"github.com/OluSmartDev/3mtt-module3-miniprojects/pkg/rest"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type Handler struct {
	Store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{Store: store}
}

// GetItems godoc
// @Summary      List items
// @Tags         Items
// @Produce      json
// @Success      200  {array}  items.Item
// @Router       /items [get]
func (h *Handler) GetItems(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.List())
}

// GetItem godoc
// @Summary      Get item by ID
// @Tags         Items
// @Produce      json
// @Param        id   path      string  true  "Item ID (UUID)"
// @Success      200  {object}  items.Item
// @Failure      400  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /items/{id} [get]
func (h *Handler) GetItem(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		rest.RespondError(c, err)
		return
	}

	item, err := h.Store.Get(id)
	if err != nil {
		rest.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// CreateItem godoc
// @Summary      Create an item
// @Tags         Items
// @Accept       json
// @Produce      json
// @Param        body  body      items.CreateItemRequest  true  "Item"
// @Success      201   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]interface{}
// @Router       /items [post]
func (h *Handler) CreateItem(c *gin.Context) {
	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		rest.RespondError(c, reasoncodes.Validation("Invalid request body", rest.BindingDetails(err)))
		return
	}

	var details []rest.FieldError
	if strings.TrimSpace(req.Name) == "" {
		details = append(details, rest.NewFieldError("body", "name", "name is required", req.Name))
	}
	if strings.TrimSpace(req.Description) == "" {
		details = append(details, rest.NewFieldError("body", "description", "description is required", req.Description))
	}
	if len(details) > 0 {
		rest.RespondError(c, reasoncodes.Validation("Invalid request body", details))
		return
	}

	item := h.Store.Create(req.Name, req.Description)
	c.JSON(http.StatusCreated, gin.H{
		"message": fmt.Sprintf("An item named %s was created successfully", item.Name),
		"item":    item,
	})
}

// UpdateItem godoc
// @Summary      Update an item
// @Description  Only the supplied fields are changed
// @Tags         Items
// @Accept       json
// @Produce      json
// @Param        id    path      string           true  "Item ID (UUID)"
// @Param        body  body      items.ItemPatch  true  "Fields to change"
// @Success      200   {object}  items.Item
// @Failure      400   {object}  map[string]interface{}
// @Failure      404   {object}  map[string]string
// @Router       /items/{id} [put]
func (h *Handler) UpdateItem(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		rest.RespondError(c, err)
		return
	}

	var patch ItemPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		rest.RespondError(c, reasoncodes.Validation("Invalid request body", rest.BindingDetails(err)))
		return
	}
	if err := validatePatch(patch); err != nil {
		rest.RespondError(c, err)
		return
	}

	item, err := h.Store.Update(id, patch)
	if err != nil {
		rest.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteItem godoc
// @Summary      Delete an item
// @Tags         Items
// @Produce      json
// @Param        id   path      string  true  "Item ID (UUID)"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /items/{id} [delete]
func (h *Handler) DeleteItem(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		rest.RespondError(c, err)
		return
	}

	if err := h.Store.Delete(id); err != nil {
		rest.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("item with ID %s has been successfully deleted", id)})
}

func (h *Handler) Routes() []rest.Route {
	return []rest.Route{
		rest.NewRoute(rest.GET, "items", "", h.GetItems),
		rest.NewRoute(rest.GET, "items", "/:id", h.GetItem),
		rest.NewRoute(rest.POST, "items", "", h.CreateItem),
		rest.NewRoute(rest.PUT, "items", "/:id", h.UpdateItem),
		rest.NewRoute(rest.DELETE, "items", "/:id", h.DeleteItem),
	}
}

func parseID(c *gin.Context) (string, error) {
	id := c.Param("id")
	if err := validate.Var(id, "required,uuid"); err != nil {
		return "", reasoncodes.Validation("Invalid request parameters", []rest.FieldError{
			rest.NewFieldError("params", "id", "Invalid item id", id),
		})
	}
	return id, nil
}

func validatePatch(p ItemPatch) error {
	var details []rest.FieldError
	check := func(field string, set, null bool, value string) {
		if !set {
			return
		}
		if null || strings.TrimSpace(value) == "" {
			details = append(details, rest.NewFieldError("body", field, field+" is required", value))
		}
	}
	check("name", p.Name.Set, p.Name.Null, p.Name.Value)
	check("description", p.Description.Set, p.Description.Null, p.Description.Value)

	if len(details) > 0 {
		return reasoncodes.Validation("Invalid request body", details)
	}
	if !p.Name.Set && !p.Description.Set {
		return reasoncodes.NoFieldsProvided("At least one field (name or description) must be provided for update.")
	}
	return nil
}
