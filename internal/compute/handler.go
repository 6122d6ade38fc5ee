package compute

import (
	"net/http"

	"github.com/OluSmartDev/3mtt-module3-miniprojects/pkg/rest"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Pool  *Pool
	Limit int64
}

func NewHandler(pool *Pool) *Handler {
	return &Handler{Pool: pool, Limit: DefaultLimit}
}

// Compute godoc
// @Summary      Run the heavy computation
// @Description  Sums 1..10^7 on the worker pool
// @Tags         Compute
// @Produce      json
// @Success      200  {object}  map[string]int64
// @Failure      503  {object}  map[string]string
// @Router       /compute [get]
func (h *Handler) Compute(c *gin.Context) {
	limit := h.Limit
	result, err := h.Pool.Submit(c.Request.Context(), func() int64 {
		return HeavyComputation(limit)
	})
	if err != nil {
		rest.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": result})
}

// NotFound answers every other path with plain text.
func NotFound(c *gin.Context) {
	c.String(http.StatusNotFound, "Route not found")
}

func (h *Handler) Routes() []rest.Route {
	return []rest.Route{
		rest.NewRoute(rest.GET, "", "compute", h.Compute),
	}
}
