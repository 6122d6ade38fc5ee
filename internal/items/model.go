// Package items is the in-memory items CRUD API.
package items

import (
	"html"
	"strings"

	"github.com/OluSmartDev/3mtt-module3-miniprojects/pkg/utilities"
)

type Item struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type CreateItemRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
}

// ItemPatch is a partial update. Absent fields keep their stored value.
type ItemPatch struct {
	Name        utilities.Optional[string] `json:"name" swaggertype:"string"`
	Description utilities.Optional[string] `json:"description" swaggertype:"string"`
}

func (p ItemPatch) apply(item Item) Item {
	if p.Name.Present() {
		item.Name = sanitize(p.Name.Value)
	}
	if p.Description.Present() {
		item.Description = sanitize(p.Description.Value)
	}
	return item
}

// sanitize trims and HTML-escapes user supplied text before it is stored.
func sanitize(s string) string {
	return html.EscapeString(strings.TrimSpace(s))
}
