package request

import (
	"github.com/google/uuid"
)

type AddWishlistItem struct {
	ProductID uuid.UUID `validate:"required" json:"product"`
}
