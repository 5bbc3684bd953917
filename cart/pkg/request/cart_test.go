package request

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/arvandy/storefront/internal/validate"
)

func TestCartItemQuantityValidation(t *testing.T) {
	v := validate.New()
	productId := uuid.New()

	tests := []struct {
		name     string
		quantity int32
		wantErr  bool
	}{
		{name: "zero is rejected", quantity: 0, wantErr: true},
		{name: "negative is rejected", quantity: -3, wantErr: true},
		{name: "one is accepted", quantity: 1, wantErr: false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			addErr := v.Struct(AddCartItem{ProductID: productId, Quantity: test.quantity})
			updateErr := v.Struct(UpdateCartItem{Quantity: test.quantity})
			if test.wantErr {
				assert.Error(t, addErr)
				assert.Error(t, updateErr)
				return
			}
			assert.NoError(t, addErr)
			assert.NoError(t, updateErr)
		})
	}
}
