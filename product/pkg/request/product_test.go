package request

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arvandy/storefront/internal/validate"
)

func TestUpdateStockValidation(t *testing.T) {
	v := validate.New()

	zero := int32(0)
	assert.NoError(t, v.Struct(UpdateStock{QuantityChange: &zero}))

	negative := int32(-4)
	assert.NoError(t, v.Struct(UpdateStock{QuantityChange: &negative}))

	// The field itself is mandatory.
	assert.Error(t, v.Struct(UpdateStock{}))
}
