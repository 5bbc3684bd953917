package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arvandy/storefront/user/pkg/request"
)

func TestPasswordRule(t *testing.T) {
	validator := New()

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{name: "letters and digits", password: "sup3rsecret", wantErr: false},
		{name: "too short", password: "a1b2c3", wantErr: true},
		{name: "letters only", password: "onlyletters", wantErr: true},
		{name: "digits only", password: "1234567890", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.Struct(request.Register{
				Username:        "ada",
				Email:           "ada@example.com",
				Password:        tt.password,
				PasswordConfirm: tt.password,
			})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRegisterPasswordConfirmMismatch(t *testing.T) {
	validator := New()

	err := validator.Struct(request.Register{
		Username:        "ada",
		Email:           "ada@example.com",
		Password:        "sup3rsecret",
		PasswordConfirm: "d1fferentsecret",
	})
	assert.Error(t, err)
}
