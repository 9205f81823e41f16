package handlers

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNIPChecksum(t *testing.T) {
	v := validator.New()
	require.NoError(t, v.RegisterValidation("nip", nipChecksum))

	tests := []struct {
		name  string
		nip   string
		valid bool
	}{
		{"valid control digit", "5260250274", true},
		{"wrong control digit", "5260250275", false},
		{"checksum of 10 is never valid", "1234567890", false},
		{"too short", "526025027", false},
		{"non-digit characters", "52602502ab", false},
		{"empty passes, omitempty decides", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Var(tt.nip, "nip")
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
