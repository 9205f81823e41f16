package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Weights for the NIP control digit, per the Ministry of Finance algorithm.
var nipWeights = [9]int{6, 5, 7, 2, 3, 4, 5, 6, 7}

// nipChecksum validates the control digit of a Polish NIP. A checksum of 10
// never occurs in a valid NIP.
func nipChecksum(fl validator.FieldLevel) bool {
	nip := fl.Field().String()
	if nip == "" {
		return true
	}
	if len(nip) != 10 {
		return false
	}
	sum := 0
	for i, w := range nipWeights {
		d := int(nip[i] - '0')
		if d < 0 || d > 9 {
			return false
		}
		sum += d * w
	}
	if int(nip[9]-'0') > 9 {
		return false
	}
	check := sum % 11
	return check != 10 && check == int(nip[9]-'0')
}

// RegisterValidators installs domain validators on gin's binding engine so
// request DTOs can use them in binding tags.
func RegisterValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("nip", nipChecksum)
	}
}
