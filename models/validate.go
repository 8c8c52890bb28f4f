// File: models/validate.go
package models

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// IsValidURL reports whether s is empty or a well-formed http(s) URL.
// Link fields accept empty values; only non-empty garbage is flagged.
func IsValidURL(s string) bool {
	if s == "" {
		return true
	}
	return validate.Var(s, "http_url") == nil
}
