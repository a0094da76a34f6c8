package forms

import "strings"

// MinPasswordLength is the shortest accepted password
const MinPasswordLength = 6

// LoginInput is the sign in form
type LoginInput struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required,min=6"`
}

// ValidateLogin trims and lower-cases the email, then checks both fields
func ValidateLogin(input LoginInput) (LoginInput, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if err := check(input); err != nil {
		return LoginInput{}, err
	}
	return input, nil
}
