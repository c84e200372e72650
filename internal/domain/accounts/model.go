package accounts

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/medrec/medrec/internal/platform/web"
)

// User maps to the users table. The password hash never leaves the server.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// RegisterInput is the registration request body. Password2 is the
// confirmation field; the two must match.
type RegisterInput struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
}

func (in *RegisterInput) Validate() *web.ValidationError {
	errs := web.NewValidationError()

	if strings.TrimSpace(in.Username) == "" {
		errs.Add("username", "this field is required")
	}
	if strings.TrimSpace(in.Email) == "" {
		errs.Add("email", "this field is required")
	} else if !strings.Contains(in.Email, "@") {
		errs.Add("email", "enter a valid email address")
	}
	if in.Password == "" {
		errs.Add("password", "this field is required")
	} else if len(in.Password) < 8 {
		errs.Add("password", "password must be at least 8 characters")
	}
	if in.Password2 == "" {
		errs.Add("password2", "this field is required")
	}
	if in.Password != "" && in.Password2 != "" && in.Password != in.Password2 {
		errs.Add("password", "password fields didn't match")
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

// LoginInput is the credential exchange request body.
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RefreshInput is the token refresh request body.
type RefreshInput struct {
	Refresh string `json:"refresh"`
}
