package customers

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidInput       = errors.New("missing or invalid registration data")
)

// Auth ties the repo, the session store and the admin whitelist together
// for the login/registration flow.
type Auth struct {
	Repo     *Repo
	Sessions *Sessions
	Admins   Whitelist
}

type RegisterInput struct {
	FirstName  string
	LastName   string
	Email      string
	Password   string
	AreaID     int64
	CEP        string
	Street     string
	Number     *int
	Complement string
	Reference  string
}

// Register validates the input, hashes the password and creates the
// account. The CEP, when present, must be the 8 bare digits.
func (a *Auth) Register(ctx context.Context, in RegisterInput) (int64, error) {
	first := strings.TrimSpace(in.FirstName)
	email := strings.TrimSpace(in.Email)
	street := strings.TrimSpace(in.Street)
	cep := strings.TrimSpace(in.CEP)

	if first == "" || email == "" || street == "" || in.Password == "" || in.AreaID <= 0 {
		return 0, ErrInvalidInput
	}
	if cep != "" && len(cep) != 8 {
		return 0, fmt.Errorf("%w: cep must have 8 digits", ErrInvalidInput)
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return 0, err
	}

	return a.Repo.Register(ctx, RegisterRecord{
		FirstName:    first,
		LastName:     strings.TrimSpace(in.LastName),
		Email:        email,
		PasswordHash: hash,
		AreaID:       in.AreaID,
		CEP:          optional(cep),
		Street:       street,
		Number:       in.Number,
		Complement:   optional(strings.TrimSpace(in.Complement)),
		Reference:    optional(strings.TrimSpace(in.Reference)),
	})
}

// Login checks the credentials and opens a session. The error does not say
// which of email or password was wrong.
func (a *Auth) Login(ctx context.Context, email, password string) (token string, customerID int64, err error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", 0, ErrInvalidCredentials
	}

	c, err := a.Repo.FindByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return "", 0, ErrInvalidCredentials
	}
	if err != nil {
		return "", 0, err
	}
	if !CheckPassword(password, c.PasswordHash) {
		return "", 0, ErrInvalidCredentials
	}

	token, err = a.Sessions.Create(ctx, c.ID)
	if err != nil {
		return "", 0, err
	}
	return token, c.ID, nil
}

// IsAdmin reports whether the customer's email is on the admin whitelist.
func (a *Auth) IsAdmin(ctx context.Context, customerID int64) (bool, error) {
	email, err := a.Repo.Email(ctx, customerID)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return a.Admins.Allowed(email), nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
