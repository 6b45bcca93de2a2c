package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/atinyakov/storefront/internal/models"
	"github.com/atinyakov/storefront/internal/repository"
)

// CustomerRepository defines the persistence operations
// required by the account service.
type CustomerRepository interface {
	// Create stores a new customer and returns it with its assigned id.
	// Returns repository.ErrEmailTaken for a duplicate e-mail address.
	Create(ctx context.Context, rec repository.CustomerRecord) (models.Customer, error)
	// ByEmail looks a customer up by e-mail address.
	ByEmail(ctx context.Context, email string) (repository.CustomerRecord, error)
	// ByID returns a customer's profile.
	ByID(ctx context.Context, id string) (models.Customer, error)
}

// SessionRepository defines the session operations
// required by the account service.
type SessionRepository interface {
	// Get returns the session with the given id.
	Get(ctx context.Context, id string) (repository.Session, bool)
	// Bind signs a customer in on a session.
	Bind(ctx context.Context, id, customerID string)
	// Unbind signs the session's customer out.
	Unbind(ctx context.Context, id string)
}

// AccountService implements registration, login and profile lookup.
type AccountService struct {
	customers CustomerRepository
	sessions  SessionRepository
	// cost is the bcrypt cost used for new password hashes.
	cost int
}

// NewAccountService constructs an AccountService using the provided repositories.
func NewAccountService(customers CustomerRepository, sessions SessionRepository) *AccountService {
	return &AccountService{customers: customers, sessions: sessions, cost: bcrypt.DefaultCost}
}

// registrationForm holds the trimmed sign-up fields under validation rules.
type registrationForm struct {
	FirstName string `validate:"min=1,max=32"`
	LastName  string `validate:"min=1,max=32"`
	Email     string `validate:"required,max=96,email"`
	Telephone string `validate:"min=3,max=32"`
	Password  string `validate:"min=4,max=20"`
}

// registrationMessages maps a registrationForm field to its form key and message.
var registrationMessages = map[string][2]string{
	"FirstName": {"firstname", "First Name must be between 1 and 32 characters!"},
	"LastName":  {"lastname", "Last Name must be between 1 and 32 characters!"},
	"Email":     {"email", "E-Mail Address does not appear to be valid!"},
	"Telephone": {"telephone", "Telephone must be between 3 and 32 characters!"},
	"Password":  {"password", "Password must be between 4 and 20 characters!"},
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func validateRegistration(r models.RegisterRequest) (ValidationError, error) {
	err := validate.Struct(registrationForm{
		FirstName: strings.TrimSpace(r.FirstName),
		LastName:  strings.TrimSpace(r.LastName),
		Email:     strings.TrimSpace(r.Email),
		Telephone: strings.TrimSpace(r.Telephone),
		Password:  strings.TrimSpace(r.Password),
	})
	if err == nil {
		return nil, nil
	}
	var fields validator.ValidationErrors
	if !errors.As(err, &fields) {
		return nil, fmt.Errorf("validate registration: %w", err)
	}

	errs := ValidationError{}
	for _, fe := range fields {
		if m, ok := registrationMessages[fe.Field()]; ok {
			errs[m[0]] = m[1]
		}
	}
	return errs, nil
}

// Register creates a customer account. Invalid input is reported as a
// ValidationError keyed by form field name; a duplicate e-mail is reported
// under "warning".
func (s *AccountService) Register(ctx context.Context, r models.RegisterRequest) (models.Customer, error) {
	errs, err := validateRegistration(r)
	if err != nil {
		return models.Customer{}, err
	}
	if len(errs) > 0 {
		return models.Customer{}, errs
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(r.Password), s.cost)
	if err != nil {
		return models.Customer{}, err
	}

	c, err := s.customers.Create(ctx, repository.CustomerRecord{
		Customer: models.Customer{
			FirstName: strings.TrimSpace(r.FirstName),
			LastName:  strings.TrimSpace(r.LastName),
			Email:     strings.TrimSpace(r.Email),
			Telephone: strings.TrimSpace(r.Telephone),
		},
		PasswordHash: hash,
	})
	if errors.Is(err, repository.ErrEmailTaken) {
		return models.Customer{}, ValidationError{"warning": "Warning: E-Mail Address is already registered!"}
	}
	return c, err
}

// Login checks the credentials and signs the customer in on session.
func (s *AccountService) Login(ctx context.Context, session, email, password string) (models.Customer, error) {
	rec, err := s.customers.ByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return models.Customer{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.Customer{}, err
	}
	if err := bcrypt.CompareHashAndPassword(rec.PasswordHash, []byte(password)); err != nil {
		return models.Customer{}, ErrInvalidCredentials
	}

	s.sessions.Bind(ctx, session, rec.ID)
	return rec.Customer, nil
}

// Logout signs session's customer out.
func (s *AccountService) Logout(ctx context.Context, session string) {
	s.sessions.Unbind(ctx, session)
}

// CustomerID returns the customer signed in on session, or ErrUnauthorized.
func (s *AccountService) CustomerID(ctx context.Context, session string) (string, error) {
	sess, ok := s.sessions.Get(ctx, session)
	if !ok || sess.CustomerID == "" {
		return "", ErrUnauthorized
	}
	return sess.CustomerID, nil
}

// Account returns the profile of the customer signed in on session.
func (s *AccountService) Account(ctx context.Context, session string) (models.Customer, error) {
	id, err := s.CustomerID(ctx, session)
	if err != nil {
		return models.Customer{}, err
	}
	c, err := s.customers.ByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return models.Customer{}, ErrUnauthorized
	}
	return c, err
}
