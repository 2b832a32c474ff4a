package customer

import (
	"context"
	"strings"

	"storelib/internal/domain"
	custrepo "storelib/internal/repository/customer"
)

const maxPhoneLen = 10

// Service registers and looks up shoppers.
type Service struct {
	repo custrepo.Repository
}

func New(repo custrepo.Repository) *Service {
	return &Service{repo: repo}
}

// RegisterInput captures fields expected by the registration endpoint.
type RegisterInput struct {
	UserID string  `json:"userId"`
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Phone  *string `json:"phone"`
}

// Register creates the customer bound to an external user id.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*domain.Customer, error) {
	userID := strings.TrimSpace(in.UserID)
	if userID == "" {
		return nil, domain.Invalid("userId required")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("name required")
	}
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" {
		return nil, domain.Invalid("email required")
	}
	phone, err := normalizePhone(in.Phone)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, domain.Customer{
		UserID: userID,
		Name:   name,
		Email:  email,
		Phone:  phone,
	})
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Customer, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByUserID(ctx context.Context, userID string) (*domain.Customer, error) {
	return s.repo.GetByUserID(ctx, userID)
}

// Delete removes the customer with their carts and order history. Orders and checkout
// snapshots stay, detached from the customer.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func normalizePhone(p *string) (*string, error) {
	if p == nil {
		return nil, nil
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil, nil
	}
	if len(v) > maxPhoneLen {
		return nil, domain.Invalid("phone must be at most %d characters", maxPhoneLen)
	}
	return &v, nil
}
