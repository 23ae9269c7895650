// Package contact submits lead forms to the accounts API.
package contact

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/somnath11som/webeF/internal/domain"
	"github.com/somnath11som/webeF/internal/remote"
	"go.uber.org/zap"
)

// SuccessMessage is shown to the visitor after an accepted lead.
const SuccessMessage = "We will get back to you within 1 hour."

var (
	ErrMissingFields  = errors.New("name, email and message are required")
	ErrUnknownService = errors.New("unknown service")
	ErrRejected       = errors.New("contact request rejected")
)

// Lead is the contact form.
type Lead struct {
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone"`
	Company     string   `json:"company"`
	ProjectType string   `json:"project_type"`
	Budget      string   `json:"budget"`
	Timeline    string   `json:"timeline"`
	Message     string   `json:"message"`
	Services    []string `json:"services"`
	Newsletter  bool     `json:"newsletter"`
}

type Submitter interface {
	SubmitContact(ctx context.Context, req remote.ContactRequest) (*remote.ContactResponse, error)
}

// ServiceCatalog resolves a service tier into a cart line.
type ServiceCatalog interface {
	ServiceItem(ctx context.Context, id string, tier domain.Tier) (domain.CartItem, error)
}

type Cart interface {
	Add(item domain.CartItem)
}

// RejectedError carries the accounts API message for a refused lead.
type RejectedError struct {
	Message string
}

func (e *RejectedError) Error() string {
	if e.Message == "" {
		return ErrRejected.Error()
	}
	return fmt.Sprintf("%s: %s", ErrRejected, e.Message)
}

func (e *RejectedError) Unwrap() error { return ErrRejected }

type Service struct {
	accounts Submitter
	catalog  ServiceCatalog
	logger   *zap.Logger
}

func NewService(accounts Submitter, catalog ServiceCatalog, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{accounts: accounts, catalog: catalog, logger: logger}
}

// Submit adds the selected services to c at the basic tier and then sends the
// lead. The services stay in the cart even if the lead is refused.
func (s *Service) Submit(ctx context.Context, c Cart, lead Lead) (string, error) {
	lead.Name = strings.TrimSpace(lead.Name)
	lead.Email = strings.TrimSpace(lead.Email)
	lead.Message = strings.TrimSpace(lead.Message)
	if lead.Name == "" || lead.Email == "" || lead.Message == "" {
		return "", ErrMissingFields
	}

	items := make([]domain.CartItem, 0, len(lead.Services))
	for _, id := range lead.Services {
		item, err := s.catalog.ServiceItem(ctx, id, domain.TierBasic)
		if err != nil {
			return "", fmt.Errorf("%w %q: %v", ErrUnknownService, id, err)
		}
		item.Description = fmt.Sprintf("Basic %s package", strings.TrimSuffix(item.Name, " (Basic)"))
		items = append(items, item)
	}
	for _, item := range items {
		c.Add(item)
	}

	resp, err := s.accounts.SubmitContact(ctx, toRequest(lead))
	if err != nil {
		s.logger.Warn("contact request failed", zap.Error(err))
		return "", fmt.Errorf("submit contact: %w", err)
	}
	if resp.Status != remote.StatusOK {
		return "", &RejectedError{Message: resp.Message}
	}

	s.logger.Info("lead submitted", zap.Int("services", len(items)))
	return SuccessMessage, nil
}

func toRequest(lead Lead) remote.ContactRequest {
	subscribe := "N"
	if lead.Newsletter {
		subscribe = "Y"
	}
	return remote.ContactRequest{
		Name:        lead.Name,
		Email:       lead.Email,
		Phone:       lead.Phone,
		Company:     lead.Company,
		ProjectType: lead.ProjectType,
		Budget:      lead.Budget,
		Timeline:    lead.Timeline,
		Message:     lead.Message,
		Services:    strings.Join(lead.Services, ", "),
		Subscribe:   subscribe,
	}
}
