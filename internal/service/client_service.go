package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Ayushkalathiya945/investment--sub001/internal/api/request"
	"github.com/Ayushkalathiya945/investment--sub001/internal/apperrors"
	"github.com/Ayushkalathiya945/investment--sub001/internal/model"
	"github.com/Ayushkalathiya945/investment--sub001/internal/repository"
	"github.com/google/uuid"
)

// ClientService handles client-related business logic operations.
type ClientService struct {
	clientRepo *repository.ClientRepository
}

// NewClientService creates a new ClientService with the provided repository dependency.
func NewClientService(clientRepo *repository.ClientRepository) *ClientService {
	return &ClientService{clientRepo: clientRepo}
}

// GetClient retrieves a client by ID.
func (s *ClientService) GetClient(clientID string) (model.Client, error) {
	return s.clientRepo.GetClient(clientID)
}

// GetAllClients retrieves all clients ordered by account code.
func (s *ClientService) GetAllClients() ([]model.Client, error) {
	return s.clientRepo.GetAllClients()
}

// CreateClient creates a new client with a generated ID.
func (s *ClientService) CreateClient(ctx context.Context, req request.CreateClientRequest) (*model.Client, error) {
	client := &model.Client{
		ID:        uuid.New().String(),
		Code:      req.Code,
		Name:      req.Name,
		Email:     req.Email,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.clientRepo.InsertClient(ctx, client); err != nil {
		if err == apperrors.ErrDuplicateEntry {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

// UpdateClient updates an existing client. Only provided fields in the
// request are updated; omitted fields remain unchanged.
func (s *ClientService) UpdateClient(ctx context.Context, id string, req request.UpdateClientRequest) (*model.Client, error) {
	client, err := s.clientRepo.GetClient(id)
	if err != nil {
		return nil, err
	}

	if req.Code != nil {
		client.Code = *req.Code
	}
	if req.Name != nil {
		client.Name = *req.Name
	}
	if req.Email != nil {
		client.Email = *req.Email
	}

	if err := s.clientRepo.UpdateClient(ctx, &client); err != nil {
		return nil, err
	}

	return &client, nil
}

// DeleteClient removes a client. A client with recorded trades cannot be
// deleted; trade history and the summaries derived from it are preserved.
func (s *ClientService) DeleteClient(ctx context.Context, id string) error {
	if _, err := s.clientRepo.GetClient(id); err != nil {
		return err
	}

	count, err := s.clientRepo.CountTrades(id)
	if err != nil {
		return fmt.Errorf("failed to check client trades: %w", err)
	}
	if count > 0 {
		return apperrors.ErrClientHasTrades
	}

	return s.clientRepo.DeleteClient(ctx, id)
}
