package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/hayasakashogo/worklog/internal/domain"
	"github.com/hayasakashogo/worklog/internal/events"
	"github.com/hayasakashogo/worklog/internal/repository"
)

// ClientService manages client contracts
type ClientService interface {
	List(ctx context.Context) ([]*domain.Client, error)

	// Resolve finds a client by ID, falling back to an exact name match
	Resolve(ctx context.Context, ref string) (*domain.Client, error)

	Create(ctx context.Context, client *domain.Client) error
	Update(ctx context.Context, client *domain.Client) error

	// Delete removes the client and all of its records
	Delete(ctx context.Context, clientID string) error
}

type clientService struct {
	*recordStore
}

// NewClientService creates a new client service
func NewClientService(deps Deps) ClientService {
	return &clientService{recordStore: newRecordStore(deps)}
}

func (s *clientService) List(ctx context.Context) ([]*domain.Client, error) {
	return s.clientRepo.List(ctx)
}

func (s *clientService) Resolve(ctx context.Context, ref string) (*domain.Client, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("%w: no client given", ErrClientNotFound)
	}

	client, err := s.clientRepo.GetByID(ctx, ref)
	if err == nil {
		return client, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	client, err = s.clientRepo.GetByName(ctx, ref)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrClientNotFound, ref)
		}
		return nil, err
	}
	return client, nil
}

func (s *clientService) Create(ctx context.Context, client *domain.Client) error {
	if err := client.Validate(); err != nil {
		return err
	}
	if err := s.clientRepo.Create(ctx, client); err != nil {
		return err
	}
	s.logger.Info("client created", zap.String("client_id", client.ID), zap.String("name", client.Name))
	s.publish(ctx, events.Change{ClientID: client.ID, Kind: events.KindClient})
	return nil
}

func (s *clientService) Update(ctx context.Context, client *domain.Client) error {
	if err := client.Validate(); err != nil {
		return err
	}
	client.UpdatedAt = s.now()
	if err := s.clientRepo.Update(ctx, client); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrClientNotFound, client.ID)
		}
		return err
	}
	s.publish(ctx, events.Change{ClientID: client.ID, Kind: events.KindClient})
	return nil
}

func (s *clientService) Delete(ctx context.Context, clientID string) error {
	if err := s.clientRepo.Delete(ctx, clientID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrClientNotFound, clientID)
		}
		return err
	}
	s.logger.Info("client deleted", zap.String("client_id", clientID))
	s.publish(ctx, events.Change{ClientID: clientID, Kind: events.KindClient})
	return nil
}
