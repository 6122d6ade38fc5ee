package users

import (
	"context"

	"github.com/OluSmartDev/3mtt-module3-miniprojects/internal/outbox"
)

const emptyTableMessage = "No user is found. The table is empty!"

// EventRecorder receives a notification after every successful change.
type EventRecorder interface {
	Record(ctx context.Context, action outbox.Action, aggregateID string, payload any)
}

type Service struct {
	UserRepo Repository
	Events   EventRecorder
}

// NewService wires the repository. events may be nil when change events are disabled.
func NewService(repo Repository, events EventRecorder) *Service {
	return &Service{UserRepo: repo, Events: events}
}

func (s *Service) ListUsers(ctx context.Context) ([]User, error) {
	return s.UserRepo.List(ctx)
}

func (s *Service) GetUser(ctx context.Context, id int) (User, error) {
	return s.UserRepo.GetByID(ctx, id)
}

func (s *Service) CreateUser(ctx context.Context, req CreateUserRequest) (User, error) {
	if err := ValidateCreate(req); err != nil {
		return User{}, err
	}

	user, err := s.UserRepo.Create(ctx, req.ToUser())
	if err != nil {
		return User{}, err
	}

	s.record(ctx, outbox.ActionCreated, user.Key(), user)
	return user, nil
}

func (s *Service) UpdateUser(ctx context.Context, id int, patch UserPatch) (User, error) {
	if err := ValidatePatch(patch); err != nil {
		return User{}, err
	}

	user, err := s.UserRepo.Update(ctx, id, patch)
	if err != nil {
		return User{}, err
	}

	s.record(ctx, outbox.ActionUpdated, user.Key(), user)
	return user, nil
}

func (s *Service) DeleteUser(ctx context.Context, id int) error {
	if err := s.UserRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.record(ctx, outbox.ActionDeleted, User{ID: id}.Key(), map[string]int{"id": id})
	return nil
}

func (s *Service) record(ctx context.Context, action outbox.Action, id string, payload any) {
	if s.Events == nil {
		return
	}
	s.Events.Record(ctx, action, id, payload)
}
