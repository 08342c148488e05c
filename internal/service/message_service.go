package service

import (
	"context"
	"errors"
	"fmt"

	"clubhouse/internal/model"
	"clubhouse/internal/repository"
	"clubhouse/internal/validation"

	"github.com/sirupsen/logrus"
)

var ErrMessageNotFound = errors.New("message not found")

// MessageService defines operations for homepage messages
type MessageService interface {
	ListMessagesWithAuthors(ctx context.Context) ([]model.MessageWithAuthor, error)
	CreateMessage(ctx context.Context, authorID int64, in model.CreateMessageInput) (*model.Message, error)
	GetMessage(ctx context.Context, id int64) (*model.Message, error)
	DeleteMessage(ctx context.Context, id int64) error
}

type messageService struct {
	repo repository.MessageRepository
	log  logrus.FieldLogger
}

// NewMessageService creates a new MessageService
func NewMessageService(repo repository.MessageRepository, log logrus.FieldLogger) MessageService {
	return &messageService{repo: repo, log: log}
}

func (s *messageService) ListMessagesWithAuthors(ctx context.Context) ([]model.MessageWithAuthor, error) {
	messages, err := s.repo.ListWithAuthors(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages from repo: %w", err)
	}
	return messages, nil
}

// CreateMessage validates and stores a post by authorID. Validation failures
// come back as *validation.Errors.
func (s *messageService) CreateMessage(ctx context.Context, authorID int64, in model.CreateMessageInput) (*model.Message, error) {
	in, err := validation.Message(in)
	if err != nil {
		return nil, err
	}

	message := &model.Message{
		UserID:      authorID,
		Title:       in.Title,
		MessageText: in.MessageText,
	}
	if err := s.repo.Create(ctx, message); err != nil {
		return nil, fmt.Errorf("failed to create message in repo: %w", err)
	}
	return message, nil
}

func (s *messageService) GetMessage(ctx context.Context, id int64) (*model.Message, error) {
	message, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find message by ID: %w", err)
	}
	if message == nil {
		return nil, ErrMessageNotFound
	}
	return message, nil
}

// DeleteMessage removes a message by id without any ownership check.
func (s *messageService) DeleteMessage(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrMessageNotFound) {
			return ErrMessageNotFound
		}
		return fmt.Errorf("failed to delete message: %w", err)
	}
	s.log.WithField("message_id", id).Info("message deleted")
	return nil
}
