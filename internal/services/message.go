package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aaravmahajanofficial/antiques-catalogue/internal/api/middleware"
	"github.com/aaravmahajanofficial/antiques-catalogue/internal/catalogue"
	"github.com/aaravmahajanofficial/antiques-catalogue/internal/errors"
	"github.com/aaravmahajanofficial/antiques-catalogue/internal/metrics"
	"github.com/aaravmahajanofficial/antiques-catalogue/internal/models"
	repository "github.com/aaravmahajanofficial/antiques-catalogue/internal/repositories"
	"github.com/aaravmahajanofficial/antiques-catalogue/internal/utils"
	"github.com/aaravmahajanofficial/antiques-catalogue/pkg/sendgrid"
	"github.com/google/uuid"
)

type MessageService interface {
	SubmitContact(ctx context.Context, req *models.ContactRequest) (*models.Message, error)
	SubmitEstimate(ctx context.Context, req *models.EstimateRequest) (*models.Message, error)
	GetMessage(ctx context.Context, id uuid.UUID) (*models.Message, error)
	ListMessages(ctx context.Context, filter models.MessageFilter) (*models.MessagePage, error)
	MarkRead(ctx context.Context, id uuid.UUID, read bool) error
	DeleteMessage(ctx context.Context, id uuid.UUID) error
}

type messageService struct {
	repo         repository.MessageRepository
	productRepo  repository.ProductRepository
	emailService sendgrid.EmailService
	dealerEmail  string
	defaultLimit int
}

// NewMessageService wires the inbox. emailService may be nil, in which case no
// dealer notification is sent.
func NewMessageService(repo repository.MessageRepository, productRepo repository.ProductRepository, emailService sendgrid.EmailService, dealerEmail string, defaultLimit int) MessageService {
	if defaultLimit <= 0 {
		defaultLimit = 10
	}

	return &messageService{
		repo:         repo,
		productRepo:  productRepo,
		emailService: emailService,
		dealerEmail:  dealerEmail,
		defaultLimit: defaultLimit,
	}
}

func (s *messageService) SubmitContact(ctx context.Context, req *models.ContactRequest) (*models.Message, error) {

	if req.ProductID != nil {
		if _, err := s.productRepo.GetProductByID(ctx, *req.ProductID); err != nil {
			if repository.IsNotFound(err) {
				return nil, errors.NotFoundError("Product not found").WithError(err)
			}

			return nil, errors.DatabaseError("Failed to fetch product").WithError(err)
		}
	}

	message := &models.Message{
		Kind:      models.MessageKindContact,
		Name:      utils.SanitizeText(req.Name),
		Email:     strings.TrimSpace(req.Email),
		Phone:     utils.SanitizeText(req.Phone),
		Subject:   utils.SanitizeText(req.Subject),
		Body:      utils.SanitizeText(req.Body),
		ProductID: req.ProductID,
		Images:    []string{},
	}

	return s.store(ctx, message)
}

func (s *messageService) SubmitEstimate(ctx context.Context, req *models.EstimateRequest) (*models.Message, error) {

	message := &models.Message{
		Kind:    models.MessageKindEstimate,
		Name:    utils.SanitizeText(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Phone:   utils.SanitizeText(req.Phone),
		Subject: "Estimate request",
		Body:    utils.SanitizeText(req.Description),
		Images:  cleanImages(req.Images),
	}

	return s.store(ctx, message)
}

func (s *messageService) store(ctx context.Context, message *models.Message) (*models.Message, error) {

	if err := s.repo.CreateMessage(ctx, message); err != nil {
		return nil, errors.DatabaseError("Failed to save message").WithError(err)
	}

	metrics.MessageReceived(string(message.Kind))

	s.notifyDealer(ctx, message)

	return message, nil
}

// notifyDealer is best effort: the message is already stored, so a mail
// failure is only logged.
func (s *messageService) notifyDealer(ctx context.Context, message *models.Message) {
	if s.emailService == nil || s.dealerEmail == "" {
		return
	}

	logger := middleware.LoggerFromContext(ctx)

	content := fmt.Sprintf("New %s message from %s <%s>\n\n%s", message.Kind, message.Name, message.Email, message.Body)
	if message.Phone != "" {
		content += "\n\nPhone: " + message.Phone
	}
	if len(message.Images) > 0 {
		content += "\n\nImages:\n" + strings.Join(message.Images, "\n")
	}

	err := s.emailService.Send(ctx, &models.EmailNotificationRequest{
		To:      s.dealerEmail,
		Subject: fmt.Sprintf("[%s] %s", message.Kind, message.Subject),
		Content: content,
		ReplyTo: message.Email,
	})
	if err != nil {
		logger.Warn("Dealer notification failed",
			slog.String("messageId", message.ID.String()),
			slog.String("error", err.Error()))
		return
	}

	logger.Info("Dealer notified", slog.String("messageId", message.ID.String()))
}

func (s *messageService) GetMessage(ctx context.Context, id uuid.UUID) (*models.Message, error) {

	message, err := s.repo.GetMessageByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, errors.NotFoundError("Message not found").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to fetch message").WithError(err)
	}

	return message, nil
}

func (s *messageService) ListMessages(ctx context.Context, filter models.MessageFilter) (*models.MessagePage, error) {

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = s.defaultLimit
	}

	total, err := s.repo.CountMessages(ctx, filter)
	if err != nil {
		return nil, errors.DatabaseError("Failed to count messages").WithError(err)
	}

	messages, err := s.repo.ListMessages(ctx, filter, filter.Limit, catalogue.Offset(filter.Page, filter.Limit))
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch messages").WithError(err)
	}

	if messages == nil {
		messages = []*models.Message{}
	}

	return &models.MessagePage{
		Messages:   messages,
		Pagination: catalogue.Calculate(filter.Page, filter.Limit, total),
	}, nil
}

func (s *messageService) MarkRead(ctx context.Context, id uuid.UUID, read bool) error {

	if err := s.repo.MarkRead(ctx, id, read); err != nil {
		if repository.IsNotFound(err) {
			return errors.NotFoundError("Message not found").WithError(err)
		}

		return errors.DatabaseError("Failed to update message").WithError(err)
	}

	return nil
}

func (s *messageService) DeleteMessage(ctx context.Context, id uuid.UUID) error {

	if err := s.repo.DeleteMessage(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return errors.NotFoundError("Message not found").WithError(err)
		}

		return errors.DatabaseError("Failed to delete message").WithError(err)
	}

	return nil
}
