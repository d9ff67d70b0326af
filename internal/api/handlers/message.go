package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aaravmahajanofficial/antiques-catalogue/internal/api/middleware"
	appErrors "github.com/aaravmahajanofficial/antiques-catalogue/internal/errors"
	"github.com/aaravmahajanofficial/antiques-catalogue/internal/models"
	service "github.com/aaravmahajanofficial/antiques-catalogue/internal/services"
	"github.com/aaravmahajanofficial/antiques-catalogue/internal/utils"
	"github.com/aaravmahajanofficial/antiques-catalogue/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type MessageHandler struct {
	messageService service.MessageService
	validator      *validator.Validate
	maxLimit       int
}

func NewMessageHandler(messageService service.MessageService, maxLimit int) *MessageHandler {
	if maxLimit <= 0 {
		maxLimit = 100
	}

	return &MessageHandler{messageService: messageService, validator: validator.New(), maxLimit: maxLimit}
}

// SubmitContact godoc
//
//	@Summary	Send a message to the dealer
//	@Tags		Messages
//	@Accept		json
//	@Produce	json
//	@Param		message	body		models.ContactRequest	true	"Contact form"
//	@Success	201		{object}	models.Message
//	@Failure	400		{object}	response.ErrorResponse
//	@Failure	404		{object}	response.ErrorResponse	"Referenced product does not exist"
//	@Failure	429		{object}	response.ErrorResponse
//	@Router		/messages/contact [post]
func (h *MessageHandler) SubmitContact() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.ContactRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid contact form input")
			return
		}

		message, err := h.messageService.SubmitContact(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to store contact message", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Contact message received", slog.String("messageId", message.ID.String()))
		response.Success(w, http.StatusCreated, message)
	}
}

func (h *MessageHandler) SubmitEstimate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.EstimateRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid estimate request input")
			return
		}

		message, err := h.messageService.SubmitEstimate(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to store estimate request", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Estimate request received",
			slog.String("messageId", message.ID.String()),
			slog.Int("images", len(message.Images)))
		response.Success(w, http.StatusCreated, message)
	}
}

// ListMessages godoc
//
//	@Summary	List inbox messages
//	@Tags		Admin
//	@Produce	json
//	@Param		kind	query		string	false	"contact or estimate"
//	@Param		unread	query		bool	false	"Only unread messages"
//	@Param		page	query		int		false	"Page (1-based)"
//	@Param		limit	query		int		false	"Page size"
//	@Success	200		{object}	models.MessagePage
//	@Failure	400		{object}	response.ErrorResponse
//	@Security	BearerAuth
//	@Router		/admin/messages [get]
func (h *MessageHandler) ListMessages() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		filter, err := h.parseFilter(r)
		if err != nil {
			logger.Warn("Invalid message filter", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		page, err := h.messageService.ListMessages(r.Context(), filter)
		if err != nil {
			logger.Error("Failed to list messages", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, page)
	}
}

func (h *MessageHandler) GetMessage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid message id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		message, err := h.messageService.GetMessage(r.Context(), id)
		if err != nil {
			logger.Warn("Failed to get message", slog.String("messageId", id.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, message)
	}
}

// MarkRead flags a message as read. A body of {"read": false} marks it unread
// again; an empty body means read.
func (h *MessageHandler) MarkRead() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid message id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		read, err := readFlag(r)
		if err != nil {
			logger.Warn("Invalid mark read body", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		if err := h.messageService.MarkRead(r.Context(), id, read); err != nil {
			logger.Error("Failed to mark message", slog.String("messageId", id.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Message marked", slog.String("messageId", id.String()), slog.Bool("read", read))
		response.Success(w, http.StatusOK, map[string]any{"id": id, "read": read})
	}
}

func (h *MessageHandler) DeleteMessage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid message id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		if err := h.messageService.DeleteMessage(r.Context(), id); err != nil {
			logger.Error("Failed to delete message", slog.String("messageId", id.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Message deleted", slog.String("messageId", id.String()))
		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *MessageHandler) parseFilter(r *http.Request) (models.MessageFilter, error) {

	q := r.URL.Query()
	var filter models.MessageFilter

	switch kind := models.MessageKind(q.Get("kind")); kind {
	case "":
	case models.MessageKindContact, models.MessageKindEstimate:
		filter.Kind = kind
	default:
		return filter, appErrors.BadRequestError("Invalid kind").WithDetail("kind must be contact or estimate")
	}

	if raw := q.Get("unread"); raw != "" {
		unread, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, appErrors.BadRequestError("Invalid unread flag").WithDetail(err.Error())
		}
		filter.UnreadOnly = unread
	}

	if page, err := strconv.Atoi(q.Get("page")); err == nil && page > 0 {
		filter.Page = page
	}

	if limit, err := strconv.Atoi(q.Get("limit")); err == nil && limit > 0 {
		filter.Limit = min(limit, h.maxLimit)
	}

	return filter, nil
}

func readFlag(r *http.Request) (bool, error) {

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return false, appErrors.BadRequestError("Invalid request body").WithDetail(err.Error())
	}
	defer r.Body.Close()

	if len(body) == 0 {
		return true, nil
	}

	var req models.MarkReadRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return false, appErrors.BadRequestError("Invalid request body").WithDetail(err.Error())
	}

	if req.Read == nil {
		return true, nil
	}

	return *req.Read, nil
}
