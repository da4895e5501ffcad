package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/karlmarxlive/artchaos-bot/internal/domain"
	"github.com/karlmarxlive/artchaos-bot/internal/handler/dto"
	"github.com/wb-go/wbf/ginext"
)

const (
	headerActorID        = "X-Actor-ID"
	headerIdempotencyKey = "Idempotency-Key"
)

type BookingSvc interface {
	Evaluate(ctx context.Context, in domain.BookInput) (domain.Decision, error)
	Book(ctx context.Context, in domain.BookInput) (*domain.Booking, error)
	Cancel(ctx context.Context, actorID int64, bookingID string) (*domain.Cancellation, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.Booking, error)
	Stats(ctx context.Context, actorID int64) (*domain.Stats, error)
}

type UserSvc interface {
	Register(ctx context.Context, input domain.RegisterUserInput) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	AdjustCredits(ctx context.Context, actorID, userID int64, delta int) (int, error)
	List(ctx context.Context, actorID int64) ([]*domain.User, error)
}

type Handler struct {
	bookingService BookingSvc
	userService    UserSvc
	loc            *time.Location
}

func NewHandler(bookingService BookingSvc, userService UserSvc, loc *time.Location) *Handler {
	return &Handler{
		bookingService: bookingService,
		userService:    userService,
		loc:            loc,
	}
}

// Users

func (h *Handler) RegisterUser(c *ginext.Context) {
	var req dto.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	user, err := h.userService.Register(c.Request.Context(), domain.RegisterUserInput{
		ID:          req.ID,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

func (h *Handler) GetUser(c *ginext.Context) {
	userID, ok := pathUserID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

func (h *Handler) AdjustCredits(c *ginext.Context) {
	userID, ok := pathUserID(c)
	if !ok {
		return
	}
	actorID, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.AdjustCreditsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	balance, err := h.userService.AdjustCredits(c.Request.Context(), actorID, userID, req.Delta)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{UserID: userID, Balance: balance})
}

// Bookings

func (h *Handler) EvaluateBooking(c *ginext.Context) {
	in, ok := h.bindBookInput(c)
	if !ok {
		return
	}

	decision, err := h.bookingService.Evaluate(c.Request.Context(), in)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDecisionResponse(decision))
}

func (h *Handler) CreateBooking(c *ginext.Context) {
	in, ok := h.bindBookInput(c)
	if !ok {
		return
	}
	in.IdempotencyKey = c.GetHeader(headerIdempotencyKey)

	booking, err := h.bookingService.Book(c.Request.Context(), in)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToBookingResponse(booking, h.loc))
}

func (h *Handler) CancelBooking(c *ginext.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid booking id"})
		return
	}
	actorID, ok := requireActor(c)
	if !ok {
		return
	}

	res, err := h.bookingService.Cancel(c.Request.Context(), actorID, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCancelResponse(res, h.loc))
}

func (h *Handler) GetUserBookings(c *ginext.Context) {
	userID, ok := pathUserID(c)
	if !ok {
		return
	}

	bookings, err := h.bookingService.ListByUser(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	resp := make([]dto.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		resp = append(resp, dto.ToBookingResponse(b, h.loc))
	}

	c.JSON(http.StatusOK, resp)
}

// Admin

func (h *Handler) GetStats(c *ginext.Context) {
	actorID, ok := requireActor(c)
	if !ok {
		return
	}

	stats, err := h.bookingService.Stats(c.Request.Context(), actorID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToStatsResponse(stats))
}

func (h *Handler) ListUsers(c *ginext.Context) {
	actorID, ok := requireActor(c)
	if !ok {
		return
	}

	users, err := h.userService.List(c.Request.Context(), actorID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	resp := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, dto.ToUserResponse(u))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) bindBookInput(c *ginext.Context) (domain.BookInput, bool) {
	var req dto.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return domain.BookInput{}, false
	}

	day, start, err := domain.ParseSlot(h.loc, req.Date, req.StartTime)
	if err != nil {
		h.handleError(c, err)
		return domain.BookInput{}, false
	}

	actorID := req.UserID
	if raw := c.GetHeader(headerActorID); raw != "" {
		actorID, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid " + headerActorID})
			return domain.BookInput{}, false
		}
	}

	return domain.BookInput{
		ActorID:   actorID,
		UserID:    req.UserID,
		Date:      day,
		StartTime: start,
		Duration:  time.Duration(req.DurationMinutes) * time.Minute,
		Override:  req.Override,
	}, true
}

func pathUserID(c *ginext.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid user id"})
		return 0, false
	}
	return id, true
}

func requireActor(c *ginext.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.GetHeader(headerActorID), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: headerActorID + " header is required"})
		return 0, false
	}
	return id, true
}

func (h *Handler) handleError(c *ginext.Context, err error) {
	c.Set("error", err.Error())

	var conflict *domain.ConflictError
	switch {
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, dto.ErrorResponse{
			Error:    err.Error(),
			Conflict: dto.ToIntervalResponse(conflict, h.loc),
		})

	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})

	case errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrDuplicateRequest),
		errors.Is(err, domain.ErrNegativeBalance):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})

	case errors.Is(err, domain.ErrInsufficientCredit):
		c.JSON(http.StatusPaymentRequired, dto.ErrorResponse{Error: err.Error()})

	case errors.Is(err, domain.ErrPastSlot),
		errors.Is(err, domain.ErrCrossesDayBoundary):
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: err.Error()})

	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Error: err.Error()})

	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})

	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}
}
