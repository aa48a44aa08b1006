package booking

import (
	"context"
	"time"

	"washbook/models"
	"washbook/utils"

	"go.uber.org/zap"
)

// BookingSessionService drives booking sessions from open to success.
// userID is the authenticated customer of the request, empty when the
// request carries no session.
type BookingSessionService interface {
	OpenSession(ctx context.Context, userID, vendorID, serviceID string) (*View, error)
	GetSession(ctx context.Context, userID, sessionID string) (*View, error)
	UpdateSession(ctx context.Context, userID, sessionID string, upd SessionUpdate) (*View, error)
	Next(ctx context.Context, userID, sessionID string) (*View, error)
	Back(ctx context.Context, userID, sessionID string) (*View, error)
	Submit(ctx context.Context, userID, sessionID string) (*Confirmation, error)
	CloseSession(ctx context.Context, userID, sessionID string) error
	Resume(ctx context.Context, userID, resumeToken string) (*View, error)
}

// DefaultBookingSessionService implements BookingSessionService.
type DefaultBookingSessionService struct {
	Catalog   Catalog
	Users     UserReader
	Store     SessionStore
	Sequencer *Sequencer
	Exits     ExitScheduler
	Now       func() time.Time
	logger    *zap.Logger
}

func NewBookingSessionService(catalog Catalog, users UserReader, store SessionStore, seq *Sequencer, exits ExitScheduler) *DefaultBookingSessionService {
	return &DefaultBookingSessionService{
		Catalog:   catalog,
		Users:     users,
		Store:     store,
		Sequencer: seq,
		Exits:     exits,
		Now:       time.Now,
		logger:    utils.GetLogger(),
	}
}

// SessionUpdate carries the fields a client changes. Nil fields are left as
// they are.
type SessionUpdate struct {
	Date     *string                 `json:"date"`
	Time     *string                 `json:"time"`
	Details  *models.CustomerDetails `json:"details"`
	Password *string                 `json:"password"`
	UseCoins *bool                   `json:"useCoins"`
}

// Confirmation is returned by a successful submission.
type Confirmation struct {
	View        *View               `json:"session"`
	Appointment *models.Appointment `json:"appointment"`
	Message     string              `json:"message"`
	ExitAfter   time.Duration       `json:"-"`
}
