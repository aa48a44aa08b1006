package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	appointmentRepo "washbook/database/repository/appointment"
	"washbook/models"
	"washbook/services/account"
	"washbook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserReader loads a customer profile. A missing user is (nil, nil).
type UserReader interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// AppointmentWriter persists an appointment together with a wallet debit.
// Implementations must apply both or neither.
type AppointmentWriter interface {
	CreateWithDebit(ctx context.Context, appt *models.Appointment, coins int) error
}

// AccountCreator registers a new customer account and returns its id.
// An existing email fails with account.ErrEmailAlreadyInUse.
type AccountCreator interface {
	SignUp(ctx context.Context, in account.SignUpInput) (string, error)
}

// Submission is everything needed to turn a session into an appointment.
type Submission struct {
	UserID   string // authenticated customer, empty when there is no session
	VendorID string
	Service  models.Service
	Hours    models.OperatingHours
	Offers   []models.Offer
	Date     string
	Time     string
	Details  models.CustomerDetails
	UseCoins bool
}

// Result describes a stored appointment.
type Result struct {
	Appointment *models.Appointment
	Quote       Quote
	CustomerID  string
	SignedUp    bool
}

// Sequencer runs a submission: identity first, then the appointment write.
type Sequencer struct {
	Users        UserReader
	Appointments AppointmentWriter
	Accounts     AccountCreator
	Now          func() time.Time
	logger       *zap.Logger
}

func NewSequencer(users UserReader, appts AppointmentWriter, accounts AccountCreator) *Sequencer {
	return &Sequencer{
		Users:        users,
		Appointments: appts,
		Accounts:     accounts,
		Now:          time.Now,
		logger:       utils.GetLogger(),
	}
}

// Submit validates the submission, creates an account when the customer has
// none, and stores the appointment with its coin debit. Errors are classified
// with IsValidation, *ConflictError and ErrSubmissionFailed.
func (s *Sequencer) Submit(ctx context.Context, sub Submission) (*Result, error) {
	now := s.Now()
	details := sub.Details.Normalized()

	dateTime, err := s.validate(sub, details, now)
	if err != nil {
		return nil, err
	}

	walletCoins := 0
	if sub.UserID != "" {
		user, err := s.Users.GetByID(ctx, sub.UserID)
		if err != nil {
			return nil, fmt.Errorf("%w: loading wallet: %w", ErrSubmissionFailed, err)
		}
		if user != nil {
			walletCoins = user.Wallet.Coins
		}
	}
	if sub.UseCoins && (sub.UserID == "" || walletCoins <= 0) {
		return nil, ErrCoinsUnavailable
	}

	customerID, signedUp, err := s.resolveIdentity(ctx, sub.UserID, details)
	if err != nil {
		return nil, err
	}

	quote := Calculate(sub.Service, sub.Offers, walletCoins, sub.UseCoins, now)
	appt := &models.Appointment{
		ID:              uuid.New().String(),
		CustomerID:      customerID,
		VendorID:        sub.VendorID,
		ServiceID:       sub.Service.ID,
		DateTime:        dateTime,
		Status:          models.AppointmentStatusConfirmed,
		TotalPrice:      Round2(quote.FinalPrice),
		CustomerDetails: details.WithoutPassword(),
		CoinsUsed:       quote.CoinsApplied,
		CreatedAt:       now.UTC(),
	}

	if err := s.Appointments.CreateWithDebit(ctx, appt, quote.CoinsApplied); err != nil {
		if signedUp {
			s.logger.Warn("Account created but appointment failed",
				zap.String("customerId", customerID), zap.Error(err))
		}
		if errors.Is(err, appointmentRepo.ErrInsufficientCoins) {
			return nil, ErrInsufficientCoins
		}
		return nil, fmt.Errorf("%w: %w", ErrSubmissionFailed, err)
	}

	s.logger.Info("Appointment confirmed",
		zap.String("appointmentId", appt.ID),
		zap.String("customerId", customerID),
		zap.String("vendorId", sub.VendorID),
		zap.Int("coinsUsed", appt.CoinsUsed),
		zap.Float64("totalPrice", appt.TotalPrice))

	return &Result{Appointment: appt, Quote: quote, CustomerID: customerID, SignedUp: signedUp}, nil
}

// validate checks the selections and returns the combined appointment time.
func (s *Sequencer) validate(sub Submission, details models.CustomerDetails, now time.Time) (time.Time, error) {
	if sub.Date == "" {
		return time.Time{}, ErrMissingDate
	}
	date, err := ParseDate(sub.Date)
	if err != nil {
		return time.Time{}, err
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if date.Before(today) {
		return time.Time{}, fmt.Errorf("%w: %s is in the past", ErrInvalidDate, sub.Date)
	}
	if !IsAvailable(date, sub.Hours) {
		return time.Time{}, ErrDateUnavailable
	}
	if sub.Time == "" {
		return time.Time{}, ErrMissingTime
	}
	if !HasSlot(date, sub.Hours, sub.Time) {
		return time.Time{}, fmt.Errorf("%w: %s", ErrInvalidTime, sub.Time)
	}
	if !details.Complete() {
		return time.Time{}, ErrIncompleteDetails
	}
	return CombineDateTime(sub.Date, sub.Time)
}

// resolveIdentity returns the customer id the appointment is booked for.
func (s *Sequencer) resolveIdentity(ctx context.Context, userID string, details models.CustomerDetails) (string, bool, error) {
	if userID != "" {
		return userID, false, nil
	}
	if details.Password == "" {
		return "", false, ErrIdentityRequired
	}
	if len(details.Password) < MinPasswordLength {
		return "", false, ErrPasswordTooShort
	}

	id, err := s.Accounts.SignUp(ctx, account.SignUpInput{
		Email:     details.Email,
		Password:  details.Password,
		FirstName: details.FirstName,
		LastName:  details.LastName,
		Phone:     details.Phone,
	})
	switch {
	case errors.Is(err, account.ErrEmailAlreadyInUse):
		return "", false, &ConflictError{Email: details.Email, Err: err}
	case err != nil:
		return "", false, fmt.Errorf("%w: signup: %w", ErrSubmissionFailed, err)
	}
	return id, true, nil
}
