package appointmentRepo

import (
	"context"
	"errors"

	"washbook/models"
)

// ErrInsufficientCoins means the wallet could not cover the debit. Nothing
// was written.
var ErrInsufficientCoins = errors.New("insufficient wallet coins")

// AppointmentRepository persists confirmed appointments.
type AppointmentRepository interface {
	// CreateWithDebit inserts appt and removes coins from the customer's
	// wallet as one unit.
	CreateWithDebit(ctx context.Context, appt *models.Appointment, coins int) error
}
