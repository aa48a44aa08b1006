package booking

import (
	"washbook/models"
)

// View is what a client renders for one session.
type View struct {
	SessionID     string                 `json:"sessionId"`
	Vendor        VendorSummary          `json:"vendor"`
	Service       models.Service         `json:"service"`
	Step          Step                   `json:"step"`
	Date          string                 `json:"date,omitempty"`
	Time          string                 `json:"time,omitempty"`
	Slots         []string               `json:"slots,omitempty"`
	Details       models.CustomerDetails `json:"details"`
	PasswordSet   bool                   `json:"passwordSet"`
	HasSession    bool                   `json:"hasSession"`
	UseCoins      bool                   `json:"useCoins"`
	CanUseCoins   bool                   `json:"canUseCoins"`
	Quote         Quote                  `json:"quote"`
	CanProceed    bool                   `json:"canProceed"`
	CanGoBack     bool                   `json:"canGoBack"`
	AppointmentID string                 `json:"appointmentId,omitempty"`
}

type VendorSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func flowState(sess *models.BookingSession, hasSession bool) FlowState {
	return FlowState{
		Step:            Step(sess.Step),
		HasDate:         sess.Date != "",
		HasTime:         sess.Time != "",
		DetailsComplete: sess.Details.Normalized().Complete(),
		PasswordLength:  len(sess.Details.Password),
		HasSession:      hasSession,
	}
}

func (s *DefaultBookingSessionService) viewOf(sess *models.BookingSession, vendor *models.Vendor, service *models.Service, in pricingInputs, hasSession bool) *View {
	fs := flowState(sess, hasSession)
	canUseCoins := hasSession && in.WalletCoins > 0

	v := &View{
		SessionID:     sess.ID,
		Vendor:        VendorSummary{ID: vendor.ID, Name: vendor.Name},
		Service:       *service,
		Step:          fs.Step,
		Date:          sess.Date,
		Time:          sess.Time,
		Details:       sess.Details.WithoutPassword(),
		PasswordSet:   sess.Details.Password != "",
		HasSession:    hasSession,
		UseCoins:      sess.UseCoins,
		CanUseCoins:   canUseCoins,
		Quote:         Calculate(*service, in.Offers, in.WalletCoins, sess.UseCoins && canUseCoins, s.Now()).Rounded(),
		CanProceed:    CanAdvance(fs),
		CanGoBack:     CanGoBack(fs),
		AppointmentID: sess.AppointmentID,
	}
	if fs.Step == StepConfirm {
		// On confirm, proceeding means submitting.
		v.CanProceed = fs.HasDate && fs.HasTime && fs.DetailsComplete &&
			(hasSession || fs.PasswordLength >= MinPasswordLength)
	}
	if date, err := ParseDate(sess.Date); err == nil {
		v.Slots = Slots(date, vendor.OperatingHours)
	}
	return v
}
