package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	catalogRepo "washbook/database/repository/catalog"
	"washbook/models"
	"washbook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var stepOrder = map[Step]int{
	StepDate:    0,
	StepTime:    1,
	StepDetails: 2,
	StepSignup:  3,
	StepConfirm: 4,
	StepSuccess: 5,
}

func (s *DefaultBookingSessionService) OpenSession(ctx context.Context, userID, vendorID, serviceID string) (*View, error) {
	vendor, service, err := s.loadCatalog(ctx, vendorID, serviceID)
	if err != nil {
		return nil, err
	}
	in, err := loadPricingInputs(ctx, s.Catalog, s.Users, vendorID, userID)
	if err != nil {
		s.logger.Error("Failed to load booking inputs", zap.String("vendorId", vendorID), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrSubmissionFailed, err)
	}

	now := s.Now().UTC()
	sess := &models.BookingSession{
		ID:        uuid.New().String(),
		VendorID:  vendorID,
		ServiceID: serviceID,
		OwnerID:   userID,
		Step:      string(StepDate),
		CreatedAt: now,
	}
	if err := s.Store.Save(ctx, sess); err != nil {
		return nil, err
	}
	metrics.SessionsOpened.Inc()
	s.logger.Debug("Booking session opened",
		zap.String("sessionId", sess.ID), zap.String("vendorId", vendorID), zap.String("serviceId", serviceID))

	return s.viewOf(sess, vendor, service, in, userID != ""), nil
}

func (s *DefaultBookingSessionService) GetSession(ctx context.Context, userID, sessionID string) (*View, error) {
	sess, changed, err := s.load(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if !changed {
		return s.render(ctx, sess, userID)
	}

	release, err := s.acquire(ctx, sessionID)
	switch {
	case errors.Is(err, ErrSubmissionPending):
		// Rendered as loaded; the binding is stored on a later access.
		return s.render(ctx, sess, userID)
	case err != nil:
		return nil, err
	}
	defer release()

	if sess, changed, err = s.load(ctx, userID, sessionID); err != nil {
		return nil, err
	}
	if changed {
		if err := s.Store.Save(ctx, sess); err != nil {
			return nil, err
		}
	}
	return s.render(ctx, sess, userID)
}

// UpdateSession applies the client's selections. Invalid selections are
// rejected as a whole and nothing is stored.
func (s *DefaultBookingSessionService) UpdateSession(ctx context.Context, userID, sessionID string, upd SessionUpdate) (*View, error) {
	release, err := s.acquire(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	defer release()

	sess, _, err := s.loadMutable(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	vendor, service, err := s.loadCatalog(ctx, sess.VendorID, sess.ServiceID)
	if err != nil {
		return nil, err
	}
	in, err := loadPricingInputs(ctx, s.Catalog, s.Users, sess.VendorID, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSubmissionFailed, err)
	}

	if upd.Date != nil {
		if err := s.applyDate(sess, *upd.Date, vendor.OperatingHours); err != nil {
			return nil, err
		}
	}
	if upd.Time != nil {
		if err := applyTime(sess, *upd.Time, vendor.OperatingHours); err != nil {
			return nil, err
		}
	}
	if upd.Details != nil {
		details := upd.Details.Normalized()
		details.Password = sess.Details.Password
		sess.Details = details
	}
	if upd.Password != nil && userID == "" {
		sess.Details.Password = *upd.Password
	}
	if upd.UseCoins != nil {
		if *upd.UseCoins && (userID == "" || in.WalletCoins <= 0) {
			return nil, ErrCoinsUnavailable
		}
		sess.UseCoins = *upd.UseCoins
	}

	sess.Step = string(rewindStep(sess, userID != ""))
	if err := s.Store.Save(ctx, sess); err != nil {
		return nil, err
	}
	return s.viewOf(sess, vendor, service, in, userID != ""), nil
}

func (s *DefaultBookingSessionService) Next(ctx context.Context, userID, sessionID string) (*View, error) {
	return s.move(ctx, userID, sessionID, EventNext)
}

func (s *DefaultBookingSessionService) Back(ctx context.Context, userID, sessionID string) (*View, error) {
	return s.move(ctx, userID, sessionID, EventBack)
}

// move applies a flow event. A rejected transition leaves the step as it is
// and is not an error; the view reports it through CanProceed and CanGoBack.
func (s *DefaultBookingSessionService) move(ctx context.Context, userID, sessionID string, ev Event) (*View, error) {
	release, err := s.acquire(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	defer release()

	sess, changed, err := s.loadMutable(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	step, err := Transition(flowState(sess, userID != ""), ev)
	if err == nil && string(step) != sess.Step {
		sess.Step = string(step)
		changed = true
	}
	if err != nil {
		s.logger.Debug("Transition rejected", zap.String("sessionId", sessionID), zap.Error(err))
	}
	if changed {
		if err := s.Store.Save(ctx, sess); err != nil {
			return nil, err
		}
	}
	return s.render(ctx, sess, userID)
}

// Submit books the session. Only one submission per session runs at a time,
// and the session is read only once its lock is held.
func (s *DefaultBookingSessionService) Submit(ctx context.Context, userID, sessionID string) (*Confirmation, error) {
	release, err := s.acquire(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	defer release()

	sess, _, err := s.load(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.AppointmentID != "" || Step(sess.Step) == StepSuccess {
		return nil, ErrAlreadySubmitted
	}
	if Step(sess.Step) != StepConfirm {
		return nil, ErrNotReady
	}

	vendor, service, err := s.loadCatalog(ctx, sess.VendorID, sess.ServiceID)
	if err != nil {
		return nil, err
	}
	offers, err := s.Catalog.GetVendorOffers(ctx, sess.VendorID)
	if err != nil {
		return nil, fmt.Errorf("%w: loading offers: %w", ErrSubmissionFailed, err)
	}

	res, err := s.Sequencer.Submit(ctx, Submission{
		UserID:   userID,
		VendorID: sess.VendorID,
		Service:  *service,
		Hours:    vendor.OperatingHours,
		Offers:   offers,
		Date:     sess.Date,
		Time:     sess.Time,
		Details:  sess.Details,
		UseCoins: sess.UseCoins,
	})
	metrics.Submissions.WithLabelValues(outcomeOf(err)).Inc()
	if err != nil {
		return nil, s.submitFailed(ctx, sess, err)
	}

	sess.Step = string(StepSuccess)
	sess.AppointmentID = res.Appointment.ID
	sess.Details.Password = ""
	if err := s.Store.Save(ctx, sess); err != nil {
		// The appointment is stored; a lost snapshot only affects the modal.
		s.logger.Error("Failed to save booking session after success",
			zap.String("sessionId", sessionID), zap.String("appointmentId", res.Appointment.ID), zap.Error(err))
	}
	metrics.CoinsRedeemed.Add(float64(res.Appointment.CoinsUsed))

	status := "scheduled"
	if err := s.Exits.ScheduleExit(ctx, sessionID, ExitDelay); err != nil {
		status = "failed"
		s.logger.Warn("Failed to schedule session exit", zap.String("sessionId", sessionID), zap.Error(err))
	}
	metrics.ExitsScheduled.WithLabelValues(status).Inc()

	// The success view shows the quote that was charged, not a new one
	// against the debited wallet.
	view := s.viewOf(sess, vendor, service, pricingInputs{Offers: offers, WalletCoins: res.Quote.WalletCoins}, userID != "")
	view.Quote = res.Quote.Rounded()
	return &Confirmation{
		View:        view,
		Appointment: res.Appointment,
		Message:     MsgBookingConfirmed,
		ExitAfter:   ExitDelay,
	}, nil
}

// submitFailed records a failed submission. The session keeps every
// selection and stays on confirm.
func (s *DefaultBookingSessionService) submitFailed(ctx context.Context, sess *models.BookingSession, err error) error {
	var conflict *ConflictError
	switch {
	case errors.As(err, &conflict):
		token, tokenErr := utils.GenerateResumeToken(sess.ID)
		if tokenErr != nil {
			s.logger.Error("Failed to issue resume token", zap.String("sessionId", sess.ID), zap.Error(tokenErr))
			return fmt.Errorf("%w: %w", ErrSubmissionFailed, tokenErr)
		}
		conflict.ResumeToken = token
		sess.Details.Password = ""
		if saveErr := s.Store.Save(ctx, sess); saveErr != nil {
			s.logger.Warn("Failed to save booking session after conflict", zap.String("sessionId", sess.ID), zap.Error(saveErr))
		}
		s.logger.Info("Signup email already registered", zap.String("sessionId", sess.ID))
	case IsValidation(err):
		s.logger.Debug("Submission rejected", zap.String("sessionId", sess.ID), zap.Error(err))
	default:
		s.logger.Error("Submission failed", zap.String("sessionId", sess.ID), zap.Error(err))
	}
	return err
}

// CloseSession discards the session. It is refused while a submission runs.
func (s *DefaultBookingSessionService) CloseSession(ctx context.Context, userID, sessionID string) error {
	release, err := s.acquire(ctx, sessionID)
	if err != nil {
		return err
	}
	defer release()

	if _, _, err := s.loadMutable(ctx, userID, sessionID); err != nil && !errors.Is(err, ErrAlreadySubmitted) {
		return err
	}
	return s.Store.Delete(ctx, sessionID)
}

// Resume returns the session a conflict sent the customer away from. The
// caller must be authenticated by now.
func (s *DefaultBookingSessionService) Resume(ctx context.Context, userID, resumeToken string) (*View, error) {
	if userID == "" {
		return nil, ErrIdentityRequired
	}
	sessionID, err := utils.ParseResumeToken(resumeToken)
	if err != nil {
		s.logger.Debug("Invalid resume token", zap.Error(err))
		return nil, ErrSessionNotFound
	}
	return s.GetSession(ctx, userID, sessionID)
}

// load fetches a session for userID, binding it to the customer on first
// authenticated access and normalizing its step to the current identity.
func (s *DefaultBookingSessionService) load(ctx context.Context, userID, sessionID string) (*models.BookingSession, bool, error) {
	sess, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, false, err
	}
	if sess.OwnerID != "" && sess.OwnerID != userID {
		return nil, false, ErrSessionNotFound
	}

	changed := false
	if sess.OwnerID == "" && userID != "" {
		sess.OwnerID = userID
		sess.Details.Password = ""
		changed = true
	}
	if step := Normalize(flowState(sess, userID != "")); string(step) != sess.Step {
		sess.Step = string(step)
		changed = true
	}
	return sess, changed, nil
}

// loadMutable is load for operations that change the session. The caller
// holds the session lock.
func (s *DefaultBookingSessionService) loadMutable(ctx context.Context, userID, sessionID string) (*models.BookingSession, bool, error) {
	sess, changed, err := s.load(ctx, userID, sessionID)
	if err != nil {
		return nil, false, err
	}
	if Step(sess.Step) == StepSuccess {
		return sess, changed, ErrAlreadySubmitted
	}
	return sess, changed, nil
}

// acquire takes the session lock that serializes changes and submissions.
// ErrSubmissionPending means another request holds it.
func (s *DefaultBookingSessionService) acquire(ctx context.Context, sessionID string) (func(), error) {
	locked, err := s.Store.Lock(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !locked {
		return nil, ErrSubmissionPending
	}
	return func() {
		if err := s.Store.Unlock(context.WithoutCancel(ctx), sessionID); err != nil {
			s.logger.Warn("Failed to release booking lock", zap.String("sessionId", sessionID), zap.Error(err))
		}
	}, nil
}

func (s *DefaultBookingSessionService) render(ctx context.Context, sess *models.BookingSession, userID string) (*View, error) {
	vendor, service, err := s.loadCatalog(ctx, sess.VendorID, sess.ServiceID)
	if err != nil {
		return nil, err
	}
	in, err := loadPricingInputs(ctx, s.Catalog, s.Users, sess.VendorID, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSubmissionFailed, err)
	}
	return s.viewOf(sess, vendor, service, in, userID != ""), nil
}

func (s *DefaultBookingSessionService) loadCatalog(ctx context.Context, vendorID, serviceID string) (*models.Vendor, *models.Service, error) {
	vendor, err := s.Catalog.GetVendor(ctx, vendorID)
	if errors.Is(err, catalogRepo.ErrNotFound) {
		return nil, nil, ErrVendorNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%w: loading vendor: %w", ErrSubmissionFailed, err)
	}
	service, err := s.Catalog.GetService(ctx, serviceID)
	if errors.Is(err, catalogRepo.ErrNotFound) {
		return nil, nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%w: loading service: %w", ErrSubmissionFailed, err)
	}
	if service.VendorID != "" && service.VendorID != vendor.ID {
		return nil, nil, ErrServiceNotFound
	}
	return vendor, service, nil
}

func (s *DefaultBookingSessionService) applyDate(sess *models.BookingSession, value string, hours models.OperatingHours) error {
	if value == "" {
		sess.Date, sess.Time = "", ""
		return nil
	}
	date, err := ParseDate(value)
	if err != nil {
		return err
	}
	now := s.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if date.Before(today) {
		return fmt.Errorf("%w: %s is in the past", ErrInvalidDate, value)
	}
	if !IsAvailable(date, hours) {
		return ErrDateUnavailable
	}
	sess.Date = value
	if sess.Time != "" && !HasSlot(date, hours, sess.Time) {
		sess.Time = ""
	}
	return nil
}

func applyTime(sess *models.BookingSession, value string, hours models.OperatingHours) error {
	if value == "" {
		sess.Time = ""
		return nil
	}
	if sess.Date == "" {
		return ErrMissingDate
	}
	date, err := ParseDate(sess.Date)
	if err != nil {
		return err
	}
	if !HasSlot(date, hours, value) {
		return fmt.Errorf("%w: %s", ErrInvalidTime, value)
	}
	sess.Time = value
	return nil
}

// rewindStep moves the session back to the earliest step whose selection
// is now missing.
func rewindStep(sess *models.BookingSession, hasSession bool) Step {
	step := Step(sess.Step)
	switch {
	case sess.Date == "" && stepOrder[step] > stepOrder[StepDate]:
		return StepDate
	case sess.Time == "" && stepOrder[step] > stepOrder[StepTime]:
		return StepTime
	case !sess.Details.Normalized().Complete() && stepOrder[step] > stepOrder[StepDetails]:
		return StepDetails
	}
	return Normalize(flowState(sess, hasSession))
}
