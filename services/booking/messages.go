package booking

import "errors"

// User-facing copy. The product UI is Finnish and the strings are kept verbatim.
const (
	MsgBookingConfirmed  = "Varaus vahvistettu! Kiitos varauksestasi."
	MsgGenericFailure    = "Varauksen tekeminen epäonnistui. Yritä uudelleen."
	MsgEmailInUse        = "Tällä sähköpostiosoitteella on jo tili. Kirjaudu sisään jatkaaksesi varausta."
	MsgSessionNotFound   = "Varausta ei löytynyt tai se on vanhentunut."
	MsgVendorNotFound    = "Pesupaikkaa ei löytynyt."
	MsgServiceNotFound   = "Palvelua ei löytynyt."
	MsgSubmissionPending = "Varaustasi käsitellään, odota hetki."
	MsgAlreadySubmitted  = "Varaus on jo tehty."
)

var messages = []struct {
	err error
	msg string
}{
	{ErrSessionNotFound, MsgSessionNotFound},
	{ErrVendorNotFound, MsgVendorNotFound},
	{ErrServiceNotFound, MsgServiceNotFound},
	{ErrSubmissionPending, MsgSubmissionPending},
	{ErrAlreadySubmitted, MsgAlreadySubmitted},
	{ErrNotReady, "Täydennä varauksen tiedot ennen vahvistamista."},
	{ErrMissingDate, "Valitse päivämäärä."},
	{ErrInvalidDate, "Valittu päivämäärä ei ole varattavissa."},
	{ErrDateUnavailable, "Pesupaikka on suljettu valittuna päivänä."},
	{ErrMissingTime, "Valitse kellonaika."},
	{ErrInvalidTime, "Valittu kellonaika ei ole varattavissa."},
	{ErrIncompleteDetails, "Täytä kaikki pakolliset kentät."},
	{ErrPasswordTooShort, "Salasanan tulee olla vähintään 6 merkkiä pitkä."},
	{ErrCoinsUnavailable, "Kolikoiden käyttö vaatii kirjautumisen ja kolikkosaldon."},
	{ErrInsufficientCoins, "Sinulla ei ole tarpeeksi kolikoita."},
	{ErrIdentityRequired, "Kirjaudu sisään tai luo tili tehdäksesi varauksen."},
}

// Message returns the Finnish text shown to the customer for err.
func Message(err error) string {
	var conflict *ConflictError
	if errors.As(err, &conflict) {
		return MsgEmailInUse
	}
	for _, m := range messages {
		if errors.Is(err, m.err) {
			return m.msg
		}
	}
	return MsgGenericFailure
}
