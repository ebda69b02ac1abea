package v1

import (
	"errors"
	"net/http"

	"storefront-checkout/internal/domain"
	"storefront-checkout/pkg/logger"
	"storefront-checkout/pkg/utils"
)

// writeUsecaseError translates domain errors into HTTP responses. Anything
// unrecognized is a 500 with the detail kept out of the body.
func writeUsecaseError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		utils.WriteJSON(w, http.StatusBadRequest, map[string]string{
			"error": validationErr.Message,
			"field": validationErr.Field,
		})
		return
	}

	var submissionErr *domain.SubmissionError
	if errors.As(err, &submissionErr) {
		// Payment captured but no order recorded is surfaced explicitly so
		// the client can tell the user not to retry payment.
		msg := submissionErr.Message
		if msg == "" {
			msg = "order submission failed"
		}
		utils.WriteJSON(w, http.StatusBadGateway, map[string]interface{}{
			"error":           msg,
			"paymentCaptured": submissionErr.PaymentCaptured,
		})
		return
	}

	switch {
	case errors.Is(err, domain.ErrSessionNotFound),
		errors.Is(err, domain.ErrAddressNotFound),
		errors.Is(err, domain.ErrPincodeNotFound):
		utils.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrEmptyCart),
		errors.Is(err, domain.ErrInvalidPincode),
		errors.Is(err, domain.ErrInvalidPhoneFormat),
		errors.Is(err, domain.ErrPaymentSignature):
		utils.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrPhoneNotVerified),
		errors.Is(err, domain.ErrNoAddressSelected),
		errors.Is(err, domain.ErrChallengeNotOpen),
		errors.Is(err, domain.ErrNoPaymentPending),
		errors.Is(err, domain.ErrLookupSuperseded),
		errors.Is(err, domain.ErrActionInFlight):
		utils.WriteError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrVerificationFailed),
		errors.Is(err, domain.ErrChallengeMismatch):
		utils.WriteError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, domain.ErrLookupFailed),
		errors.Is(err, domain.ErrPaymentUnavailable):
		utils.WriteError(w, http.StatusBadGateway, err.Error())
	default:
		logger.WithContext(r.Context()).Error().Err(err).Msg("Unhandled usecase error")
		utils.WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}

func currentUser(w http.ResponseWriter, r *http.Request) (*domain.User, bool) {
	user, ok := r.Context().Value(domain.UserContextKey).(*domain.User)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return nil, false
	}
	return user, true
}
