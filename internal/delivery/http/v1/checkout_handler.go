package v1

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"storefront-checkout/internal/domain"
	"storefront-checkout/internal/usecase"
	"storefront-checkout/pkg/utils"
)

type CheckoutHandler struct {
	checkoutUC *usecase.CheckoutUsecase
}

func NewCheckoutHandler(uc *usecase.CheckoutUsecase) *CheckoutHandler {
	return &CheckoutHandler{checkoutUC: uc}
}

// sessionResponse is the session plus the derived totals; totals are never
// stored, always computed.
type sessionResponse struct {
	*domain.CheckoutSession
	Totals usecase.Totals `json:"totals"`
}

func (h *CheckoutHandler) respondSession(w http.ResponseWriter, r *http.Request, status int, s *domain.CheckoutSession, userID string) {
	totals, err := h.checkoutUC.Totals(s.ID, userID)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, status, sessionResponse{CheckoutSession: s, Totals: totals})
}

type startSessionReq struct {
	Items []domain.LineItem `json:"items"`
}

func (h *CheckoutHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req startSessionReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	s, err := h.checkoutUC.Start(r.Context(), user, req.Items)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	h.respondSession(w, r, http.StatusCreated, s, user.ID)
}

func (h *CheckoutHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	s, err := h.checkoutUC.Get(r.PathValue("id"), user.ID)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	h.respondSession(w, r, http.StatusOK, s, user.ID)
}

func (h *CheckoutHandler) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var upd usecase.DraftUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	s, err := h.checkoutUC.UpdateDraft(r.PathValue("id"), user.ID, upd)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	h.respondSession(w, r, http.StatusOK, s, user.ID)
}

func (h *CheckoutHandler) LookupPincode(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	result, err := h.checkoutUC.LookupPincode(r.Context(), r.PathValue("id"), user.ID)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, result)
}

func (h *CheckoutHandler) VerifyPhone(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	if err := h.checkoutUC.VerifyPhone(r.Context(), r.PathValue("id"), user.ID); err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]bool{"verified": true})
}

func (h *CheckoutHandler) SaveAddress(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	s, err := h.checkoutUC.SaveAddress(r.Context(), r.PathValue("id"), user.ID)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	h.respondSession(w, r, http.StatusOK, s, user.ID)
}

func (h *CheckoutHandler) StageNewAddress(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	s, err := h.checkoutUC.StageNew(r.PathValue("id"), user.ID)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	h.respondSession(w, r, http.StatusOK, s, user.ID)
}

func (h *CheckoutHandler) SelectAddress(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	s, err := h.checkoutUC.SelectAddress(r.PathValue("id"), user.ID, r.PathValue("addressId"))
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	h.respondSession(w, r, http.StatusOK, s, user.ID)
}

func (h *CheckoutHandler) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	s, err := h.checkoutUC.DeleteAddress(r.Context(), r.PathValue("id"), user.ID, r.PathValue("addressId"))
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	h.respondSession(w, r, http.StatusOK, s, user.ID)
}

type paymentModeReq struct {
	PaymentMode domain.PaymentMode `json:"paymentMode"`
}

func (h *CheckoutHandler) SetPaymentMode(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req paymentModeReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	s, err := h.checkoutUC.SetPaymentMode(r.PathValue("id"), user.ID, req.PaymentMode)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	h.respondSession(w, r, http.StatusOK, s, user.ID)
}

func (h *CheckoutHandler) OpenChallenge(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	ch, err := h.checkoutUC.OpenChallenge(r.PathValue("id"), user.ID)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, ch)
}

func (h *CheckoutHandler) CancelChallenge(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	if err := h.checkoutUC.CancelChallenge(r.PathValue("id"), user.ID); err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type verifyChallengeReq struct {
	Input string `json:"input"`
}

func (h *CheckoutHandler) VerifyChallenge(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req verifyChallengeReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	outcome, err := h.checkoutUC.VerifyChallenge(r.Context(), r.PathValue("id"), user.ID, req.Input)
	if err != nil {
		if errors.Is(err, domain.ErrChallengeMismatch) && outcome != nil {
			// Retry against the regenerated code in outcome.Challenge.
			utils.WriteJSON(w, http.StatusUnprocessableEntity, outcome)
			return
		}
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, outcome)
}

type confirmPaymentReq struct {
	PaymentID string `json:"paymentId"`
	Signature string `json:"signature"`
}

func (h *CheckoutHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req confirmPaymentReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	order, err := h.checkoutUC.ConfirmPayment(r.Context(), r.PathValue("id"), user.ID, req.PaymentID, req.Signature)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, order)
}
