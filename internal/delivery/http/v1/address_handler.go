package v1

import (
	"net/http"

	"github.com/goccy/go-json"

	"storefront-checkout/internal/domain"
	"storefront-checkout/internal/usecase"
	"storefront-checkout/pkg/utils"
)

// AddressHandler serves the saved-address book outside of any checkout
// session.
type AddressHandler struct {
	addressUC *usecase.AddressUsecase
}

func NewAddressHandler(uc *usecase.AddressUsecase) *AddressHandler {
	return &AddressHandler{addressUC: uc}
}

func (h *AddressHandler) ListAddresses(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	addrs, err := h.addressUC.List(r.Context(), user.ID)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, addrs)
}

func (h *AddressHandler) AddAddress(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var addr domain.Address
	if err := json.NewDecoder(r.Body).Decode(&addr); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	addrs, err := h.addressUC.Add(r.Context(), user.ID, addr)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, addrs)
}

func (h *AddressHandler) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	addressID := r.PathValue("id")
	if addressID == "" {
		utils.WriteError(w, http.StatusBadRequest, "Address ID required")
		return
	}

	addrs, err := h.addressUC.Delete(r.Context(), addressID, user.ID)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, addrs)
}
