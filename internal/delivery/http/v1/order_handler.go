package v1

import (
	"net/http"

	"storefront-checkout/internal/usecase"
	"storefront-checkout/pkg/utils"
)

type OrderHandler struct {
	checkoutUC *usecase.CheckoutUsecase
}

func NewOrderHandler(uc *usecase.CheckoutUsecase) *OrderHandler {
	return &OrderHandler{checkoutUC: uc}
}

func (h *OrderHandler) GetMyOrders(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	orders, err := h.checkoutUC.GetMyOrders(r.Context(), user.ID)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, orders)
}
