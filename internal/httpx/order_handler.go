package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"plantstore-be/internal/order"
	"plantstore-be/internal/product"
	"plantstore-be/internal/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/multierr"
)

type orderHandler struct {
	service order.Service
}

type placeOrderRequest struct {
	CustomerName  string `json:"customer_name"`
	PhoneNumber   string `json:"phone_number"`
	Address       string `json:"address"`
	ProductID     uint   `json:"product_id"`
	Quantity      int    `json:"quantity"`
	Requirements  string `json:"requirements"`
	PaymentMethod string `json:"payment_method"`
}

func (h *orderHandler) Place(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	o, err := h.service.Place(r.Context(), order.PlaceInput{
		CustomerName:  req.CustomerName,
		PhoneNumber:   req.PhoneNumber,
		Address:       req.Address,
		ProductID:     req.ProductID,
		Quantity:      req.Quantity,
		Requirements:  req.Requirements,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		writePlaceError(w, err)
		return
	}

	utils.WriteJSON(w, o, http.StatusCreated)
}

func writePlaceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, order.ErrCustomerBanned):
		utils.WriteJSONError(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, product.ErrProductNotFound):
		utils.WriteJSONError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, order.ErrOutOfStock),
		errors.Is(err, order.ErrQuantityTooLarge):
		utils.WriteJSONError(w, err.Error(), http.StatusConflict)
	case errors.Is(err, order.ErrNameRequired),
		errors.Is(err, order.ErrInvalidPhone),
		errors.Is(err, order.ErrAddressRequired),
		errors.Is(err, order.ErrInvalidQuantity),
		errors.Is(err, order.ErrInvalidPayment):
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
	default:
		utils.WriteJSONError(w, "could not place order", http.StatusInternalServerError)
	}
}

// trackingIDParam decodes the path segment; tracking ids contain '#',
// which clients must percent-encode.
func trackingIDParam(r *http.Request) string {
	raw := chi.URLParam(r, "trackingID")
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded
	}
	return raw
}

func (h *orderHandler) Track(w http.ResponseWriter, r *http.Request) {
	trackingID := trackingIDParam(r)

	o, err := h.service.Track(r.Context(), trackingID)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			utils.WriteJSONError(w, "order not found", http.StatusNotFound)
			return
		}
		utils.WriteJSONError(w, "could not look up order", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, o, http.StatusOK)
}

func (h *orderHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	proj := order.Projection{
		Filter: order.ParseFilter(r.URL.Query().Get("filter")),
		Search: r.URL.Query().Get("search"),
	}

	orders, err := h.service.Orders(r.Context(), proj)
	if err != nil {
		utils.WriteJSONError(w, "could not load orders", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]any{
		"orders":   orders,
		"selected": h.service.Selection(r.Context()).IDs(),
	}, http.StatusOK)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *orderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	trackingID := trackingIDParam(r)

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	err := h.service.Transition(r.Context(), trackingID, order.Status(req.Status))
	switch {
	case err == nil:
		utils.WriteJSON(w, map[string]string{"tracking_id": trackingID, "status": req.Status}, http.StatusOK)
	case errors.Is(err, order.ErrInvalidStatus):
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, order.ErrOrderNotFound):
		utils.WriteJSONError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, order.ErrTransitionNotAllowed):
		utils.WriteJSONError(w, err.Error(), http.StatusConflict)
	default:
		utils.WriteJSONError(w, "could not update order", http.StatusInternalServerError)
	}
}

type bulkStatusRequest struct {
	TrackingIDs []string `json:"tracking_ids"`
	Status      string   `json:"status"`
}

// BulkStatus applies a status to the listed orders, or to the acting
// admin's selection when no ids are given. Partial failure still
// returns 200; the body carries the per-order outcome.
func (h *orderHandler) BulkStatus(w http.ResponseWriter, r *http.Request) {
	var req bulkStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if !order.ValidStatus(order.Status(req.Status)) {
		utils.WriteJSONError(w, "invalid order status", http.StatusBadRequest)
		return
	}

	ids := req.TrackingIDs
	if len(ids) == 0 {
		ids = h.service.Selection(r.Context()).IDs()
	}
	if len(ids) == 0 {
		utils.WriteJSONError(w, "no orders selected", http.StatusBadRequest)
		return
	}

	result := h.service.BulkTransition(r.Context(), ids, order.Status(req.Status))

	resp := map[string]any{
		"succeeded": result.Succeeded,
		"failed":    result.Failed,
	}
	if result.Err != nil {
		failures := make([]string, 0, result.Failed)
		for _, e := range multierr.Errors(result.Err) {
			failures = append(failures, e.Error())
		}
		resp["failures"] = failures
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *orderHandler) Export(w http.ResponseWriter, r *http.Request) {
	csv, err := h.service.Export(r.Context())
	if err != nil {
		utils.WriteJSONError(w, "could not export orders", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("orders_%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(csv))
}

type selectionRequest struct {
	TrackingID  string   `json:"tracking_id"`
	TrackingIDs []string `json:"tracking_ids"`
}

func (h *orderHandler) GetSelection(w http.ResponseWriter, r *http.Request) {
	sel := h.service.Selection(r.Context())
	utils.WriteJSON(w, map[string]any{"selected": sel.IDs(), "count": sel.Len()}, http.StatusOK)
}

func (h *orderHandler) ToggleSelection(w http.ResponseWriter, r *http.Request) {
	var req selectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.TrackingID == "" {
		utils.WriteJSONError(w, "tracking_id is required", http.StatusBadRequest)
		return
	}

	sel := h.service.Selection(r.Context())
	sel.Toggle(req.TrackingID)
	utils.WriteJSON(w, map[string]any{"selected": sel.IDs(), "count": sel.Len()}, http.StatusOK)
}

func (h *orderHandler) SelectAllVisible(w http.ResponseWriter, r *http.Request) {
	var req selectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	sel := h.service.Selection(r.Context())
	sel.SelectAllVisible(req.TrackingIDs)
	utils.WriteJSON(w, map[string]any{"selected": sel.IDs(), "count": sel.Len()}, http.StatusOK)
}

func (h *orderHandler) ClearSelection(w http.ResponseWriter, r *http.Request) {
	h.service.Selection(r.Context()).Clear()
	w.WriteHeader(http.StatusNoContent)
}
