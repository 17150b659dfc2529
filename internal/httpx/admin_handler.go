package httpx

import (
	"errors"
	"net/http"

	"plantstore-be/internal/customer"
	"plantstore-be/internal/notification"
	"plantstore-be/internal/stats"
	"plantstore-be/internal/utils"
)

type adminHandler struct {
	customers     customer.Service
	notifications notification.Service
	stats         stats.Service
}

func (h *adminHandler) ListBanned(w http.ResponseWriter, r *http.Request) {
	customers, err := h.customers.List(r.Context())
	if err != nil {
		utils.WriteJSONError(w, "could not load banned customers", http.StatusInternalServerError)
		return
	}
	utils.WriteJSON(w, customers, http.StatusOK)
}

type banRequest struct {
	PhoneNumber string `json:"phone_number"`
	Name        string `json:"name"`
	Reason      string `json:"reason"`
}

func (h *adminHandler) Ban(w http.ResponseWriter, r *http.Request) {
	var req banRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	banned, err := h.customers.Ban(r.Context(), req.PhoneNumber, req.Name, req.Reason)
	switch {
	case err == nil:
		utils.WriteJSON(w, banned, http.StatusCreated)
	case errors.Is(err, customer.ErrInvalidPhone):
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, customer.ErrAlreadyBanned):
		utils.WriteJSONError(w, err.Error(), http.StatusConflict)
	default:
		utils.WriteJSONError(w, "could not ban customer", http.StatusInternalServerError)
	}
}

func (h *adminHandler) Unban(w http.ResponseWriter, r *http.Request) {
	var req banRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	err := h.customers.Unban(r.Context(), req.PhoneNumber)
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, customer.ErrInvalidPhone):
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, customer.ErrNotBanned):
		utils.WriteJSONError(w, err.Error(), http.StatusNotFound)
	default:
		utils.WriteJSONError(w, "could not unban customer", http.StatusInternalServerError)
	}
}

func (h *adminHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.notifications.List(r.Context())
	if err != nil {
		utils.WriteJSONError(w, "could not load notifications", http.StatusInternalServerError)
		return
	}

	unread, err := h.notifications.UnreadCount(r.Context())
	if err != nil {
		utils.WriteJSONError(w, "could not load notifications", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]any{
		"notifications": notifications,
		"unread":        unread,
	}, http.StatusOK)
}

func (h *adminHandler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	err := h.notifications.MarkRead(r.Context(), id)
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, notification.ErrNotificationNotFound):
		utils.WriteJSONError(w, err.Error(), http.StatusNotFound)
	default:
		utils.WriteJSONError(w, "could not update notification", http.StatusInternalServerError)
	}
}

func (h *adminHandler) MarkAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	if err := h.notifications.MarkAllRead(r.Context()); err != nil {
		utils.WriteJSONError(w, "could not update notifications", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *adminHandler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	d, err := h.stats.Dashboard(r.Context())
	if err != nil {
		utils.WriteJSONError(w, "could not load stats", http.StatusInternalServerError)
		return
	}
	utils.WriteJSON(w, d, http.StatusOK)
}
