package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/xy-planning-network/roadtrip"
	"github.com/xy-planning-network/roadtrip/http/resp"
	"github.com/xy-planning-network/roadtrip/logger"
)

// tripBody lists the fields of a trip the server relies on.
// Every other field of the body is stored as is.
type tripBody struct {
	TripID string `json:"tripId" validate:"required"`
	UserID string `json:"userId"`
}

// listTrips responds with the trips of the current user, in insertion order.
// Through the test mirror, every trip is listed.
func (h *Handler) listTrips(w http.ResponseWriter, r *http.Request) {
	filter := roadtrip.Filter{}
	if !roadtrip.IsTestRoute(r.Context()) {
		u, err := h.responder.CurrentUser(r.Context())
		if err != nil {
			h.err(w, r, fmt.Errorf("%w: %s", roadtrip.ErrUnexpected, err))
			return
		}
		filter = roadtrip.ByUserID(u.ID)
	}

	trips, err := h.store.Find(r.Context(), roadtrip.TripsCollection, filter)
	if err != nil {
		h.err(w, r, err)
		return
	}

	h.responder.Json(w, r, resp.Data(trips))
}

// createTrip stores the JSON object in the body as a trip, responding with its tripId.
//
// The owner of the trip is whatever userId the body carries.
func (h *Handler) createTrip(w http.ResponseWriter, r *http.Request) {
	var body tripBody
	doc, err := h.parser.ParseDocument(r.Body, &body)
	if err != nil {
		h.err(w, r, err)
		return
	}

	if u, ok := roadtrip.UserFromContext(r.Context()); ok && u.ID != body.UserID {
		h.logger.Warn("trip created for a user other than the session's", &logger.LogContext{
			Data:    map[string]any{"tripId": body.TripID, "userId": body.UserID},
			Request: r,
			User:    u,
		})
	}

	if err := h.store.Insert(r.Context(), roadtrip.TripsCollection, doc); err != nil {
		h.err(w, r, err)
		return
	}

	h.responder.Json(w, r, resp.Data(map[string]string{"id": body.TripID}))
}

// getTrip responds with the trip identified by tripId, or null.
func (h *Handler) getTrip(w http.ResponseWriter, r *http.Request) {
	trip, err := h.store.FindOne(r.Context(), roadtrip.TripsCollection, roadtrip.ByTripID(mux.Vars(r)["tripId"]))
	if errors.Is(err, roadtrip.ErrNotExist) {
		h.responder.Json(w, r, resp.Data(nil))
		return
	}

	if err != nil {
		h.err(w, r, err)
		return
	}

	h.responder.Json(w, r, resp.Data(trip))
}

// deleteTrip deletes every trip identified by tripId, responding with how many were.
func (h *Handler) deleteTrip(w http.ResponseWriter, r *http.Request) {
	n, err := h.store.Delete(r.Context(), roadtrip.TripsCollection, roadtrip.ByTripID(mux.Vars(r)["tripId"]))
	if err != nil {
		h.err(w, r, err)
		return
	}

	h.responder.Json(w, r, resp.Data(map[string]int64{"deletedCount": n}))
}

// countTrips responds with the number of trips stored.
func (h *Handler) countTrips(w http.ResponseWriter, r *http.Request) {
	n, err := h.store.Count(r.Context(), roadtrip.TripsCollection, nil)
	if err != nil {
		h.err(w, r, err)
		return
	}

	h.responder.Json(w, r, resp.Data(n))
}
