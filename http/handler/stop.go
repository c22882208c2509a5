package handler

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/xy-planning-network/roadtrip"
	"github.com/xy-planning-network/roadtrip/http/resp"
)

// tripStops collects the stops embedded in every stops document of the trip, in order.
func (h *Handler) tripStops(r *http.Request) ([]roadtrip.Document, error) {
	docs, err := h.store.Find(r.Context(), roadtrip.StopsCollection, roadtrip.ByTripID(mux.Vars(r)["tripId"]))
	if err != nil {
		return nil, err
	}

	stops := make([]roadtrip.Document, 0)
	for _, doc := range docs {
		stops = append(stops, doc.Stops()...)
	}

	return stops, nil
}

// listStops responds with the stops of the trip identified by tripId.
func (h *Handler) listStops(w http.ResponseWriter, r *http.Request) {
	stops, err := h.tripStops(r)
	if err != nil {
		h.err(w, r, err)
		return
	}

	h.responder.Json(w, r, resp.Data(stops))
}

// countStops responds with the number of stops of the trip identified by tripId.
func (h *Handler) countStops(w http.ResponseWriter, r *http.Request) {
	stops, err := h.tripStops(r)
	if err != nil {
		h.err(w, r, err)
		return
	}

	h.responder.Json(w, r, resp.Data(len(stops)))
}

// getStop responds with the stop identified by stopId within the trip identified by tripId, or null.
func (h *Handler) getStop(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doc, err := h.store.FindOne(r.Context(), roadtrip.StopsCollection, roadtrip.ByStop(vars["tripId"], vars["stopId"]))
	if errors.Is(err, roadtrip.ErrNotExist) {
		h.responder.Json(w, r, resp.Data(nil))
		return
	}

	if err != nil {
		h.err(w, r, err)
		return
	}

	stop, ok := doc.Stop(vars["stopId"])
	if !ok {
		h.responder.Json(w, r, resp.Data(nil))
		return
	}

	h.responder.Json(w, r, resp.Data(stop))
}
