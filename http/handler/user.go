package handler

import (
	"fmt"
	"net/http"

	"github.com/xy-planning-network/roadtrip"
	"github.com/xy-planning-network/roadtrip/http/resp"
)

// userName responds with the display name of the current user.
func (h *Handler) userName(w http.ResponseWriter, r *http.Request) {
	u, err := h.responder.CurrentUser(r.Context())
	if err != nil {
		h.err(w, r, fmt.Errorf("%w: %s", roadtrip.ErrUnexpected, err))
		return
	}

	h.responder.Json(w, r, resp.Data(map[string]string{"username": u.DisplayName}))
}
