package handler

import (
	"net/http"

	"github.com/fekuna/omnipos-sale-terminal/internal/delivery/httpserver"
	"github.com/fekuna/omnipos-sale-terminal/internal/notice"
)

type NoticeHandler struct {
	bus *notice.Bus
}

func NewNoticeHandler(bus *notice.Bus) *NoticeHandler {
	return &NoticeHandler{bus: bus}
}

// ListActive returns the notices that have not yet expired. Expiry is
// time-based; there is no acknowledgement.
func (h *NoticeHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	notices := h.bus.Active()
	if notices == nil {
		notices = []notice.Notice{}
	}
	httpserver.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"notices": notices,
	})
}
