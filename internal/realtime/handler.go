package realtime

import (
	"net/http"

	"tasktakr/internal/data/repository"
	"tasktakr/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Auth happens through the bearer token, not the Origin header.
		return true
	},
}

// Handler upgrades authenticated booking parties onto the hub.
type Handler struct {
	hub         *Hub
	bookingRepo repository.BookingRepository
	log         *zap.Logger
}

func NewHandler(hub *Hub, bookingRepo repository.BookingRepository, log *zap.Logger) *Handler {
	return &Handler{
		hub:         hub,
		bookingRepo: bookingRepo,
		log:         log.With(zap.String("handler", "realtime")),
	}
}

// ServeWS handles GET /ws/bookings/{bookingId}. Only the customer or the
// provider on the booking may join its room.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	bookingID, err := utils.ParseUUID(chi.URLParam(r, "bookingId"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid booking id", nil)
		return
	}

	booking, err := h.bookingRepo.FindByID(r.Context(), bookingID)
	if err != nil {
		utils.ResponseInternalError(w, "Failed to load booking")
		return
	}
	if booking == nil {
		utils.ResponseNotFound(w, "Booking not found")
		return
	}
	if !booking.IsParty(userID) {
		utils.ResponseForbidden(w, "Not a party on this booking")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("Websocket upgrade failed", zap.Error(err))
		return
	}

	client := &Client{
		hub:       h.hub,
		conn:      conn,
		send:      make(chan []byte, sendBuffer),
		BookingID: bookingID,
		UserID:    userID,
	}

	h.hub.register <- client

	go client.writePump()
	go client.readPump()
}
