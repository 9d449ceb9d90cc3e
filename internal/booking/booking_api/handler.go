package booking_api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"ms-hotelbooking/internal/apperr"
	"ms-hotelbooking/internal/auth"
	"ms-hotelbooking/internal/booking"
	"ms-hotelbooking/internal/logger"
	"ms-hotelbooking/internal/models"
	"ms-hotelbooking/internal/utils"
)

type Handler struct {
	BookingService *booking.BookingService
	Logger         *logger.Logger
}

func NewHandler(bookingService *booking.BookingService, log *logger.Logger) *Handler {
	return &Handler{
		BookingService: bookingService,
		Logger:         log,
	}
}

func (h *Handler) GetBooking(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	h.Logger.Info("API", fmt.Sprintf("GetBooking: userId=%d", userID))

	bookingRoom, err := h.BookingService.GetBooking(r.Context(), userID)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("GetBooking: %v", err))
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, bookingRoom)
}

func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	var req models.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.RoomID <= 0 {
		utils.WriteError(w, apperr.BadRequest("roomId must be a positive number"))
		return
	}

	h.Logger.Info("API", fmt.Sprintf("CreateBooking: userId=%d roomId=%d", userID, req.RoomID))

	bookingID, err := h.BookingService.CreateBooking(r.Context(), userID, req.RoomID)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("CreateBooking: %v", err))
		utils.WriteError(w, err)
		return
	}

	h.Logger.LogBooking("CREATE", bookingID, fmt.Sprintf("room %d reserved for user %d", req.RoomID, userID))
	utils.WriteJSON(w, http.StatusOK, models.BookingResponse{BookingID: bookingID})
}

func (h *Handler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	bookingID, err := strconv.ParseInt(chi.URLParam(r, "bookingId"), 10, 64)
	if err != nil {
		utils.WriteError(w, apperr.BadRequest("bookingId must be a number"))
		return
	}

	var req models.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.RoomID <= 0 {
		utils.WriteError(w, apperr.BadRequest("roomId must be a positive number"))
		return
	}

	h.Logger.Info("API", fmt.Sprintf("UpdateBooking: userId=%d bookingId=%d roomId=%d", userID, bookingID, req.RoomID))

	updatedID, err := h.BookingService.UpdateBooking(r.Context(), userID, bookingID, req.RoomID)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("UpdateBooking: %v", err))
		utils.WriteError(w, err)
		return
	}

	h.Logger.LogBooking("MOVE", updatedID, fmt.Sprintf("user %d moved to room %d", userID, req.RoomID))
	utils.WriteJSON(w, http.StatusOK, models.BookingResponse{BookingID: updatedID})
}
