package hotel_api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ms-hotelbooking/internal/auth"
	"ms-hotelbooking/internal/hotels"
	"ms-hotelbooking/internal/logger"
	"ms-hotelbooking/internal/utils"
)

type Handler struct {
	HotelService *hotels.HotelService
	Logger       *logger.Logger
}

func NewHandler(hotelService *hotels.HotelService, log *logger.Logger) *Handler {
	return &Handler{
		HotelService: hotelService,
		Logger:       log,
	}
}

func (h *Handler) ListHotels(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	h.Logger.Info("API", fmt.Sprintf("ListHotels: userId=%d", userID))

	hotelList, err := h.HotelService.ListHotels(r.Context(), userID)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("ListHotels: %v", err))
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, hotelList)
}

func (h *Handler) GetHotel(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	hotelIDParam := chi.URLParam(r, "hotelId")
	h.Logger.Info("API", fmt.Sprintf("GetHotel: userId=%d hotelId=%s", userID, hotelIDParam))

	hotel, err := h.HotelService.GetHotel(r.Context(), userID, hotelIDParam)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("GetHotel: %v", err))
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, hotel)
}
