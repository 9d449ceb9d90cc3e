package ticket_api

import (
	"fmt"
	"net/http"

	"ms-hotelbooking/internal/auth"
	"ms-hotelbooking/internal/logger"
	"ms-hotelbooking/internal/tickets"
	"ms-hotelbooking/internal/utils"
)

type Handler struct {
	TicketService *tickets.TicketService
	Logger        *logger.Logger
}

func NewHandler(ticketService *tickets.TicketService, log *logger.Logger) *Handler {
	return &Handler{
		TicketService: ticketService,
		Logger:        log,
	}
}

func (h *Handler) GetTicketTypes(w http.ResponseWriter, r *http.Request) {
	ticketTypes, err := h.TicketService.GetTicketTypes(r.Context())
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("GetTicketTypes: %v", err))
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, ticketTypes)
}

func (h *Handler) GetUserTicket(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	h.Logger.Info("API", fmt.Sprintf("GetUserTicket: userId=%d", userID))

	ticket, err := h.TicketService.GetUserTicket(r.Context(), userID)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("GetUserTicket: %v", err))
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, ticket)
}
