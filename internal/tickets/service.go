package tickets

import (
	"context"

	"ms-hotelbooking/internal/apperr"
	"ms-hotelbooking/internal/models"
)

type TicketDBLayer interface {
	GetEnrollmentByUserID(ctx context.Context, userID int64) (*models.Enrollment, error)
	GetTicketByEnrollmentID(ctx context.Context, enrollmentID int64) (*models.Ticket, error)
	GetTicketTypeByID(ctx context.Context, id int64) (*models.TicketType, error)
	ListTicketTypes(ctx context.Context) ([]models.TicketType, error)
}

// TicketService is the read-only ticket surface. Ticket creation and payment
// live in external flows; this service only reports state.
type TicketService struct {
	DB TicketDBLayer
}

func NewTicketService(db TicketDBLayer) *TicketService {
	return &TicketService{DB: db}
}

func (s *TicketService) GetTicketTypes(ctx context.Context) ([]models.TicketType, error) {
	ticketTypes, err := s.DB.ListTicketTypes(ctx)
	if err != nil {
		return nil, apperr.Internal("failed to list ticket types", err)
	}
	return ticketTypes, nil
}

// GetUserTicket resolves the caller's ticket with its type through their
// enrollment.
func (s *TicketService) GetUserTicket(ctx context.Context, userID int64) (*models.TicketWithType, error) {
	enrollment, err := s.DB.GetEnrollmentByUserID(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("failed to fetch enrollment", err)
	}
	if enrollment == nil {
		return nil, apperr.NotFound("user has no enrollment")
	}

	ticket, err := s.DB.GetTicketByEnrollmentID(ctx, enrollment.ID)
	if err != nil {
		return nil, apperr.Internal("failed to fetch ticket", err)
	}
	if ticket == nil {
		return nil, apperr.NotFound("no ticket found for user")
	}

	ticketType, err := s.DB.GetTicketTypeByID(ctx, ticket.TicketTypeID)
	if err != nil {
		return nil, apperr.Internal("failed to fetch ticket type", err)
	}
	if ticketType == nil {
		return nil, apperr.NotFound("ticket type not found")
	}

	return &models.TicketWithType{Ticket: *ticket, TicketType: *ticketType}, nil
}
