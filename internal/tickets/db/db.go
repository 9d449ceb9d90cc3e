package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	"ms-hotelbooking/internal/models"
)

type DB struct {
	Bun *bun.DB
}

// GetEnrollmentByUserID → the user's registration record, nil when absent.
func (d *DB) GetEnrollmentByUserID(ctx context.Context, userID int64) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	err := d.Bun.NewSelect().
		Model(&enrollment).
		Where("user_id = ?", userID).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// GetTicketByEnrollmentID → the enrollment's ticket, nil when absent.
func (d *DB) GetTicketByEnrollmentID(ctx context.Context, enrollmentID int64) (*models.Ticket, error) {
	var ticket models.Ticket
	err := d.Bun.NewSelect().
		Model(&ticket).
		Where("enrollment_id = ?", enrollmentID).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

// GetTicketTypeByID → reference data for a ticket, nil when absent.
func (d *DB) GetTicketTypeByID(ctx context.Context, id int64) (*models.TicketType, error) {
	var ticketType models.TicketType
	err := d.Bun.NewSelect().
		Model(&ticketType).
		Where("id = ?", id).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ticketType, nil
}

// ListTicketTypes → all ticket types.
func (d *DB) ListTicketTypes(ctx context.Context) ([]models.TicketType, error) {
	var ticketTypes []models.TicketType
	err := d.Bun.NewSelect().
		Model(&ticketTypes).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return ticketTypes, nil
}
