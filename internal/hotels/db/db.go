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

// ListHotels → all hotels and their count.
func (d *DB) ListHotels(ctx context.Context) ([]models.Hotel, int, error) {
	var hotels []models.Hotel
	count, err := d.Bun.NewSelect().
		Model(&hotels).
		Order("id ASC").
		ScanAndCount(ctx)
	if err != nil {
		return nil, 0, err
	}
	return hotels, count, nil
}

// GetHotelWithRooms → one hotel with its rooms, nil when absent.
func (d *DB) GetHotelWithRooms(ctx context.Context, hotelID int64) (*models.Hotel, error) {
	var hotel models.Hotel
	err := d.Bun.NewSelect().
		Model(&hotel).
		Relation("Rooms").
		Where("hotel.id = ?", hotelID).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &hotel, nil
}
