package kafka

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"ms-hotelbooking/internal/models"
)

// BookingEvent is the envelope published on booking lifecycle changes.
type BookingEvent struct {
	EventID    string    `json:"event_id"`
	Type       string    `json:"type"`
	BookingID  int64     `json:"booking_id"`
	UserID     int64     `json:"user_id"`
	RoomID     int64     `json:"room_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Producer struct {
	Writer       *kafka.Writer
	CreatedTopic string
	MovedTopic   string
}

func NewProducer(brokers []string, createdTopic, movedTopic string) *Producer {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Balancer: &kafka.LeastBytes{},
	}
	return &Producer{
		Writer:       writer,
		CreatedTopic: createdTopic,
		MovedTopic:   movedTopic,
	}
}

// PublishBookingCreated streams the booking creation event.
func (p *Producer) PublishBookingCreated(booking models.Booking) error {
	return p.publish(p.CreatedTopic, "booking_created", booking)
}

// PublishBookingMoved streams a room change event.
func (p *Producer) PublishBookingMoved(booking models.Booking) error {
	return p.publish(p.MovedTopic, "booking_moved", booking)
}

func (p *Producer) publish(topic, eventType string, booking models.Booking) error {
	event := BookingEvent{
		EventID:    uuid.New().String(),
		Type:       eventType,
		BookingID:  booking.ID,
		UserID:     booking.UserID,
		RoomID:     booking.RoomID,
		OccurredAt: time.Now().UTC(),
	}

	msgBytes, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.Writer.WriteMessages(context.Background(),
		kafka.Message{
			Topic: topic,
			Key:   []byte(strconv.FormatInt(booking.ID, 10)),
			Value: msgBytes,
		},
	)
}

func (p *Producer) Close() error {
	return p.Writer.Close()
}
