// Package events holds the event contract published by the checkout service.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Source is the CloudEvents source of every event emitted here.
const Source = "service-checkout"

// Topics.
const (
	TopicBookingEvents = "cinema.booking.events"
	TopicUserEvents    = "cinema.user.events"
)

// Event types.
const (
	BookingConfirmed     = "cinema.booking.confirmed"
	BookingCreditPending = "cinema.booking.credit_pending"
	BookingCredited      = "cinema.booking.credited"
	BookingCancelled     = "cinema.booking.cancelled"
	UserSignedUp         = "cinema.user.signed_up"
)

// Publisher emits an event on a topic. key selects the partition or routing key.
type Publisher interface {
	Publish(ctx context.Context, topic, eventType, key string, data interface{}) error
	Close() error
}

// BookingConfirmedEvent is emitted once the purchase is recorded and points are credited.
type BookingConfirmedEvent struct {
	BookingID    uuid.UUID `json:"booking_id"`
	UserID       uuid.UUID `json:"user_id"`
	MovieID      string    `json:"movie_id"`
	ShowtimeID   string    `json:"showtime_id"`
	Seats        []string  `json:"seats"`
	Total        float64   `json:"total"`
	PointsEarned int64     `json:"points_earned"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// CreditPendingEvent asks for the loyalty credit of a recorded purchase to be retried.
type CreditPendingEvent struct {
	BookingID  uuid.UUID `json:"booking_id"`
	UserID     uuid.UUID `json:"user_id"`
	Points     int64     `json:"points"`
	Reason     string    `json:"reason"`
	OccurredAt time.Time `json:"occurred_at"`
}

// BookingCreditedEvent is emitted when a pending credit is applied out of band.
type BookingCreditedEvent struct {
	BookingID  uuid.UUID `json:"booking_id"`
	UserID     uuid.UUID `json:"user_id"`
	Points     int64     `json:"points"`
	OccurredAt time.Time `json:"occurred_at"`
}

// BookingCancelledEvent is emitted when a booking is cancelled.
type BookingCancelledEvent struct {
	BookingID  uuid.UUID `json:"booking_id"`
	UserID     uuid.UUID `json:"user_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// UserSignedUpEvent is emitted after a credential and profile are created.
type UserSignedUpEvent struct {
	UserID     uuid.UUID `json:"user_id"`
	Email      string    `json:"email"`
	OccurredAt time.Time `json:"occurred_at"`
}
