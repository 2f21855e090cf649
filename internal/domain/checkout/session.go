package checkout

import (
	"fmt"
	"time"

	"github.com/cinemax-hub/service-checkout/internal/common/domain"
	"github.com/cinemax-hub/service-checkout/internal/domain/cart"
	"github.com/cinemax-hub/service-checkout/internal/domain/catalog"
	"github.com/cinemax-hub/service-checkout/internal/domain/seat"
	"github.com/google/uuid"
)

// State is the current step of a checkout session.
type State string

const (
	StateBrowse       State = "browse"
	StateDetails      State = "details"
	StateSeats        State = "seats"
	StateSnacks       State = "snacks"
	StateCheckout     State = "checkout"
	StateSubmitting   State = "submitting"
	StateConfirmation State = "confirmation"
	StateFailed       State = "failed"
)

// EventType names a discrete input to the session state machine.
type EventType string

const (
	EventSelectMovie       EventType = "select_movie"
	EventSelectShowtime    EventType = "select_showtime"
	EventConfirmSeats      EventType = "confirm_seats"
	EventProceedToCheckout EventType = "proceed_to_checkout"
	EventSubmit            EventType = "submit"
	EventCommitSucceeded   EventType = "commit_succeeded"
	EventCommitFailed      EventType = "commit_failed"
	EventBack              EventType = "back"
	EventReset             EventType = "reset"
)

// Event is a state machine input plus the payload it carries.
type Event struct {
	Type      EventType
	Movie     *catalog.Movie
	Showtime  *catalog.Showtime
	SeatMap   *seat.Map
	BookingID uuid.UUID
	Reason    string
}

// transitions lists every legal (state, event) pair and its target.
var transitions = map[State]map[EventType]State{
	StateBrowse: {
		EventSelectMovie: StateDetails,
	},
	StateDetails: {
		EventSelectMovie:    StateDetails,
		EventSelectShowtime: StateSeats,
		EventBack:           StateBrowse,
	},
	StateSeats: {
		EventConfirmSeats: StateSnacks,
		EventBack:         StateDetails,
	},
	StateSnacks: {
		EventProceedToCheckout: StateCheckout,
		EventBack:              StateSeats,
	},
	StateCheckout: {
		EventSubmit: StateSubmitting,
		EventBack:   StateSnacks,
	},
	StateSubmitting: {
		EventCommitSucceeded: StateConfirmation,
		EventCommitFailed:    StateFailed,
	},
	StateFailed: {
		EventSubmit: StateSubmitting,
		EventBack:   StateCheckout,
	},
	StateConfirmation: {},
}

// Session is one user's walk from browsing to a committed booking.
// Everything the checkout needs is carried as payload of the current state.
type Session struct {
	ID           uuid.UUID         `json:"id"`
	UserID       uuid.UUID         `json:"user_id"`
	State        State             `json:"state"`
	Movie        *catalog.Movie    `json:"movie,omitempty"`
	Showtime     *catalog.Showtime `json:"showtime,omitempty"`
	SeatMap      *seat.Map         `json:"seat_map,omitempty"`
	Cart         cart.Cart         `json:"cart"`
	AppliedPromo string            `json:"applied_promo,omitempty"`
	BookingID    *uuid.UUID        `json:"booking_id,omitempty"`
	LastError    string            `json:"last_error,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// NewSession starts a session in the browse state.
func NewSession(userID uuid.UUID) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        uuid.New(),
		UserID:    userID,
		State:     StateBrowse,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// CanFire reports whether ev is legal in the current state.
func (s *Session) CanFire(t EventType) bool {
	if t == EventReset {
		return s.State != StateSubmitting
	}
	_, ok := transitions[s.State][t]
	return ok
}

// Fire applies ev. Illegal transitions leave the session untouched.
func (s *Session) Fire(ev Event) error {
	if !s.CanFire(ev.Type) {
		return domain.NewInvalidStateError(string(s.State), string(ev.Type))
	}

	var next State
	if ev.Type == EventReset {
		next = StateBrowse
	} else {
		next = transitions[s.State][ev.Type]
	}

	switch ev.Type {
	case EventSelectMovie:
		if ev.Movie == nil {
			return domain.NewPreconditionError("a movie is required")
		}
		s.Movie = ev.Movie
		s.Showtime = nil
		s.SeatMap = nil
	case EventSelectShowtime:
		if ev.Showtime == nil || ev.SeatMap == nil {
			return domain.NewPreconditionError("a showtime and its seat map are required")
		}
		if ev.Showtime.MovieID != "" && s.Movie != nil && ev.Showtime.MovieID != s.Movie.ID {
			return domain.NewValidationError(fmt.Sprintf("showtime %s does not belong to movie %s", ev.Showtime.ID, s.Movie.ID))
		}
		s.Showtime = ev.Showtime
		s.SeatMap = ev.SeatMap
	case EventConfirmSeats:
		if len(s.SelectedSeats()) == 0 {
			return domain.NewPreconditionError("select at least one seat")
		}
	case EventSubmit:
		s.LastError = ""
	case EventCommitSucceeded:
		id := ev.BookingID
		s.BookingID = &id
		s.LastError = ""
	case EventCommitFailed:
		s.LastError = ev.Reason
	case EventBack:
		if s.State == StateSeats {
			s.Showtime = nil
			s.SeatMap = nil
		}
		if s.State == StateDetails {
			s.Movie = nil
		}
	case EventReset:
		s.Movie = nil
		s.Showtime = nil
		s.SeatMap = nil
		s.Cart.Clear()
		s.AppliedPromo = ""
		s.BookingID = nil
		s.LastError = ""
	}

	s.State = next
	s.touch()
	return nil
}

// ToggleSeat flips one seat while the seat map is on screen.
func (s *Session) ToggleSeat(id string) error {
	if s.State != StateSeats || s.SeatMap == nil {
		return domain.NewInvalidStateError(string(s.State), "toggle_seat")
	}
	if err := s.SeatMap.Toggle(id); err != nil {
		return err
	}
	s.touch()
	return nil
}

// SelectedSeats returns the seats chosen on the current seat map.
func (s *Session) SelectedSeats() []seat.Seat {
	if s.SeatMap == nil {
		return nil
	}
	return s.SeatMap.Selected()
}

// AddItem adds one unit of item in the given size.
func (s *Session) AddItem(item catalog.Concession, size cart.Size) error {
	if err := s.requireCartEditable("add_item"); err != nil {
		return err
	}
	s.Cart.Add(item, size)
	s.touch()
	return nil
}

// RemoveItem drops every line of itemID.
func (s *Session) RemoveItem(itemID string) error {
	if err := s.requireCartEditable("remove_item"); err != nil {
		return err
	}
	s.Cart.Remove(itemID)
	s.touch()
	return nil
}

// UpdateQuantity sets the quantity of every line of itemID.
func (s *Session) UpdateQuantity(itemID string, quantity int) error {
	if err := s.requireCartEditable("update_quantity"); err != nil {
		return err
	}
	s.Cart.UpdateQuantity(itemID, quantity)
	s.touch()
	return nil
}

// ApplyPromo records a validated promo code. Callers validate the code first.
func (s *Session) ApplyPromo(code string) error {
	if s.locked() {
		return domain.NewInvalidStateError(string(s.State), "apply_promo")
	}
	s.AppliedPromo = code
	s.touch()
	return nil
}

// ClearPromo removes the applied promo.
func (s *Session) ClearPromo() error {
	if s.locked() {
		return domain.NewInvalidStateError(string(s.State), "clear_promo")
	}
	s.AppliedPromo = ""
	s.touch()
	return nil
}

func (s *Session) requireCartEditable(action string) error {
	switch s.State {
	case StateSnacks, StateCheckout, StateFailed:
		return nil
	}
	return domain.NewInvalidStateError(string(s.State), action)
}

func (s *Session) locked() bool {
	return s.State == StateSubmitting || s.State == StateConfirmation
}

func (s *Session) touch() {
	s.UpdatedAt = time.Now().UTC()
}
