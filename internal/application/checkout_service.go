package application

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/cinemax-hub/service-checkout/internal/common/domain"
	"github.com/cinemax-hub/service-checkout/internal/domain/cart"
	"github.com/cinemax-hub/service-checkout/internal/domain/catalog"
	"github.com/cinemax-hub/service-checkout/internal/domain/checkout"
	"github.com/cinemax-hub/service-checkout/internal/domain/pricing"
	"github.com/cinemax-hub/service-checkout/internal/domain/profile"
	"github.com/cinemax-hub/service-checkout/internal/domain/seat"
	"github.com/cinemax-hub/service-checkout/internal/saga"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AddItemRequest adds one unit of a concession to the cart.
type AddItemRequest struct {
	ItemID string `json:"item_id" binding:"required"`
	Size   string `json:"size"`
}

// UpdateQuantityRequest sets the quantity of every line of an item.
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required,min=0"`
}

// ApplyPromoRequest applies a promo code to the session.
type ApplyPromoRequest struct {
	Code string `json:"code" binding:"required"`
}

// CartLineDTO is one cart line with its computed total.
type CartLineDTO struct {
	ItemID    string  `json:"item_id"`
	Name      string  `json:"name"`
	Size      string  `json:"size,omitempty"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	LineTotal float64 `json:"line_total"`
}

// QuoteDTO is the price breakdown with display strings.
type QuoteDTO struct {
	pricing.Quote
	SeatsTotalLabel  string `json:"seats_total_label"`
	SnacksTotalLabel string `json:"snacks_total_label"`
	DiscountLabel    string `json:"discount_label"`
	TotalLabel       string `json:"total_label"`
}

// SessionDTO is the API representation of a checkout session.
type SessionDTO struct {
	ID            uuid.UUID         `json:"id"`
	State         string            `json:"state"`
	Movie         *catalog.Movie    `json:"movie,omitempty"`
	Showtime      *catalog.Showtime `json:"showtime,omitempty"`
	SeatMap       *seat.Map         `json:"seat_map,omitempty"`
	SelectedSeats []string          `json:"selected_seats"`
	Cart          []CartLineDTO     `json:"cart"`
	AppliedPromo  string            `json:"applied_promo,omitempty"`
	Quote         QuoteDTO          `json:"quote"`
	BookingID     *uuid.UUID        `json:"booking_id,omitempty"`
	LastError     string            `json:"last_error,omitempty"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// CommitResultDTO is returned by a successful checkout.
type CommitResultDTO struct {
	Booking       BookingDTO `json:"booking"`
	LoyaltyPoints int64      `json:"loyalty_points"`
	Session       SessionDTO `json:"session"`
}

type mathRandSource struct{}

func (mathRandSource) Float64() float64 { return rand.Float64() }

// CheckoutService drives checkout sessions from browsing to a committed booking.
type CheckoutService struct {
	sessions  checkout.SessionStore
	catalog   catalog.CatalogRepository
	promos    *PromoService
	profiles  profile.ProfileRepository
	sagaSvc   *saga.BookingSagaService
	layout    seat.Layout
	occupancy float64
	rng       seat.RandomSource
	logger    *zap.Logger
}

// NewCheckoutService creates a new CheckoutService. A nil rng uses math/rand.
func NewCheckoutService(
	sessions checkout.SessionStore,
	catalogRepo catalog.CatalogRepository,
	promos *PromoService,
	profiles profile.ProfileRepository,
	sagaSvc *saga.BookingSagaService,
	occupancy float64,
	rng seat.RandomSource,
	logger *zap.Logger,
) *CheckoutService {
	if rng == nil {
		rng = mathRandSource{}
	}
	return &CheckoutService{
		sessions:  sessions,
		catalog:   catalogRepo,
		promos:    promos,
		profiles:  profiles,
		sagaSvc:   sagaSvc,
		layout:    seat.DefaultLayout(),
		occupancy: occupancy,
		rng:       rng,
		logger:    logger,
	}
}

// StartSession opens a new session in the browse state.
func (s *CheckoutService) StartSession(ctx context.Context, userID uuid.UUID) (*SessionDTO, error) {
	sess := checkout.NewSession(userID)
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	return s.toDTO(ctx, sess)
}

// GetSession returns the caller's session.
func (s *CheckoutService) GetSession(ctx context.Context, userID, sessionID uuid.UUID) (*SessionDTO, error) {
	sess, err := s.load(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	return s.toDTO(ctx, sess)
}

// SelectMovie moves the session to the movie details step.
func (s *CheckoutService) SelectMovie(ctx context.Context, userID, sessionID uuid.UUID, movieID string) (*SessionDTO, error) {
	m, err := s.catalog.FindMovieByID(ctx, movieID)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, userID, sessionID, func(sess *checkout.Session) error {
		return sess.Fire(checkout.Event{Type: checkout.EventSelectMovie, Movie: m})
	})
}

// SelectShowtime generates a fresh seat map for the showtime.
func (s *CheckoutService) SelectShowtime(ctx context.Context, userID, sessionID uuid.UUID, showtimeID string) (*SessionDTO, error) {
	st, err := s.catalog.FindShowtimeByID(ctx, showtimeID)
	if err != nil {
		return nil, err
	}
	seats := seat.Generate(s.layout, s.occupancy, s.rng)
	return s.mutate(ctx, userID, sessionID, func(sess *checkout.Session) error {
		return sess.Fire(checkout.Event{Type: checkout.EventSelectShowtime, Showtime: st, SeatMap: &seats})
	})
}

// ToggleSeat flips one seat.
func (s *CheckoutService) ToggleSeat(ctx context.Context, userID, sessionID uuid.UUID, seatID string) (*SessionDTO, error) {
	return s.mutate(ctx, userID, sessionID, func(sess *checkout.Session) error {
		return sess.ToggleSeat(seatID)
	})
}

// ConfirmSeats moves on to the concession stand.
func (s *CheckoutService) ConfirmSeats(ctx context.Context, userID, sessionID uuid.UUID) (*SessionDTO, error) {
	return s.fire(ctx, userID, sessionID, checkout.EventConfirmSeats)
}

// ProceedToCheckout moves on to payment review.
func (s *CheckoutService) ProceedToCheckout(ctx context.Context, userID, sessionID uuid.UUID) (*SessionDTO, error) {
	return s.fire(ctx, userID, sessionID, checkout.EventProceedToCheckout)
}

// Back returns to the previous step.
func (s *CheckoutService) Back(ctx context.Context, userID, sessionID uuid.UUID) (*SessionDTO, error) {
	return s.fire(ctx, userID, sessionID, checkout.EventBack)
}

// Reset clears the session back to browsing.
func (s *CheckoutService) Reset(ctx context.Context, userID, sessionID uuid.UUID) (*SessionDTO, error) {
	return s.fire(ctx, userID, sessionID, checkout.EventReset)
}

// AbandonSession drops the session from the store. A session mid-commit cannot be abandoned.
func (s *CheckoutService) AbandonSession(ctx context.Context, userID, sessionID uuid.UUID) error {
	sess, err := s.load(ctx, userID, sessionID)
	if err != nil {
		return err
	}
	if sess.State == checkout.StateSubmitting {
		return domain.NewInvalidStateError(string(sess.State), "abandoned")
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return err
	}
	s.logger.Info("checkout session abandoned",
		zap.String("session_id", sessionID.String()),
		zap.String("state", string(sess.State)),
	)
	return nil
}

// AddItem adds one unit of a concession in the requested size.
func (s *CheckoutService) AddItem(ctx context.Context, userID, sessionID uuid.UUID, req AddItemRequest) (*SessionDTO, error) {
	size, err := cart.ParseSize(req.Size)
	if err != nil {
		return nil, err
	}
	item, err := s.catalog.FindConcessionByID(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	if size != cart.SizeNone && !item.HasSizes() {
		return nil, domain.NewValidationError(item.Name + " is not sold in sizes")
	}
	return s.mutate(ctx, userID, sessionID, func(sess *checkout.Session) error {
		return sess.AddItem(*item, size)
	})
}

// RemoveItem removes every line of an item.
func (s *CheckoutService) RemoveItem(ctx context.Context, userID, sessionID uuid.UUID, itemID string) (*SessionDTO, error) {
	return s.mutate(ctx, userID, sessionID, func(sess *checkout.Session) error {
		return sess.RemoveItem(itemID)
	})
}

// UpdateQuantity sets the quantity of every line of an item.
func (s *CheckoutService) UpdateQuantity(ctx context.Context, userID, sessionID uuid.UUID, itemID string, quantity int) (*SessionDTO, error) {
	return s.mutate(ctx, userID, sessionID, func(sess *checkout.Session) error {
		return sess.UpdateQuantity(itemID, quantity)
	})
}

// ApplyPromo validates code and records it. An invalid code leaves the session untouched.
func (s *CheckoutService) ApplyPromo(ctx context.Context, userID, sessionID uuid.UUID, code string) (*SessionDTO, error) {
	p, err := s.promos.ApplyCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, userID, sessionID, func(sess *checkout.Session) error {
		return sess.ApplyPromo(p.Code())
	})
}

// ClearPromo removes the applied promo.
func (s *CheckoutService) ClearPromo(ctx context.Context, userID, sessionID uuid.UUID) (*SessionDTO, error) {
	return s.mutate(ctx, userID, sessionID, func(sess *checkout.Session) error {
		return sess.ClearPromo()
	})
}

// Quote prices the session as it stands.
func (s *CheckoutService) Quote(ctx context.Context, userID, sessionID uuid.UUID) (*QuoteDTO, error) {
	sess, err := s.load(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	q, err := s.quote(ctx, sess)
	if err != nil {
		return nil, err
	}
	dto := toQuoteDTO(q)
	return &dto, nil
}

// Submit commits the booking. The session ends in confirmation or failed.
func (s *CheckoutService) Submit(ctx context.Context, userID, sessionID uuid.UUID) (*CommitResultDTO, error) {
	sess, err := s.load(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if !sess.CanFire(checkout.EventSubmit) {
		return nil, domain.NewInvalidStateError(string(sess.State), string(checkout.EventSubmit))
	}

	user, err := s.profiles.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewPreconditionError("no profile for the signed-in user")
		}
		return nil, err
	}

	q, err := s.quote(ctx, sess)
	if err != nil {
		return nil, err
	}

	if err := sess.Fire(checkout.Event{Type: checkout.EventSubmit}); err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}

	// Once submitting is stored the commit runs to completion even if the caller goes away.
	commitCtx := context.WithoutCancel(ctx)

	promoCode := ""
	if q.PromoApplied {
		promoCode = q.PromoCode
	}

	s.logger.Info("submitting booking",
		zap.String("session_id", sess.ID.String()),
		zap.String("user_id", userID.String()),
		zap.Float64("total", q.Total),
	)

	b, commitErr := s.sagaSvc.CommitBookingSaga(commitCtx, saga.CommitRequest{
		User:      user,
		Movie:     sess.Movie,
		Showtime:  sess.Showtime,
		Seats:     sess.SelectedSeats(),
		Cart:      sess.Cart,
		Total:     q.Total,
		PromoCode: promoCode,
	})

	if commitErr != nil {
		_ = sess.Fire(checkout.Event{Type: checkout.EventCommitFailed, Reason: commitErr.Error()})
		if err := s.sessions.Save(commitCtx, sess); err != nil {
			s.logger.Error("failed to save failed session", zap.Error(err))
		}
		return nil, commitErr
	}

	if err := sess.Fire(checkout.Event{Type: checkout.EventCommitSucceeded, BookingID: b.ID()}); err != nil {
		return nil, err
	}
	if err := s.sessions.Save(commitCtx, sess); err != nil {
		s.logger.Error("failed to save confirmed session", zap.Error(err))
	}

	sessDTO, err := s.toDTO(commitCtx, sess)
	if err != nil {
		return nil, err
	}
	return &CommitResultDTO{
		Booking:       toBookingDTO(b),
		LoyaltyPoints: user.LoyaltyPoints(),
		Session:       *sessDTO,
	}, nil
}

func (s *CheckoutService) fire(ctx context.Context, userID, sessionID uuid.UUID, t checkout.EventType) (*SessionDTO, error) {
	return s.mutate(ctx, userID, sessionID, func(sess *checkout.Session) error {
		return sess.Fire(checkout.Event{Type: t})
	})
}

func (s *CheckoutService) mutate(ctx context.Context, userID, sessionID uuid.UUID, fn func(*checkout.Session) error) (*SessionDTO, error) {
	sess, err := s.load(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if err := fn(sess); err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	return s.toDTO(ctx, sess)
}

func (s *CheckoutService) load(ctx context.Context, userID, sessionID uuid.UUID) (*checkout.Session, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.UserID != userID {
		return nil, domain.NewNotFoundError("Session", sessionID.String())
	}
	return sess, nil
}

func (s *CheckoutService) quote(ctx context.Context, sess *checkout.Session) (pricing.Quote, error) {
	cat, err := s.promos.Catalog(ctx)
	if err != nil {
		return pricing.Quote{}, err
	}
	return pricing.ComputeTotal(sess.SelectedSeats(), sess.Cart, sess.AppliedPromo, cat), nil
}

func (s *CheckoutService) toDTO(ctx context.Context, sess *checkout.Session) (*SessionDTO, error) {
	q, err := s.quote(ctx, sess)
	if err != nil {
		return nil, err
	}

	lines := make([]CartLineDTO, 0, len(sess.Cart.Lines))
	for _, l := range sess.Cart.Lines {
		lines = append(lines, CartLineDTO{
			ItemID:    l.Item.ID,
			Name:      l.Item.Name,
			Size:      string(l.Size),
			Quantity:  l.Quantity,
			UnitPrice: l.Item.Price * l.Size.Multiplier(),
			LineTotal: l.Total(),
		})
	}

	return &SessionDTO{
		ID:            sess.ID,
		State:         string(sess.State),
		Movie:         sess.Movie,
		Showtime:      sess.Showtime,
		SeatMap:       sess.SeatMap,
		SelectedSeats: seat.IDs(sess.SelectedSeats()),
		Cart:          lines,
		AppliedPromo:  sess.AppliedPromo,
		Quote:         toQuoteDTO(q),
		BookingID:     sess.BookingID,
		LastError:     sess.LastError,
		UpdatedAt:     sess.UpdatedAt,
	}, nil
}

func toQuoteDTO(q pricing.Quote) QuoteDTO {
	return QuoteDTO{
		Quote:            q,
		SeatsTotalLabel:  pricing.FormatAmount(q.SeatsTotal),
		SnacksTotalLabel: pricing.FormatAmount(q.SnacksTotal),
		DiscountLabel:    pricing.FormatAmount(q.Discount),
		TotalLabel:       pricing.FormatAmount(q.Total),
	}
}
