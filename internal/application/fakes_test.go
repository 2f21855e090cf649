package application

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cinemax-hub/service-checkout/internal/common/domain"
	"github.com/cinemax-hub/service-checkout/internal/domain/booking"
	"github.com/cinemax-hub/service-checkout/internal/domain/catalog"
	"github.com/cinemax-hub/service-checkout/internal/domain/checkout"
	"github.com/cinemax-hub/service-checkout/internal/domain/identity"
	"github.com/cinemax-hub/service-checkout/internal/domain/profile"
	"github.com/cinemax-hub/service-checkout/internal/domain/promo"
	"github.com/google/uuid"
)

// memStore backs every fake repository so credits and profiles stay consistent.
type memStore struct {
	mu          sync.Mutex
	profiles    map[uuid.UUID]*profile.Profile
	creds       map[string]identity.Credential
	purchases   []*booking.Booking
	promos      []*promo.PromoCode
	movies      []catalog.Movie
	showtimes   []catalog.Showtime
	concessions []catalog.Concession
	reviews     []catalog.Review

	appendErr error
	creditErr error
	findMisses int
}

func newMemStore() *memStore {
	movies, showtimes := catalog.SeedMovies()
	return &memStore{
		profiles:    map[uuid.UUID]*profile.Profile{},
		creds:       map[string]identity.Credential{},
		promos:      promo.Seed(time.Now()),
		movies:      movies,
		showtimes:   showtimes,
		concessions: catalog.SeedConcessions(),
	}
}

func (m *memStore) addProfile(name, email string) *profile.Profile {
	p, err := profile.NewProfile(uuid.New(), name, email, "", "", profile.DefaultSignupBonus)
	if err != nil {
		panic(err)
	}
	m.mu.Lock()
	m.profiles[p.ID()] = p
	m.mu.Unlock()
	return p
}

// --- profile.ProfileRepository ---

type memProfiles struct{ *memStore }

func (r memProfiles) FindByID(_ context.Context, id uuid.UUID) (*profile.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findMisses > 0 {
		r.findMisses--
		return nil, domain.NewNotFoundError("Profile", id.String())
	}
	p, ok := r.profiles[id]
	if !ok {
		return nil, domain.NewNotFoundError("Profile", id.String())
	}
	cp := profile.Reconstitute(p.ID(), p.Name(), p.Email(), p.Phone(), p.Birthday(), p.Avatar(), p.LoyaltyPoints(), p.MemberSince())
	return cp, nil
}

func (m *memStore) incrementLocked(id uuid.UUID, delta int64) error {
	p, ok := m.profiles[id]
	if !ok {
		return domain.NewNotFoundError("Profile", id.String())
	}
	m.profiles[id] = profile.Reconstitute(p.ID(), p.Name(), p.Email(), p.Phone(), p.Birthday(), p.Avatar(), p.LoyaltyPoints()+delta, p.MemberSince())
	return nil
}

func (m *memStore) points(id uuid.UUID) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.profiles[id].LoyaltyPoints()
}

// --- identity.CredentialRepository ---

type memCredentials struct{ *memStore }

func (r memCredentials) CreateWithProfile(_ context.Context, cred identity.Credential, p *profile.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.creds[cred.Email]; ok {
		return domain.NewConflictError("duplicate email")
	}
	r.creds[cred.Email] = cred
	r.profiles[p.ID()] = p
	return nil
}

func (r memCredentials) FindByEmail(_ context.Context, email string) (*identity.Credential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.creds[email]
	if !ok {
		return nil, domain.NewNotFoundError("Credential", email)
	}
	return &c, nil
}

// --- booking.PurchaseRepository and booking.LoyaltyLedger ---

type memPurchases struct{ *memStore }

func (r memPurchases) Append(_ context.Context, b *booking.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.appendErr != nil {
		return r.appendErr
	}
	r.purchases = append(r.purchases, b)
	return nil
}

func (r memPurchases) FindByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.purchases {
		if b.ID() == id {
			return b, nil
		}
	}
	return nil, domain.NewNotFoundError("Booking", id.String())
}

func (r memPurchases) FindByUser(_ context.Context, userID uuid.UUID) ([]*booking.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*booking.Booking
	for _, b := range r.purchases {
		if b.UserID() == userID {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt().After(out[j].CreatedAt()) })
	return out, nil
}

func (r memPurchases) FindPendingCredits(_ context.Context, cutoff time.Time, limit int) ([]*booking.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*booking.Booking
	for _, b := range r.purchases {
		if b.CreditStatus() == booking.CreditPending && !b.CreatedAt().After(cutoff) {
			out = append(out, b)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r memPurchases) UpdateStatus(context.Context, *booking.Booking) error { return nil }

func (r memPurchases) ListAll(_ context.Context, _, _ int) ([]*booking.Booking, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*booking.Booking(nil), r.purchases...), int64(len(r.purchases)), nil
}

func (r memPurchases) GetStats(context.Context) (*booking.Stats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	st := &booking.Stats{ByStatus: map[string]int64{}, ByCreditStatus: map[string]int64{}}
	for _, b := range r.purchases {
		st.Count++
		if b.Status() == booking.StatusConfirmed {
			st.Revenue += b.Total()
		}
		st.ByStatus[string(b.Status())]++
		st.ByCreditStatus[string(b.CreditStatus())]++
	}
	return st, nil
}

func (r memPurchases) CreditPoints(_ context.Context, bookingID, userID uuid.UUID, points int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.creditErr != nil {
		return false, r.creditErr
	}
	for _, b := range r.purchases {
		if b.ID() != bookingID {
			continue
		}
		if b.CreditStatus() == booking.CreditCredited {
			return false, nil
		}
		if err := r.incrementLocked(userID, points); err != nil {
			return false, err
		}
		return true, b.MarkCredited()
	}
	return false, nil
}

// --- promo.PromoRepository ---

type memPromos struct{ *memStore }

func (r memPromos) Save(_ context.Context, p *promo.PromoCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.promos = append(r.promos, p)
	return nil
}

func (r memPromos) FindByCode(_ context.Context, code string) (*promo.PromoCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.promos {
		if p.Code() == promo.NormalizeCode(code) {
			return p, nil
		}
	}
	return nil, domain.NewNotFoundError("Promo", code)
}

func (r memPromos) FindAll(context.Context) ([]*promo.PromoCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*promo.PromoCode(nil), r.promos...), nil
}

func (r memPromos) Count(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.promos)), nil
}

// --- catalog.CatalogRepository ---

type memCatalog struct{ *memStore }

func (r memCatalog) FindMovies(context.Context) ([]catalog.Movie, error) { return r.movies, nil }

func (r memCatalog) FindMovieByID(_ context.Context, id string) (*catalog.Movie, error) {
	for i := range r.movies {
		if r.movies[i].ID == id {
			m := r.movies[i]
			return &m, nil
		}
	}
	return nil, domain.NewNotFoundError("Movie", id)
}

func (r memCatalog) FindShowtimesByMovie(_ context.Context, movieID string) ([]catalog.Showtime, error) {
	var out []catalog.Showtime
	for _, st := range r.showtimes {
		if st.MovieID == movieID {
			out = append(out, st)
		}
	}
	return out, nil
}

func (r memCatalog) FindShowtimeByID(_ context.Context, id string) (*catalog.Showtime, error) {
	for i := range r.showtimes {
		if r.showtimes[i].ID == id {
			st := r.showtimes[i]
			return &st, nil
		}
	}
	return nil, domain.NewNotFoundError("Showtime", id)
}

func (r memCatalog) FindConcessions(context.Context) ([]catalog.Concession, error) {
	return r.concessions, nil
}

func (r memCatalog) FindConcessionByID(_ context.Context, id string) (*catalog.Concession, error) {
	for i := range r.concessions {
		if r.concessions[i].ID == id {
			c := r.concessions[i]
			return &c, nil
		}
	}
	return nil, domain.NewNotFoundError("Concession", id)
}

func (r memCatalog) FindReviewsByMovie(_ context.Context, movieID string) ([]catalog.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []catalog.Review
	for i := len(r.reviews) - 1; i >= 0; i-- {
		if r.reviews[i].MovieID == movieID {
			out = append(out, r.reviews[i])
		}
	}
	return out, nil
}

func (r memCatalog) AddReview(_ context.Context, review catalog.Review) (*catalog.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.movies {
		if r.movies[i].ID == review.MovieID {
			r.movies[i].AddRating(review.Rating)
			r.reviews = append(r.reviews, review)
			m := r.movies[i]
			return &m, nil
		}
	}
	return nil, domain.NewNotFoundError("Movie", review.MovieID)
}

func (r memCatalog) Seed(context.Context, []catalog.Movie, []catalog.Showtime, []catalog.Concession) (bool, error) {
	return false, nil
}

// --- checkout.SessionStore ---

type memSessions struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]checkout.Session
}

func newMemSessions() *memSessions {
	return &memSessions{sessions: map[uuid.UUID]checkout.Session{}}
}

func (s *memSessions) Save(_ context.Context, sess *checkout.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = *sess
	return nil
}

func (s *memSessions) Get(_ context.Context, id uuid.UUID) (*checkout.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, domain.NewNotFoundError("Session", id.String())
	}
	return &sess, nil
}

func (s *memSessions) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// --- events.Publisher ---

type recordingPublisher struct {
	mu    sync.Mutex
	types []string
}

func (p *recordingPublisher) Publish(_ context.Context, _, eventType, _ string, _ interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.types = append(p.types, eventType)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) published() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.types...)
}

// alwaysAvailable makes every generated seat available.
type alwaysAvailable struct{}

func (alwaysAvailable) Float64() float64 { return 0.99 }
