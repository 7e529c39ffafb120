package booking

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/cinematix/cinema-ticket-system/internal/model"
)

// memDB is an in-memory DB with the same transactional contract as the
// MySQL store: InTx mutates a deep copy of the data and swaps it in
// only when fn succeeds, so a failing unit of work leaves everything
// untouched.  A single mutex serializes units of work, which matches
// the serializable behavior the version tokens give the SQL store for
// the row sets these tests touch.
type memDB struct {
	mu sync.Mutex
	memStore
}

type memStore struct {
	movies     map[uint64]model.Movie
	screenings map[uint64]model.Screening
	seats      map[uint64]model.Seat
	bookings   map[uint64]model.Booking
	users      map[uint64]model.User
	nextID     uint64
}

func newMemDB() *memDB {
	return &memDB{memStore: memStore{
		movies:     map[uint64]model.Movie{},
		screenings: map[uint64]model.Screening{},
		seats:      map[uint64]model.Seat{},
		bookings:   map[uint64]model.Booking{},
		users:      map[uint64]model.User{},
		nextID:     0,
	}}
}

func (d *memDB) InTx(ctx context.Context, fn func(Store) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	work := d.memStore.clone()
	if err := fn(&work); err != nil {
		return err
	}
	d.memStore = work
	return nil
}

// Standalone reads also take the lock so concurrent tests stay clean.

func (d *memDB) GetMovie(ctx context.Context, id uint64) (*model.Movie, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.memStore.GetMovie(ctx, id)
}

func (d *memDB) GetScreening(ctx context.Context, id uint64) (*model.Screening, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.memStore.GetScreening(ctx, id)
}

func (d *memDB) ListScreenings(ctx context.Context, activeOnly bool) ([]model.Screening, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.memStore.ListScreenings(ctx, activeOnly)
}

func (d *memDB) DeactivateScreening(ctx context.Context, id uint64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.memStore.DeactivateScreening(ctx, id)
}

func (d *memDB) SeatsByScreening(ctx context.Context, screeningID uint64) ([]model.Seat, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.memStore.SeatsByScreening(ctx, screeningID)
}

func (d *memDB) SeatsByScreeningAndIDs(ctx context.Context, screeningID uint64, seatIDs []uint64) ([]model.Seat, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.memStore.SeatsByScreeningAndIDs(ctx, screeningID, seatIDs)
}

func (d *memDB) SeatsByBooking(ctx context.Context, bookingID uint64) ([]model.Seat, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.memStore.SeatsByBooking(ctx, bookingID)
}

func (d *memDB) GetBooking(ctx context.Context, id uint64) (*model.Booking, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.memStore.GetBooking(ctx, id)
}

func (d *memDB) BookingsByUser(ctx context.Context, userID uint64) ([]model.Booking, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.memStore.BookingsByUser(ctx, userID)
}

func (d *memDB) GetUser(ctx context.Context, id uint64) (*model.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.memStore.GetUser(ctx, id)
}

func (d *memDB) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.memStore.GetUserByEmail(ctx, email)
}

func (d *memDB) InsertMovie(ctx context.Context, m *model.Movie) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.memStore.InsertMovie(ctx, m)
}

func (d *memDB) InsertScreening(ctx context.Context, s *model.Screening) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.memStore.InsertScreening(ctx, s)
}

func (d *memDB) InsertSeats(ctx context.Context, seats []model.Seat) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.memStore.InsertSeats(ctx, seats)
}

func (d *memDB) MarkSeatsBooked(ctx context.Context, bookingID uint64, seats []model.Seat) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.memStore.MarkSeatsBooked(ctx, bookingID, seats)
}

func (d *memDB) ReleaseSeats(ctx context.Context, seats []model.Seat) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.memStore.ReleaseSeats(ctx, seats)
}

func (d *memDB) InsertBooking(ctx context.Context, b *model.Booking) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.memStore.InsertBooking(ctx, b)
}

func (d *memDB) DeleteBooking(ctx context.Context, id, expectedVersion uint64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.memStore.DeleteBooking(ctx, id, expectedVersion)
}

func (d *memDB) InsertUser(ctx context.Context, u *model.User) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.memStore.InsertUser(ctx, u)
}

func (d *memDB) UpdateUserProfile(ctx context.Context, u *model.User, expectedVersion uint64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.memStore.UpdateUserProfile(ctx, u, expectedVersion)
}

func (d *memDB) DeleteUser(ctx context.Context, id, expectedVersion uint64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.memStore.DeleteUser(ctx, id, expectedVersion)
}

func (s *memStore) clone() memStore {
	out := memStore{
		movies:     make(map[uint64]model.Movie, len(s.movies)),
		screenings: make(map[uint64]model.Screening, len(s.screenings)),
		seats:      make(map[uint64]model.Seat, len(s.seats)),
		bookings:   make(map[uint64]model.Booking, len(s.bookings)),
		users:      make(map[uint64]model.User, len(s.users)),
		nextID:     s.nextID,
	}
	for k, v := range s.movies {
		out.movies[k] = v
	}
	for k, v := range s.screenings {
		out.screenings[k] = v
	}
	for k, v := range s.seats {
		if v.BookingID != nil {
			id := *v.BookingID
			v.BookingID = &id
		}
		out.seats[k] = v
	}
	for k, v := range s.bookings {
		out.bookings[k] = v
	}
	for k, v := range s.users {
		if v.DateOfBirth != nil {
			dob := *v.DateOfBirth
			v.DateOfBirth = &dob
		}
		out.users[k] = v
	}
	return out
}

func (s *memStore) id() uint64 {
	s.nextID++
	return s.nextID
}

func (s *memStore) InsertMovie(ctx context.Context, m *model.Movie) error {
	m.ID = s.id()
	s.movies[m.ID] = *m
	return nil
}

func (s *memStore) GetMovie(ctx context.Context, id uint64) (*model.Movie, error) {
	m, ok := s.movies[id]
	if !ok {
		return nil, ErrNoRow
	}
	return &m, nil
}

func (s *memStore) InsertScreening(ctx context.Context, sc *model.Screening) error {
	sc.ID = s.id()
	s.screenings[sc.ID] = *sc
	return nil
}

func (s *memStore) GetScreening(ctx context.Context, id uint64) (*model.Screening, error) {
	sc, ok := s.screenings[id]
	if !ok {
		return nil, ErrNoRow
	}
	return &sc, nil
}

func (s *memStore) ListScreenings(ctx context.Context, activeOnly bool) ([]model.Screening, error) {
	out := make([]model.Screening, 0, len(s.screenings))
	for _, sc := range s.screenings {
		if activeOnly && !sc.IsActive {
			continue
		}
		out = append(out, sc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memStore) DeactivateScreening(ctx context.Context, id uint64) error {
	sc, ok := s.screenings[id]
	if !ok {
		return ErrNoRow
	}
	sc.IsActive = false
	s.screenings[id] = sc
	return nil
}

func (s *memStore) InsertSeats(ctx context.Context, seats []model.Seat) error {
	for i := range seats {
		seats[i].ID = s.id()
		s.seats[seats[i].ID] = seats[i]
	}
	return nil
}

func (s *memStore) SeatsByScreening(ctx context.Context, screeningID uint64) ([]model.Seat, error) {
	out := make([]model.Seat, 0)
	for _, seat := range s.seats {
		if seat.ScreeningID == screeningID {
			out = append(out, seat)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Number < out[j].Number
	})
	return out, nil
}

func (s *memStore) SeatsByScreeningAndIDs(ctx context.Context, screeningID uint64, seatIDs []uint64) ([]model.Seat, error) {
	out := make([]model.Seat, 0, len(seatIDs))
	for _, id := range seatIDs {
		seat, ok := s.seats[id]
		if !ok || seat.ScreeningID != screeningID {
			continue
		}
		out = append(out, seat)
	}
	return out, nil
}

func (s *memStore) SeatsByBooking(ctx context.Context, bookingID uint64) ([]model.Seat, error) {
	out := make([]model.Seat, 0)
	for _, seat := range s.seats {
		if seat.BookingID != nil && *seat.BookingID == bookingID {
			out = append(out, seat)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memStore) MarkSeatsBooked(ctx context.Context, bookingID uint64, seats []model.Seat) error {
	for _, want := range seats {
		stored, ok := s.seats[want.ID]
		if !ok || stored.Version != want.Version || stored.Status != model.SeatAvailable {
			return ErrVersionMismatch
		}
		id := bookingID
		stored.Status = model.SeatBooked
		stored.BookingID = &id
		stored.Version++
		s.seats[want.ID] = stored
	}
	return nil
}

func (s *memStore) ReleaseSeats(ctx context.Context, seats []model.Seat) error {
	for _, want := range seats {
		stored, ok := s.seats[want.ID]
		if !ok || stored.Version != want.Version {
			return ErrVersionMismatch
		}
		stored.Status = model.SeatAvailable
		stored.BookingID = nil
		stored.Version++
		s.seats[want.ID] = stored
	}
	return nil
}

func (s *memStore) InsertBooking(ctx context.Context, b *model.Booking) error {
	b.ID = s.id()
	b.Version = 1
	s.bookings[b.ID] = *b
	return nil
}

func (s *memStore) GetBooking(ctx context.Context, id uint64) (*model.Booking, error) {
	b, ok := s.bookings[id]
	if !ok {
		return nil, ErrNoRow
	}
	return &b, nil
}

func (s *memStore) DeleteBooking(ctx context.Context, id, expectedVersion uint64) error {
	b, ok := s.bookings[id]
	if !ok {
		return ErrNoRow
	}
	if b.Version != expectedVersion {
		return ErrVersionMismatch
	}
	delete(s.bookings, id)
	return nil
}

func (s *memStore) BookingsByUser(ctx context.Context, userID uint64) ([]model.Booking, error) {
	out := make([]model.Booking, 0)
	for _, b := range s.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s *memStore) InsertUser(ctx context.Context, u *model.User) error {
	for _, other := range s.users {
		if strings.EqualFold(other.Email, u.Email) {
			return errors.New("duplicate email")
		}
	}
	u.ID = s.id()
	u.Version = 1
	s.users[u.ID] = *u
	return nil
}

func (s *memStore) GetUser(ctx context.Context, id uint64) (*model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, ErrNoRow
	}
	return &u, nil
}

func (s *memStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, ErrNoRow
}

func (s *memStore) UpdateUserProfile(ctx context.Context, u *model.User, expectedVersion uint64) error {
	stored, ok := s.users[u.ID]
	if !ok {
		return ErrNoRow
	}
	if stored.Version != expectedVersion {
		return ErrVersionMismatch
	}
	u.Version = expectedVersion + 1
	s.users[u.ID] = *u
	return nil
}

func (s *memStore) DeleteUser(ctx context.Context, id, expectedVersion uint64) error {
	u, ok := s.users[id]
	if !ok {
		return ErrNoRow
	}
	if u.Version != expectedVersion {
		return ErrVersionMismatch
	}
	delete(s.users, id)
	return nil
}
