package domain

import (
	"sync"
	"time"

	"gorm.io/gorm"

	"cinema-booking/internal/model"
	"cinema-booking/internal/repository"
)

// In-memory store shared by the fake repositories. All fakes are
// safe for concurrent use so the concurrency tests exercise the
// service-level locking, not accidental fake serialization.
type fakeStore struct {
	mu sync.Mutex

	movies    map[uint]model.Movie
	customers map[uint]model.Customer
	rooms     map[uint]model.Room
	seats     map[uint]model.Seat
	sessions  map[uint]model.Session
	tickets   map[uint]model.Ticket

	nextID uint
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		movies:    make(map[uint]model.Movie),
		customers: make(map[uint]model.Customer),
		rooms:     make(map[uint]model.Room),
		seats:     make(map[uint]model.Seat),
		sessions:  make(map[uint]model.Session),
		tickets:   make(map[uint]model.Ticket),
	}
}

func (s *fakeStore) id() uint {
	s.nextID++
	return s.nextID
}

type fakeTxManager struct{}

func (fakeTxManager) Transaction(fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type fakeMovieRepo struct{ store *fakeStore }

var _ repository.MovieRepo = (*fakeMovieRepo)(nil)

func (r *fakeMovieRepo) WithTx(tx *gorm.DB) repository.MovieRepo { return r }

func (r *fakeMovieRepo) Create(movie *model.Movie) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	movie.ID = r.store.id()
	r.store.movies[movie.ID] = *movie
	return nil
}

func (r *fakeMovieRepo) GetByID(id uint) (*model.Movie, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	movie, ok := r.store.movies[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &movie, nil
}

func (r *fakeMovieRepo) ListAll() ([]model.Movie, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	movies := make([]model.Movie, 0, len(r.store.movies))
	for _, m := range r.store.movies {
		movies = append(movies, m)
	}
	return movies, nil
}

type fakeCustomerRepo struct{ store *fakeStore }

var _ repository.CustomerRepo = (*fakeCustomerRepo)(nil)

func (r *fakeCustomerRepo) WithTx(tx *gorm.DB) repository.CustomerRepo { return r }

func (r *fakeCustomerRepo) Create(customer *model.Customer) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	customer.ID = r.store.id()
	r.store.customers[customer.ID] = *customer
	return nil
}

func (r *fakeCustomerRepo) GetByID(id uint) (*model.Customer, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	customer, ok := r.store.customers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &customer, nil
}

func (r *fakeCustomerRepo) DebitPoints(id uint, points int) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	customer, ok := r.store.customers[id]
	if !ok || customer.LoyaltyPoints < points {
		return false, nil
	}
	customer.LoyaltyPoints -= points
	r.store.customers[id] = customer
	return true, nil
}

func (r *fakeCustomerRepo) CreditPoints(id uint, points int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	customer, ok := r.store.customers[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	customer.LoyaltyPoints += points
	r.store.customers[id] = customer
	return nil
}

type fakeRoomRepo struct{ store *fakeStore }

var _ repository.RoomRepo = (*fakeRoomRepo)(nil)

func (r *fakeRoomRepo) WithTx(tx *gorm.DB) repository.RoomRepo { return r }

func (r *fakeRoomRepo) Create(room *model.Room) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	room.ID = r.store.id()
	for i := range room.Seats {
		room.Seats[i].ID = r.store.id()
		room.Seats[i].RoomID = room.ID
		r.store.seats[room.Seats[i].ID] = room.Seats[i]
	}
	r.store.rooms[room.ID] = *room
	return nil
}

func (r *fakeRoomRepo) GetByID(id uint) (*model.Room, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	room, ok := r.store.rooms[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	room.Seats = nil
	for _, seat := range r.store.seats {
		if seat.RoomID == id {
			room.Seats = append(room.Seats, seat)
		}
	}
	return &room, nil
}

func (r *fakeRoomRepo) ReplaceLayout(room *model.Room, seats []model.Seat) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for id, seat := range r.store.seats {
		if seat.RoomID == room.ID {
			delete(r.store.seats, id)
		}
	}
	for i := range seats {
		seats[i].ID = r.store.id()
		seats[i].RoomID = room.ID
		r.store.seats[seats[i].ID] = seats[i]
	}
	r.store.rooms[room.ID] = *room
	return nil
}

func (r *fakeRoomRepo) ListAll() ([]model.Room, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	rooms := make([]model.Room, 0, len(r.store.rooms))
	for _, room := range r.store.rooms {
		rooms = append(rooms, room)
	}
	return rooms, nil
}

type fakeSeatRepo struct{ store *fakeStore }

var _ repository.SeatRepo = (*fakeSeatRepo)(nil)

func (r *fakeSeatRepo) WithTx(tx *gorm.DB) repository.SeatRepo { return r }

func (r *fakeSeatRepo) GetByID(id uint) (*model.Seat, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	seat, ok := r.store.seats[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &seat, nil
}

func (r *fakeSeatRepo) GetByPosition(roomID uint, row string, number int) (*model.Seat, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, seat := range r.store.seats {
		if seat.RoomID == roomID && seat.Row == row && seat.Number == number {
			return &seat, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeSeatRepo) ListByRoom(roomID uint) ([]model.Seat, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var seats []model.Seat
	for _, seat := range r.store.seats {
		if seat.RoomID == roomID {
			seats = append(seats, seat)
		}
	}
	return seats, nil
}

func (r *fakeSeatRepo) CountByRoom(roomID uint) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var count int64
	for _, seat := range r.store.seats {
		if seat.RoomID == roomID {
			count++
		}
	}
	return count, nil
}

type fakeSessionRepo struct{ store *fakeStore }

var _ repository.SessionRepo = (*fakeSessionRepo)(nil)

func (r *fakeSessionRepo) WithTx(tx *gorm.DB) repository.SessionRepo { return r }

func (r *fakeSessionRepo) Create(session *model.Session) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	session.ID = r.store.id()
	r.store.sessions[session.ID] = *session
	return nil
}

func (r *fakeSessionRepo) GetByID(id uint) (*model.Session, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	session, ok := r.store.sessions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &session, nil
}

func (r *fakeSessionRepo) Update(session *model.Session) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.sessions[session.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.store.sessions[session.ID] = *session
	return nil
}

func (r *fakeSessionRepo) Delete(id uint) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.sessions, id)
	return nil
}

func (r *fakeSessionRepo) ListByMovieID(movieID uint) ([]model.Session, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var sessions []model.Session
	for _, session := range r.store.sessions {
		if session.MovieID == movieID {
			sessions = append(sessions, session)
		}
	}
	return sessions, nil
}

func (r *fakeSessionRepo) ListByRoomID(roomID uint) ([]model.Session, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var sessions []model.Session
	for _, session := range r.store.sessions {
		if session.RoomID == roomID {
			sessions = append(sessions, session)
		}
	}
	return sessions, nil
}

func (r *fakeSessionRepo) ListAll() ([]model.Session, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	sessions := make([]model.Session, 0, len(r.store.sessions))
	for _, session := range r.store.sessions {
		sessions = append(sessions, session)
	}
	return sessions, nil
}

func (r *fakeSessionRepo) FindOverlapping(roomID uint, start, end time.Time, excludeID uint) ([]model.Session, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var sessions []model.Session
	for _, session := range r.store.sessions {
		if session.ID == excludeID || session.RoomID != roomID {
			continue
		}
		if session.StartsAt.Before(end) && session.EndsAt.After(start) {
			sessions = append(sessions, session)
		}
	}
	return sessions, nil
}

type fakeTicketRepo struct{ store *fakeStore }

var _ repository.TicketRepo = (*fakeTicketRepo)(nil)

func (r *fakeTicketRepo) WithTx(tx *gorm.DB) repository.TicketRepo { return r }

// Create enforces the unique (session, seat) index the way a
// translating gorm store reports it.
func (r *fakeTicketRepo) Create(ticket *model.Ticket) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, existing := range r.store.tickets {
		if existing.SessionID == ticket.SessionID && existing.SeatID == ticket.SeatID {
			return gorm.ErrDuplicatedKey
		}
	}
	ticket.ID = r.store.id()
	r.store.tickets[ticket.ID] = *ticket
	return nil
}

func (r *fakeTicketRepo) GetByID(id uint) (*model.Ticket, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	ticket, ok := r.store.tickets[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &ticket, nil
}

func (r *fakeTicketRepo) Update(ticket *model.Ticket) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.tickets[ticket.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.store.tickets[ticket.ID] = *ticket
	return nil
}

func (r *fakeTicketRepo) Delete(id uint) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.tickets, id)
	return nil
}

func (r *fakeTicketRepo) ListBySessionID(sessionID uint) ([]model.Ticket, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var tickets []model.Ticket
	for _, ticket := range r.store.tickets {
		if ticket.SessionID == sessionID {
			tickets = append(tickets, ticket)
		}
	}
	return tickets, nil
}

func (r *fakeTicketRepo) GetActiveBySessionSeat(sessionID, seatID uint) (*model.Ticket, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, ticket := range r.store.tickets {
		if ticket.SessionID == sessionID && ticket.SeatID == seatID {
			return &ticket, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeTicketRepo) CountActiveByRoom(roomID uint) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var count int64
	for _, ticket := range r.store.tickets {
		seat, ok := r.store.seats[ticket.SeatID]
		if ok && seat.RoomID == roomID {
			count++
		}
	}
	return count, nil
}

func (r *fakeTicketRepo) CountActiveBySession(sessionID uint) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var count int64
	for _, ticket := range r.store.tickets {
		if ticket.SessionID == sessionID {
			count++
		}
	}
	return count, nil
}
