package services

import (
	"errors"
	"sync"
	"time"

	"gorm.io/datatypes"

	"rental-backend/models"
	"rental-backend/repositories"
)

// In-memory repository mocks so the services can be exercised without
// a database. The proposal mock serializes status transitions behind a
// mutex the way the real compare-and-swap does behind the database.

type mockRoomRepository struct {
	mu       sync.Mutex
	rooms    map[uint]*models.Room
	prices   []models.RoomPrice
	photos   []models.RoomPhoto
	features []models.RoomFeature
	rentals  []models.Rental

	// dropPrices simulates the price row disappearing between the
	// search query and the price lookup.
	dropPrices bool
}

func newMockRoomRepository() *mockRoomRepository {
	return &mockRoomRepository{rooms: make(map[uint]*models.Room)}
}

func (m *mockRoomRepository) addRoom(room models.Room) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r := room
	m.rooms[r.ID] = &r
}

func (m *mockRoomRepository) addPrice(roomID uint, period models.Period, price float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prices = append(m.prices, models.RoomPrice{RoomID: roomID, Period: period, Price: price})
}

func (m *mockRoomRepository) addRental(roomID uint, start, end time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := datatypes.Date(start)
	e := datatypes.Date(end)
	m.rentals = append(m.rentals, models.Rental{RoomID: roomID, StartDate: &s, EndDate: &e})
}

func (m *mockRoomRepository) Search(f repositories.SearchFilter) ([]models.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	priced := make(map[uint]bool)
	for _, p := range m.prices {
		if p.Period == f.Period {
			priced[p.RoomID] = true
		}
	}

	occupied := make(map[uint]bool)
	if f.AvailableOn != nil {
		day := f.AvailableOn.Truncate(24 * time.Hour)
		for _, r := range m.rentals {
			if r.StartDate == nil || r.EndDate == nil {
				continue
			}
			start := time.Time(*r.StartDate)
			end := time.Time(*r.EndDate)
			if !day.Before(start) && !day.After(end) {
				occupied[r.RoomID] = true
			}
		}
	}

	var out []models.Room
	for _, room := range m.rooms {
		if !priced[room.ID] || occupied[room.ID] {
			continue
		}
		if f.DestinationID != nil && room.Property.DestinationID != *f.DestinationID {
			continue
		}
		if f.Gender == models.GenderMale && !room.AcceptMen {
			continue
		}
		if f.Gender == models.GenderFemale && !room.AcceptWomen {
			continue
		}
		out = append(out, *room)
	}
	return out, nil
}

func (m *mockRoomRepository) GetByID(id uint) (*models.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	room, ok := m.rooms[id]
	if !ok {
		return nil, nil
	}
	r := *room
	return &r, nil
}

func (m *mockRoomRepository) PricesByRoom(roomIDs []uint, period *models.Period) ([]models.RoomPrice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.dropPrices {
		return nil, nil
	}
	wanted := make(map[uint]bool, len(roomIDs))
	for _, id := range roomIDs {
		wanted[id] = true
	}
	var out []models.RoomPrice
	for _, p := range m.prices {
		if !wanted[p.RoomID] {
			continue
		}
		if period != nil && p.Period != *period {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (m *mockRoomRepository) PhotosByRoom(roomIDs []uint) ([]models.RoomPhoto, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	wanted := make(map[uint]bool, len(roomIDs))
	for _, id := range roomIDs {
		wanted[id] = true
	}
	var out []models.RoomPhoto
	for _, ph := range m.photos {
		if wanted[ph.RoomID] {
			out = append(out, ph)
		}
	}
	return out, nil
}

func (m *mockRoomRepository) FeaturesByRoom(roomIDs []uint) ([]models.RoomFeature, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	wanted := make(map[uint]bool, len(roomIDs))
	for _, id := range roomIDs {
		wanted[id] = true
	}
	var out []models.RoomFeature
	for _, rf := range m.features {
		if wanted[rf.RoomID] {
			out = append(out, rf)
		}
	}
	return out, nil
}

type mockProposalRepository struct {
	mu        sync.Mutex
	nextID    uint
	proposals map[uint]*models.Proposal
	rentals   map[uint]*models.Rental // keyed by proposal ID

	rooms    *mockRoomRepository
	profiles *mockProfileRepository
}

func newMockProposalRepository(rooms *mockRoomRepository, profiles *mockProfileRepository) *mockProposalRepository {
	return &mockProposalRepository{
		proposals: make(map[uint]*models.Proposal),
		rentals:   make(map[uint]*models.Rental),
		rooms:     rooms,
		profiles:  profiles,
	}
}

func (m *mockProposalRepository) Create(p *models.Proposal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	p.ID = m.nextID
	copied := *p
	m.proposals[p.ID] = &copied
	return nil
}

func (m *mockProposalRepository) GetByID(id uint) (*models.Proposal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.proposals[id]
	if !ok {
		return nil, nil
	}
	p := *stored
	if m.rooms != nil {
		if room, _ := m.rooms.GetByID(p.RoomID); room != nil {
			p.Room = *room
		}
	}
	if m.profiles != nil {
		if profile := m.profiles.profileByID(p.ProfileID); profile != nil {
			p.Profile = *profile
			if p.Profile.AccountID != nil {
				if account, _ := m.profiles.AccountByID(*p.Profile.AccountID); account != nil {
					p.Profile.Account = account
				}
			}
		}
	}
	return &p, nil
}

func (m *mockProposalRepository) TransitionStatus(id uint, from, to models.ProposalStatus, reviewedBy *uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.proposals[id]
	if !ok || p.Status != from {
		return false, nil
	}
	p.Status = to
	p.ReviewedByID = reviewedBy
	return true, nil
}

func (m *mockProposalRepository) CreateRental(r *models.Rental) error {
	m.mu.Lock()
	if _, exists := m.rentals[r.ProposalID]; exists {
		m.mu.Unlock()
		return errors.New("Error 1062 (23000): Duplicate entry for key 'rentals.proposal_id'")
	}
	r.ID = uint(len(m.rentals) + 1)
	copied := *r
	m.rentals[r.ProposalID] = &copied
	m.mu.Unlock()

	if m.rooms != nil && r.StartDate != nil && r.EndDate != nil {
		m.rooms.addRental(r.RoomID, time.Time(*r.StartDate), time.Time(*r.EndDate))
	}
	return nil
}

func (m *mockProposalRepository) ExpireBefore(cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	day := cutoff.Truncate(24 * time.Hour)
	var n int64
	for _, p := range m.proposals {
		if p.Status == models.StatusPending && time.Time(p.MoveInDate).Before(day) {
			p.Status = models.StatusExpired
			n++
		}
	}
	return n, nil
}

func (m *mockProposalRepository) InTransaction(fn func(repositories.ProposalRepository) error) error {
	return fn(m)
}

type mockProfileRepository struct {
	mu        sync.Mutex
	nextID    uint
	accounts  map[uint]*models.Account
	profiles  map[uint]*models.Profile
	addresses map[uint]*models.Address
}

func newMockProfileRepository() *mockProfileRepository {
	return &mockProfileRepository{
		accounts:  make(map[uint]*models.Account),
		profiles:  make(map[uint]*models.Profile),
		addresses: make(map[uint]*models.Address),
	}
}

func (m *mockProfileRepository) AccountByID(id uint) (*models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[id]
	if !ok {
		return nil, nil
	}
	copied := *a
	return &copied, nil
}

func (m *mockProfileRepository) AccountByEmail(email string) (*models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if a.Email == email {
			copied := *a
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *mockProfileRepository) AccountTaken(username, email string, excludeID uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if a.ID == excludeID {
			continue
		}
		if a.Username == username || a.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockProfileRepository) SaveAccount(a *models.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.accounts {
		if existing.ID == a.ID {
			continue
		}
		if existing.Username == a.Username || existing.Email == a.Email {
			return errors.New("Error 1062 (23000): Duplicate entry for key 'accounts.username'")
		}
	}
	if a.ID == 0 {
		m.nextID++
		a.ID = m.nextID
	}
	copied := *a
	m.accounts[a.ID] = &copied
	return nil
}

func (m *mockProfileRepository) ProfileByAccount(accountID uint) (*models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.profiles {
		if p.AccountID != nil && *p.AccountID == accountID {
			copied := *p
			if copied.AddressID != nil {
				if addr, ok := m.addresses[*copied.AddressID]; ok {
					a := *addr
					copied.Address = &a
				}
			}
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *mockProfileRepository) profileByID(id uint) *models.Profile {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[id]
	if !ok {
		return nil
	}
	copied := *p
	return &copied
}

func (m *mockProfileRepository) SaveProfile(p *models.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID == 0 {
		m.nextID++
		p.ID = m.nextID
	}
	copied := *p
	m.profiles[p.ID] = &copied
	return nil
}

func (m *mockProfileRepository) SaveAddress(a *models.Address) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a.ID == 0 {
		m.nextID++
		a.ID = m.nextID
	}
	copied := *a
	m.addresses[a.ID] = &copied
	return nil
}

// recordingCache tracks cache traffic so tests can assert on
// invalidation behavior.
type recordingCache struct {
	mu          sync.Mutex
	details     map[uint][]byte
	searches    map[string][]byte
	invalidated []uint
	cleared     int
}

func newRecordingCache() *recordingCache {
	return &recordingCache{
		details:  make(map[uint][]byte),
		searches: make(map[string][]byte),
	}
}

func (r *recordingCache) GetRoomDetail(roomID uint) ([]byte, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	payload, ok := r.details[roomID]
	return payload, ok
}

func (r *recordingCache) SetRoomDetail(roomID uint, payload []byte, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.details[roomID] = payload
}

func (r *recordingCache) GetSearch(key string) ([]byte, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	payload, ok := r.searches[key]
	return payload, ok
}

func (r *recordingCache) SetSearch(key string, payload []byte, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.searches[key] = payload
}

func (r *recordingCache) InvalidateRoom(roomID uint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.details, roomID)
	r.searches = make(map[string][]byte)
	r.invalidated = append(r.invalidated, roomID)
}

func (r *recordingCache) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.details = make(map[uint][]byte)
	r.searches = make(map[string][]byte)
	r.cleared++
}
