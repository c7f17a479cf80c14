package book_slot

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arunkino/MindHaven-Backend/internal/domain"
	appointmentRepo "github.com/Arunkino/MindHaven-Backend/internal/infra/storage/appointment"
	slotRepo "github.com/Arunkino/MindHaven-Backend/internal/infra/storage/slot"
	"github.com/Arunkino/MindHaven-Backend/pkg/logger"
)

// store хранит состояние в памяти; tx сериализует транзакции и откатывает изменения при ошибке
type store struct {
	mu           sync.Mutex
	slots        map[int64]domain.Slot
	mentors      map[int64]*domain.Mentor
	appointments []*domain.Appointment

	staleRead    bool // GetByID вернет слот как available независимо от состояния
	failCreate   error
	createCalled int
}

func newStore() *store {
	return &store{
		slots: map[int64]domain.Slot{
			1: {
				ID: 1, AvailabilityID: 1, MentorID: 7,
				Date:      time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
				StartTime: "10:00", EndTime: "10:30",
				Status: domain.SlotAvailable,
			},
		},
		mentors: map[int64]*domain.Mentor{7: {ID: 7, UserID: 100}},
	}
}

func (s *store) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	slot, ok := s.slots[id]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	if s.staleRead {
		slot.Status = domain.SlotAvailable
	}
	return &slot, nil
}

func (s *store) UpdateStatusIf(ctx context.Context, id int64, from, to domain.SlotStatus) error {
	slot, ok := s.slots[id]
	if !ok || slot.Status != from {
		return slotRepo.ErrStatusConflict
	}
	slot.Status = to
	s.slots[id] = slot
	return nil
}

type mentorStore struct{ s *store }

func (m mentorStore) GetByID(ctx context.Context, id int64) (*domain.Mentor, error) {
	mentor, ok := m.s.mentors[id]
	if !ok {
		return nil, errors.New("mentor not found")
	}
	return mentor, nil
}

type appointmentStore struct{ s *store }

func (a appointmentStore) Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error) {
	a.s.createCalled++
	if a.s.failCreate != nil {
		return nil, a.s.failCreate
	}
	created := *appointment
	created.ID = int64(len(a.s.appointments) + 1)
	a.s.appointments = append(a.s.appointments, &created)
	return &created, nil
}

func (s *store) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	slots := make(map[int64]domain.Slot, len(s.slots))
	for id, slot := range s.slots {
		slots[id] = slot
	}
	appointments := append([]*domain.Appointment(nil), s.appointments...)

	if err := fn(ctx); err != nil {
		s.slots = slots
		s.appointments = appointments
		return err
	}
	return nil
}

type countingMetrics struct {
	mu       sync.Mutex
	outcomes map[string]int
}

func (m *countingMetrics) IncBooking(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes[outcome]++
}

func newUseCase(s *store) (*UseCase, *countingMetrics) {
	m := &countingMetrics{outcomes: map[string]int{}}
	uc := NewUseCase(s, mentorStore{s}, appointmentStore{s}, s, m, "https://mindhaven.example/", logger.NewNop())
	return uc, m
}

func TestUseCase_Execute_Success(t *testing.T) {
	s := newStore()
	uc, m := newUseCase(s)
	callID := uuid.MustParse("5b0f7a51-8d1c-4c1e-9a0a-3a5b8f9d2e11")
	uc.newCallID = func() uuid.UUID { return callID }

	resp, err := uc.Execute(context.Background(), &Request{SlotID: 1, UserID: 200})
	require.NoError(t, err)

	a := resp.Appointment
	assert.Equal(t, int64(1), a.SlotID)
	assert.Equal(t, int64(200), a.UserID)
	assert.Equal(t, int64(7), a.MentorID)
	assert.Equal(t, int64(100), a.MentorUserID)
	assert.Equal(t, domain.AppointmentScheduled, a.Status)
	assert.Equal(t, "10:00", a.StartTime.String())
	assert.Equal(t, "2025-03-03", a.Date.Format(domain.DateFormat))
	assert.Equal(t, callID, a.VideoCallID)
	assert.Equal(t, "https://mindhaven.example/video-call/5b0f7a51-8d1c-4c1e-9a0a-3a5b8f9d2e11/", a.VideoCallLink)

	assert.Equal(t, domain.SlotBooked, s.slots[1].Status)
	assert.Equal(t, 1, m.outcomes[outcomeSuccess])
}

func TestUseCase_Execute_Rejections(t *testing.T) {
	tests := []struct {
		name       string
		prepare    func(s *store)
		req        *Request
		wantErr    error
		wantStatus domain.SlotStatus
	}{
		{
			name:       "unknown slot",
			req:        &Request{SlotID: 99, UserID: 200},
			wantErr:    ErrSlotNotFound,
			wantStatus: domain.SlotAvailable,
		},
		{
			name: "blocked slot",
			prepare: func(s *store) {
				slot := s.slots[1]
				slot.Status = domain.SlotBlocked
				s.slots[1] = slot
			},
			req:        &Request{SlotID: 1, UserID: 200},
			wantErr:    ErrSlotNotAvailable,
			wantStatus: domain.SlotBlocked,
		},
		{
			name:       "mentor books own slot",
			req:        &Request{SlotID: 1, UserID: 100},
			wantErr:    ErrOwnSlot,
			wantStatus: domain.SlotAvailable,
		},
		{
			name: "stale read loses the conditional update",
			prepare: func(s *store) {
				slot := s.slots[1]
				slot.Status = domain.SlotBooked
				s.slots[1] = slot
				s.staleRead = true
			},
			req:        &Request{SlotID: 1, UserID: 200},
			wantErr:    ErrBookingConflict,
			wantStatus: domain.SlotBooked,
		},
		{
			name:       "active appointment already exists",
			prepare:    func(s *store) { s.failCreate = appointmentRepo.ErrSlotAlreadyTaken },
			req:        &Request{SlotID: 1, UserID: 200},
			wantErr:    ErrBookingConflict,
			wantStatus: domain.SlotAvailable,
		},
		{
			name:       "appointment insert fails",
			prepare:    func(s *store) { s.failCreate = errors.New("connection reset") },
			req:        &Request{SlotID: 1, UserID: 200},
			wantErr:    ErrInternal,
			wantStatus: domain.SlotAvailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStore()
			if tt.prepare != nil {
				tt.prepare(s)
			}
			uc, _ := newUseCase(s)

			resp, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, resp)
			assert.Equal(t, tt.wantStatus, s.slots[1].Status)
			assert.Empty(t, s.appointments)
		})
	}
}

func TestUseCase_Execute_ConcurrentBookingsYieldOneAppointment(t *testing.T) {
	s := newStore()
	uc, m := newUseCase(s)

	const workers = 20
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		failures  = map[error]int{}
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), &Request{SlotID: 1, UserID: userID})

			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				successes++
				return
			}
			failures[err]++
		}(int64(1000 + i))
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, workers-1, failures[ErrSlotNotAvailable])
	assert.Len(t, s.appointments, 1)
	assert.Equal(t, domain.SlotBooked, s.slots[1].Status)
	assert.Equal(t, 1, m.outcomes[outcomeSuccess])
	assert.Equal(t, workers-1, m.outcomes[outcomeNotAvailable])
}
