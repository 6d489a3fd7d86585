package create_reservation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
	"github.com/m04kA/SMC-DetailingBooking/internal/usecase/quote_price"
	"github.com/m04kA/SMC-DetailingBooking/pkg/logger"
	"github.com/m04kA/SMC-DetailingBooking/pkg/pgerrors"
	"github.com/m04kA/SMC-DetailingBooking/pkg/ptr"
	"github.com/m04kA/SMC-DetailingBooking/pkg/types"
)

type fakeQuoter struct {
	shop *domain.Shop
	err  error
}

func (f *fakeQuoter) GetPublishedShop(_ context.Context, slug string) (*domain.Shop, error) {
	if f.shop.Slug != slug {
		return nil, quote_price.ErrShopNotFound
	}
	return f.shop, nil
}

func (f *fakeQuoter) QuoteForShop(_ context.Context, _ *domain.Shop, sel domain.Selection) (*domain.Quote, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Quote{
		Selection:            sel,
		ServiceName:          "Полировка",
		FormulaName:          ptr.Ptr("Премиум"),
		TotalPrice:           decimal.RequireFromString("149.90"),
		TotalDurationMinutes: 90,
	}, nil
}

type fakeSchedule struct{}

func (fakeSchedule) GetByShop(context.Context, int64) (domain.WeeklySchedule, error) {
	return domain.WeeklySchedule{{Weekday: time.Monday, OpenTime: "09:00", CloseTime: "18:00"}}, nil
}

type fakeReservations struct {
	existing []*domain.Reservation
	created  []*domain.Reservation
	sawTx    bool
	createFn func() error
}

func (f *fakeReservations) ListForDay(ctx context.Context, _ int64, _ time.Time) ([]*domain.Reservation, error) {
	f.sawTx = ctx.Value(txMarker{}) != nil
	return f.existing, nil
}

func (f *fakeReservations) Create(_ context.Context, r *domain.Reservation) (*domain.Reservation, error) {
	if f.createFn != nil {
		if err := f.createFn(); err != nil {
			return nil, err
		}
	}
	r.ID = int64(len(f.created) + 1)
	f.created = append(f.created, r)
	return r, nil
}

type fakeLeads struct {
	leads []*domain.Lead
}

func (f *fakeLeads) Create(_ context.Context, l *domain.Lead) (*domain.Lead, error) {
	f.leads = append(f.leads, l)
	return l, nil
}

type txMarker struct{}

// fakeTx повторяет fn, пока она возвращает ошибку сериализации, как настоящий менеджер
type fakeTx struct {
	attempts   int
	maxRetries int
}

func (f *fakeTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	var err error
	for i := 0; i < f.maxRetries; i++ {
		f.attempts++
		err = fn(context.WithValue(ctx, txMarker{}, true))
		if err == nil || !pgerrors.IsRetryable(err) {
			return err
		}
	}
	return err
}

type fakeMetrics struct {
	created   []string
	conflicts []string
	leads     []string
}

func (m *fakeMetrics) ReservationCreated(status string) { m.created = append(m.created, status) }
func (m *fakeMetrics) SlotConflict(reason string)       { m.conflicts = append(m.conflicts, reason) }
func (m *fakeMetrics) LeadCreated(source string)        { m.leads = append(m.leads, source) }

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

// 2025-06-16 понедельник
var monday = time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)

var reference = uuid.MustParse("6f1c2a9e-3b4d-4c5e-8f70-112233445566")

type fixture struct {
	uc           *UseCase
	reservations *fakeReservations
	leads        *fakeLeads
	tx           *fakeTx
	metrics      *fakeMetrics
	shop         *domain.Shop
}

func newFixture() *fixture {
	f := &fixture{
		reservations: &fakeReservations{},
		leads:        &fakeLeads{},
		tx:           &fakeTx{maxRetries: 3},
		metrics:      &fakeMetrics{},
		shop: &domain.Shop{
			ID:          1,
			Slug:        "shine",
			IsPublished: true,
			Settings: domain.BookingSettings{
				SlotStepMinutes:           15,
				MinBookingNoticeMinutes:   60,
				AdvanceBookingDays:        60,
				MaxConcurrentReservations: 1,
			},
		},
	}
	f.uc = NewUseCase(f.reservations, fakeSchedule{}, f.leads, &fakeQuoter{shop: f.shop}, f.tx, f.metrics, logger.NewNop()).
		WithTimeProvider(fixedTime{now: monday.Add(-24 * time.Hour)})
	f.uc.newReference = func() uuid.UUID { return reference }
	return f
}

func validRequest() *Request {
	return &Request{
		Slug:      "shine",
		Selection: domain.Selection{ServiceID: 5, FormulaID: ptr.Ptr(int64(6)), AddOnIDs: []int64{7}},
		Date:      monday,
		StartTime: types.MustTimeString("10:00"),
		Client: ClientInfo{
			Name:  "  Анна Петрова ",
			Email: "Anna@Example.com",
			Phone: "+33 6 12-34-56-78",
			Notes: ptr.Ptr("Белый кроссовер"),
		},
	}
}

func TestExecute_CreatesPendingReservationAndLead(t *testing.T) {
	f := newFixture()

	res, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, reference, res.Reference)
	assert.Equal(t, domain.StatusPending, res.Status)
	assert.Equal(t, 90, res.DurationMinutes)
	assert.Equal(t, "149.90", res.TotalPrice.StringFixed(2))
	assert.Equal(t, "Полировка", res.ServiceName)
	assert.Equal(t, "Премиум", *res.FormulaName)
	assert.Equal(t, []int64{7}, res.AddOnIDs)
	assert.Equal(t, "Анна Петрова", res.ClientName)
	assert.Equal(t, "anna@example.com", res.ClientEmail)
	assert.True(t, f.reservations.sawTx)

	require.Len(t, f.leads.leads, 1)
	assert.Equal(t, domain.LeadSourceBookingFlow, f.leads.leads[0].Source)
	assert.Equal(t, int64(5), *f.leads.leads[0].ServiceID)

	assert.Equal(t, []string{"pending"}, f.metrics.created)
	assert.Equal(t, []string{"booking_flow"}, f.metrics.leads)
}

func TestExecute_AutoConfirm(t *testing.T) {
	f := newFixture()
	f.shop.Settings.AutoConfirm = true

	res, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, res.Status)
}

func TestExecute_SlotRejections(t *testing.T) {
	tests := []struct {
		name       string
		startTime  string
		existing   []*domain.Reservation
		wantErr    error
		wantReason string
	}{
		{
			name:       "overlapping reservation",
			startTime:  "10:00",
			existing:   []*domain.Reservation{{StartTime: "11:00", DurationMinutes: 30, Status: domain.StatusConfirmed}},
			wantErr:    ErrSlotNotAvailable,
			wantReason: "taken",
		},
		{
			name:       "off grid",
			startTime:  "10:10",
			wantErr:    ErrInvalidTimeSlot,
			wantReason: "invalid_time",
		},
		{
			name:       "past closing",
			startTime:  "17:00",
			wantErr:    ErrInvalidTimeSlot,
			wantReason: "invalid_time",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.reservations.existing = tt.existing
			req := validRequest()
			req.StartTime = types.MustTimeString(tt.startTime)

			res, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, res)
			assert.Empty(t, f.reservations.created)
			assert.Equal(t, []string{tt.wantReason}, f.metrics.conflicts)
		})
	}
}

func TestExecute_CancelledReservationFreesSlot(t *testing.T) {
	f := newFixture()
	f.reservations.existing = []*domain.Reservation{
		{StartTime: "10:00", DurationMinutes: 90, Status: domain.StatusCancelledByClient},
	}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.NoError(t, err)
}

func TestExecute_RetriesSerializationFailure(t *testing.T) {
	f := newFixture()
	calls := 0
	f.reservations.createFn = func() error {
		calls++
		if calls == 1 {
			return &pq.Error{Code: pgerrors.SerializationFailure}
		}
		return nil
	}

	res, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.NotNil(t, res)
	assert.Equal(t, 2, f.tx.attempts)
}

func TestExecute_PersistentSerializationFailureIsConflict(t *testing.T) {
	f := newFixture()
	f.reservations.createFn = func() error {
		return &pq.Error{Code: pgerrors.SerializationFailure}
	}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Equal(t, 3, f.tx.attempts)
	assert.Equal(t, []string{"serialization"}, f.metrics.conflicts)
}

func TestExecute_RepositoryFailureIsInternal(t *testing.T) {
	f := newFixture()
	f.reservations.createFn = func() error { return errors.New("disk full") }

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, 1, f.tx.attempts)
}

func TestExecute_ClosedDay(t *testing.T) {
	f := newFixture()
	req := validRequest()
	req.Date = monday.AddDate(0, 0, 1)

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrShopClosed)
}

func TestExecute_DateChecks(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.Date = monday.AddDate(0, 0, -2)
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)

	req = validRequest()
	req.Date = monday.AddDate(0, 0, 70)
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestExecute_QuoteErrorPassesThrough(t *testing.T) {
	f := newFixture()
	f.uc.quoter = &fakeQuoter{shop: f.shop, err: quote_price.ErrAddOnNotFound}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, quote_price.ErrAddOnNotFound)
}

func TestValidateClient(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *ClientInfo)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *ClientInfo) {}},
		{name: "short name", mutate: func(c *ClientInfo) { c.Name = " A " }, wantErr: true},
		{name: "display name email", mutate: func(c *ClientInfo) { c.Email = "Anna <anna@example.com>" }, wantErr: true},
		{name: "broken email", mutate: func(c *ClientInfo) { c.Email = "anna@" }, wantErr: true},
		{name: "phone with letters", mutate: func(c *ClientInfo) { c.Phone = "+7 900 CALL ME" }, wantErr: true},
		{name: "phone too short", mutate: func(c *ClientInfo) { c.Phone = "12-34" }, wantErr: true},
		{name: "phone plus inside", mutate: func(c *ClientInfo) { c.Phone = "7+9001234567" }, wantErr: true},
		{name: "phone with brackets", mutate: func(c *ClientInfo) { c.Phone = "+7 (900) 123-45-67" }},
		{
			name:    "long notes",
			mutate:  func(c *ClientInfo) { c.Notes = ptr.Ptr(string(make([]rune, domain.MaxNotesLength+1))) },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validRequest().Client
			tt.mutate(&c)
			err := ValidateClient(&c)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			assert.NoError(t, err)
		})
	}
}
