package ordersvc

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/corray333/swiftserve/internal/clock"
	ordermemory "github.com/corray333/swiftserve/internal/dal/repositories/order/memory"
	restaurantmemory "github.com/corray333/swiftserve/internal/dal/repositories/restaurant/memory"
	"github.com/corray333/swiftserve/internal/notify"
	"github.com/corray333/swiftserve/internal/service/models/auditlog"
	"github.com/corray333/swiftserve/internal/service/models/errs"
	"github.com/corray333/swiftserve/internal/service/models/order"
	"github.com/corray333/swiftserve/internal/service/models/restaurant"
	"github.com/corray333/swiftserve/internal/service/timing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var booked = time.Date(2025, 6, 1, 19, 0, 0, 0, time.UTC)

type recordingNotifier struct {
	mu   sync.Mutex
	msgs []notify.Message
	err  error
}

func (r *recordingNotifier) Notify(_ context.Context, msg notify.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)

	return r.err
}

func (r *recordingNotifier) Kinds() []notify.Kind {
	r.mu.Lock()
	defer r.mu.Unlock()

	kinds := make([]notify.Kind, 0, len(r.msgs))
	for _, m := range r.msgs {
		kinds = append(kinds, m.Kind)
	}

	return kinds
}

func (r *recordingNotifier) Messages() []notify.Message {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]notify.Message(nil), r.msgs...)
}

type recordingAudit struct {
	mu          sync.Mutex
	transitions []auditlog.OrderTransition
	err         error

	// When stall is set, the next call closes entered and waits for stall.
	stall   chan struct{}
	entered chan struct{}
}

func (r *recordingAudit) LogTransitions(_ context.Context, transitions []auditlog.OrderTransition) error {
	r.mu.Lock()
	stall, entered := r.stall, r.entered
	r.stall, r.entered = nil, nil
	r.mu.Unlock()

	if stall != nil {
		close(entered)
		<-stall
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.transitions = append(r.transitions, transitions...)

	return r.err
}

func (r *recordingAudit) stallNext() (release, entered chan struct{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stall, r.entered = make(chan struct{}), make(chan struct{})

	return r.stall, r.entered
}

func (r *recordingAudit) Transitions() []auditlog.OrderTransition {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]auditlog.OrderTransition(nil), r.transitions...)
}

type fixture struct {
	svc      *OrderService
	clock    *clock.Fake
	notifier *recordingNotifier
	audit    *recordingAudit
	orders   *ordermemory.OrderRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		clock:    clock.NewFake(booked),
		notifier: &recordingNotifier{},
		audit:    &recordingAudit{},
		orders:   ordermemory.NewOrderRepository(),
	}
	seq := 0
	f.svc = MustNewOrderService(
		WithOrderRepository(f.orders),
		WithRestaurantRepository(restaurantmemory.NewRestaurantRepository([]restaurant.Restaurant{
			{ID: "r15", Name: "Green Leaf", Distance: 2.5, PrepTime: 15},
			{ID: "r10", Name: "Sushi Spot", Distance: 8, PrepTime: 10},
		})),
		WithClock(f.clock),
		WithNotifier(f.notifier),
		WithAuditRepository(f.audit),
		WithIDGenerator(func() string {
			seq++

			return "SW-TEST" + string(rune('0'+seq))
		}),
	)

	return f
}

func (f *fixture) book(t *testing.T, restaurantID string, eta int) order.Order {
	t.Helper()

	o, _, err := f.svc.Book(context.Background(), BookingRequest{
		RestaurantID:             restaurantID,
		UserName:                 "Alex",
		PartySize:                2,
		MealDetails:              "Veggie Burger",
		UserEstimatedArrivalTime: eta,
	})
	require.NoError(t, err)

	return o
}

func (f *fixture) tick(t *testing.T) int {
	t.Helper()

	n, err := f.svc.Tick(context.Background())
	require.NoError(t, err)

	return n
}

func (f *fixture) status(t *testing.T, id string) order.Order {
	t.Helper()

	o, err := f.svc.GetOrder(context.Background(), id)
	require.NoError(t, err)

	return o
}

func TestMustNewOrderServiceRequiresRepositories(t *testing.T) {
	assert.Panics(t, func() { MustNewOrderService() })
	assert.Panics(t, func() {
		MustNewOrderService(WithOrderRepository(ordermemory.NewOrderRepository()))
	})
}

func TestBookSnapshotsTiming(t *testing.T) {
	f := newFixture(t)

	o, eval, err := f.svc.Book(context.Background(), BookingRequest{
		RestaurantID:             "r15",
		UserName:                 " Alex ",
		PartySize:                2,
		MealDetails:              "Salad",
		UserEstimatedArrivalTime: 20,
	})
	require.NoError(t, err)

	assert.Equal(t, timing.VerdictGoodTiming, eval.Verdict)
	assert.Equal(t, "SW-TEST1", o.ID)
	assert.Equal(t, "Alex", o.UserName)
	assert.Equal(t, "Green Leaf", o.RestaurantName)
	assert.Equal(t, 15, o.PrepTime)
	assert.Equal(t, 20, o.EstimatedMealReadyTime)
	assert.Equal(t, booked, o.BookingTime)
	assert.Equal(t, order.StatusPendingConfirmation, o.Status)
	assert.False(t, o.CookingTriggered)

	assert.Equal(t, []notify.Kind{notify.KindBookingSubmitted}, f.notifier.Kinds())
	require.Len(t, f.audit.transitions, 1)
	assert.Equal(t, "pending_confirmation", f.audit.transitions[0].NewStatus)
}

func TestBookValidation(t *testing.T) {
	valid := BookingRequest{
		RestaurantID: "r15", UserName: "Alex", PartySize: 1, MealDetails: "Soup", UserEstimatedArrivalTime: 20,
	}

	tests := []struct {
		name   string
		mutate func(*BookingRequest)
		target error
	}{
		{name: "blank name", mutate: func(r *BookingRequest) { r.UserName = "  " }, target: errs.ErrInvalidInput},
		{name: "missing restaurant", mutate: func(r *BookingRequest) { r.RestaurantID = "" }, target: errs.ErrInvalidInput},
		{name: "empty party", mutate: func(r *BookingRequest) { r.PartySize = 0 }, target: errs.ErrInvalidInput},
		{name: "missing meal", mutate: func(r *BookingRequest) { r.MealDetails = "" }, target: errs.ErrInvalidInput},
		{name: "zero eta", mutate: func(r *BookingRequest) { r.UserEstimatedArrivalTime = 0 }, target: errs.ErrInvalidInput},
		{name: "negative eta", mutate: func(r *BookingRequest) { r.UserEstimatedArrivalTime = -3 }, target: errs.ErrInvalidInput},
		{name: "too early", mutate: func(r *BookingRequest) { r.UserEstimatedArrivalTime = 5 }, target: errs.ErrInvalidInput},
		{name: "unknown restaurant", mutate: func(r *BookingRequest) { r.RestaurantID = "nope" }, target: errs.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			req := valid
			tt.mutate(&req)

			_, _, err := f.svc.Book(context.Background(), req)
			require.ErrorIs(t, err, tt.target)

			orders, err := f.svc.ListOrders(context.Background(), order.QueryOrdersModel{})
			require.NoError(t, err)
			assert.Empty(t, orders)
		})
	}
}

func TestBookValidationNamesFields(t *testing.T) {
	f := newFixture(t)

	_, _, err := f.svc.Book(context.Background(), BookingRequest{RestaurantID: "r15", MealDetails: " "})
	require.ErrorIs(t, err, errs.ErrInvalidInput)
	assert.Contains(t, err.Error(), "please fill in all fields (UserName, PartySize, MealDetails, UserEstimatedArrivalTime)")
	assert.Empty(t, f.notifier.Kinds())
}

func TestBookTooEarlySendsRejection(t *testing.T) {
	f := newFixture(t)

	_, eval, err := f.svc.Book(context.Background(), BookingRequest{
		RestaurantID: "r15", UserName: "Alex", PartySize: 2, MealDetails: "Soup", UserEstimatedArrivalTime: 5,
	})
	require.ErrorIs(t, err, errs.ErrInvalidInput)
	assert.Equal(t, timing.VerdictTooEarly, eval.Verdict)

	msgs := f.notifier.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, notify.KindActionRejected, msgs[0].Kind)
	assert.Equal(t, eval.Message, msgs[0].Message)
	assert.Empty(t, msgs[0].OrderID)
	assert.Empty(t, f.audit.Transitions())
}

func TestBookTooLateIsAllowed(t *testing.T) {
	f := newFixture(t)

	_, eval, err := f.svc.Book(context.Background(), BookingRequest{
		RestaurantID: "r10", UserName: "Sam", PartySize: 4, MealDetails: "Sushi Platter", UserEstimatedArrivalTime: 40,
	})
	require.NoError(t, err)
	assert.Equal(t, timing.VerdictTooLate, eval.Verdict)
	assert.True(t, eval.CanBook)
}

func TestEvaluateBooking(t *testing.T) {
	f := newFixture(t)

	eval, err := f.svc.EvaluateBooking(context.Background(), "r15", 5)
	require.NoError(t, err)
	assert.False(t, eval.CanBook)
	assert.Equal(t, 15, eval.WaitMinutes)

	_, err = f.svc.EvaluateBooking(context.Background(), "missing", 20)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestTickDrivesLifecycle(t *testing.T) {
	f := newFixture(t)
	o := f.book(t, "r15", 30)

	// Cooking starts at booking + (30 - 20) minutes.
	for range 599 {
		f.clock.Advance(time.Second)
		assert.Zero(t, f.tick(t))
	}
	f.clock.Advance(time.Second)
	assert.Equal(t, 1, f.tick(t))

	got := f.status(t, o.ID)
	assert.Equal(t, order.StatusPreparing, got.Status)
	assert.True(t, got.CookingTriggered)

	// Ticking again at the same instant changes nothing.
	assert.Zero(t, f.tick(t))

	f.clock.Set(booked.Add(30*time.Minute - time.Second))
	assert.Zero(t, f.tick(t))
	f.clock.Set(booked.Add(30 * time.Minute))
	assert.Equal(t, 1, f.tick(t))
	assert.Equal(t, order.StatusReadyForPickup, f.status(t, o.ID).Status)

	f.clock.Advance(time.Hour)
	assert.Zero(t, f.tick(t))

	assert.Equal(t, []notify.Kind{
		notify.KindBookingSubmitted,
		notify.KindCookingStarted,
		notify.KindReadyForPickup,
	}, f.notifier.Kinds())

	picked, err := f.svc.PickUp(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, order.StatusPickedUp, picked.Status)
	assert.Zero(t, f.tick(t))

	require.Len(t, f.audit.transitions, 4)
	assert.Equal(t, "preparing", f.audit.transitions[1].NewStatus)
	assert.True(t, f.audit.transitions[1].CookingTriggered)
	assert.Equal(t, changedByConsumer, f.audit.transitions[3].ChangedBy)
}

func TestNotificationsCarryOrderID(t *testing.T) {
	f := newFixture(t)
	first := f.book(t, "r15", 18)
	second := f.book(t, "r15", 30)

	f.tick(t)
	_, err := f.svc.PickUp(context.Background(), second.ID)
	require.ErrorIs(t, err, errs.ErrInvalidTransition)

	msgs := f.notifier.Messages()
	require.Len(t, msgs, 4)
	assert.Equal(t, first.ID, msgs[0].OrderID)
	assert.Equal(t, second.ID, msgs[1].OrderID)
	assert.Equal(t, notify.KindCookingStarted, msgs[2].Kind)
	assert.Equal(t, first.ID, msgs[2].OrderID)
	assert.Equal(t, notify.KindActionRejected, msgs[3].Kind)
	assert.Equal(t, second.ID, msgs[3].OrderID)
}

func TestSlowAuditDoesNotDelayCancel(t *testing.T) {
	f := newFixture(t)
	cooking := f.book(t, "r15", 18)
	pending := f.book(t, "r15", 30)

	release, entered := f.audit.stallNext()

	ticked := make(chan int, 1)
	go func() {
		n, err := f.svc.Tick(context.Background())
		assert.NoError(t, err)
		ticked <- n
	}()

	select {
	case <-entered:
	case <-time.After(time.Second):
		t.Fatal("tick never published its transitions")
	}

	cancelled := make(chan order.RefundTier, 1)
	go func() {
		_, tier, err := f.svc.Cancel(context.Background(), pending.ID)
		assert.NoError(t, err)
		cancelled <- tier
	}()

	select {
	case tier := <-cancelled:
		assert.Equal(t, order.RefundFull, tier)
	case <-time.After(time.Second):
		close(release)
		t.Fatal("cancel waited for the tick's audit publish")
	}

	close(release)
	assert.Equal(t, 1, <-ticked)
	assert.Equal(t, order.StatusPreparing, f.status(t, cooking.ID).Status)
	assert.Len(t, f.audit.Transitions(), 4)
}

func TestTickShortEtaStartsCookingImmediately(t *testing.T) {
	f := newFixture(t)
	o := f.book(t, "r15", 18)

	assert.Equal(t, 1, f.tick(t))
	assert.Equal(t, order.StatusPreparing, f.status(t, o.ID).Status)
}

func TestTickOneStepPerPass(t *testing.T) {
	f := newFixture(t)
	o := f.book(t, "r15", 30)

	// The scheduler was down past the arrival instant: two passes are needed.
	f.clock.Advance(time.Hour)
	assert.Equal(t, 1, f.tick(t))
	assert.Equal(t, order.StatusPreparing, f.status(t, o.ID).Status)
	assert.Equal(t, 1, f.tick(t))
	assert.Equal(t, order.StatusReadyForPickup, f.status(t, o.ID).Status)
}

func TestTickSurvivesNotifierFailure(t *testing.T) {
	f := newFixture(t)
	f.notifier.err = errors.New("sink down")
	f.audit.err = errors.New("broker down")

	o := f.book(t, "r15", 18)
	assert.Equal(t, 1, f.tick(t))
	assert.Equal(t, order.StatusPreparing, f.status(t, o.ID).Status)
}

func TestCancelRefundTiers(t *testing.T) {
	t.Run("full within window", func(t *testing.T) {
		f := newFixture(t)
		o := f.book(t, "r15", 30)
		f.clock.Advance(30 * time.Second)

		got, tier, err := f.svc.Cancel(context.Background(), o.ID)
		require.NoError(t, err)
		assert.Equal(t, order.RefundFull, tier)
		assert.Equal(t, order.StatusCancelledFullRefund, got.Status)
		assert.Equal(t, order.StatusCancelledFullRefund, f.status(t, o.ID).Status)

		f.clock.Advance(time.Hour)
		assert.Zero(t, f.tick(t))

		_, _, err = f.svc.Cancel(context.Background(), o.ID)
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("none after window", func(t *testing.T) {
		f := newFixture(t)
		o := f.book(t, "r15", 30)
		f.clock.Advance(121 * time.Second)

		_, tier, err := f.svc.Cancel(context.Background(), o.ID)
		require.NoError(t, err)
		assert.Equal(t, order.RefundNone, tier)
	})

	t.Run("partial while preparing", func(t *testing.T) {
		f := newFixture(t)
		o := f.book(t, "r15", 18)
		f.tick(t)

		got, tier, err := f.svc.Cancel(context.Background(), o.ID)
		require.NoError(t, err)
		assert.Equal(t, order.RefundPartial, tier)
		assert.Equal(t, order.StatusCancelledPartialRefund, got.Status)
		assert.True(t, got.CookingTriggered)
	})

	t.Run("unavailable when ready", func(t *testing.T) {
		f := newFixture(t)
		o := f.book(t, "r15", 18)
		f.tick(t)
		f.clock.Advance(18 * time.Minute)
		f.tick(t)

		_, _, err := f.svc.Cancel(context.Background(), o.ID)
		require.ErrorIs(t, err, errs.ErrCancellationUnavailable)
		assert.Equal(t, order.StatusReadyForPickup, f.status(t, o.ID).Status)

		kinds := f.notifier.Kinds()
		assert.Equal(t, notify.KindActionRejected, kinds[len(kinds)-1])
	})

	t.Run("unknown order", func(t *testing.T) {
		f := newFixture(t)
		_, _, err := f.svc.Cancel(context.Background(), "SW-missing")
		assert.ErrorIs(t, err, errs.ErrNotFound)
	})
}

func TestStartCookingOverride(t *testing.T) {
	f := newFixture(t)
	o := f.book(t, "r15", 60)

	got, err := f.svc.StartCooking(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, order.StatusPreparing, got.Status)
	assert.True(t, got.CookingTriggered)

	_, err = f.svc.StartCooking(context.Background(), o.ID)
	assert.ErrorIs(t, err, errs.ErrInvalidTransition)

	_, err = f.svc.PickUp(context.Background(), o.ID)
	assert.ErrorIs(t, err, errs.ErrInvalidTransition)
}

func TestEvaluateOrder(t *testing.T) {
	f := newFixture(t)
	o := f.book(t, "r15", 30)

	_, changed, err := f.svc.EvaluateOrder(context.Background(), o.ID)
	require.NoError(t, err)
	assert.False(t, changed)

	f.clock.Advance(10 * time.Minute)
	got, changed, err := f.svc.EvaluateOrder(context.Background(), o.ID)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, order.StatusPreparing, got.Status)
}

func TestGetOrderView(t *testing.T) {
	f := newFixture(t)
	o := f.book(t, "r15", 30)
	f.clock.Advance(30 * time.Second)

	view, err := f.svc.GetOrderView(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pending Confirmation", view.StatusLabel)
	assert.Equal(t, 25, view.Progress)
	assert.Equal(t, 90*time.Second, view.RefundWindow)
	assert.Equal(t, booked.Add(10*time.Minute), view.CookingAt)
	assert.Equal(t, timing.AlignmentMealEarly, view.Alignment.Kind)
	assert.Empty(t, view.LockerCode)

	f.clock.Advance(time.Hour)
	f.tick(t)
	f.tick(t)

	view, err = f.svc.GetOrderView(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, 90, view.Progress)
	assert.Zero(t, view.RefundWindow)
	assert.Equal(t, "MEST1", view.LockerCode)
}

func TestPunctuality(t *testing.T) {
	f := newFixture(t)
	onTime := f.book(t, "r15", 20)
	late := f.book(t, "r15", 40)
	cancelled := f.book(t, "r15", 22)
	_, _, err := f.svc.Cancel(context.Background(), cancelled.ID)
	require.NoError(t, err)

	f.clock.Advance(time.Hour)
	f.tick(t)
	f.tick(t)

	summary, err := f.svc.Punctuality(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Considered)
	assert.Equal(t, 1, summary.OnTime)
	assert.Equal(t, 50, summary.Score)
	assert.False(t, summary.OftenOnTime)

	assert.Equal(t, order.StatusReadyForPickup, f.status(t, onTime.ID).Status)
	assert.Equal(t, order.StatusReadyForPickup, f.status(t, late.ID).Status)
}

func TestListRestaurantsClassifiesDistance(t *testing.T) {
	f := newFixture(t)

	listings, err := f.svc.ListRestaurants(context.Background())
	require.NoError(t, err)
	require.Len(t, listings, 2)
	assert.True(t, listings[0].Distance.Suitable)
	assert.Equal(t, "Ideal for quick meals", listings[0].Distance.Label)
	assert.InDelta(t, 25.0, listings[0].Distance.ETA, 1e-9)
	assert.False(t, listings[1].Distance.Suitable)

	_, err = f.svc.GetRestaurant(context.Background(), "missing")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestListOrdersActiveOnly(t *testing.T) {
	f := newFixture(t)
	first := f.book(t, "r15", 30)
	second := f.book(t, "r15", 30)
	_, _, err := f.svc.Cancel(context.Background(), first.ID)
	require.NoError(t, err)

	orders, err := f.svc.ListOrders(context.Background(), order.QueryOrdersModel{ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, second.ID, orders[0].ID)
}
