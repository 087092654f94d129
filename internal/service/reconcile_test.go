package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"flight_tracker/internal/config"
	"flight_tracker/internal/domain"
	"flight_tracker/internal/observability"
	"flight_tracker/internal/service/mocks"
	"flight_tracker/internal/testutil"
)

type ReconcileServiceTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller

	source    *mocks.MockStatusSource
	flights   *mocks.MockFlightStore
	passes    *mocks.MockPassStateStore
	txManager *mocks.MockTransactionManager
	publisher *mocks.MockPublisher

	service *ReconcileService
	cfg     config.ReconcileConfig
	logger  *slog.Logger
	now     time.Time
}

func (s *ReconcileServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())

	s.source = mocks.NewMockStatusSource(s.ctrl)
	s.flights = mocks.NewMockFlightStore(s.ctrl)
	s.passes = mocks.NewMockPassStateStore(s.ctrl)
	s.txManager = mocks.NewMockTransactionManager(s.ctrl)
	s.publisher = mocks.NewMockPublisher(s.ctrl)

	s.cfg = config.ReconcileConfig{
		Interval:    5 * time.Minute,
		Window:      time.Hour,
		Timezone:    "UTC",
		DelayLabels: "buckets",
	}

	s.logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	s.now = time.Date(2024, 5, 10, 10, 0, 0, 0, time.UTC)

	s.source.EXPECT().ID().Return("test-source").AnyTimes()
	s.source.EXPECT().Name().Return("Test Source").AnyTimes()

	s.service = s.newService(s.cfg)
}

func (s *ReconcileServiceTestSuite) newService(cfg config.ReconcileConfig) *ReconcileService {
	return NewReconcileService(
		s.source,
		s.flights,
		s.passes,
		s.txManager,
		s.publisher,
		observability.NewMetricsForTesting(),
		s.logger,
		cfg,
		time.UTC,
	)
}

func (s *ReconcileServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestReconcileServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReconcileServiceTestSuite))
}

// dataset has two flights inside the window (101, 102), one departed too
// early (103), one already landed (104) and one still in the future (105).
func (s *ReconcileServiceTestSuite) dataset() []domain.FlightRecord {
	earlier := s.now.Add(-3 * time.Hour)
	return []domain.FlightRecord{
		{ID: 1, FlightNumber: "AV101", Date: "2024-05-10", From: "BOG", To: "MDE", Status: domain.StatusScheduled, ETD: "09:30", LastUpdated: earlier},
		{ID: 2, FlightNumber: "AV102", Date: "2024-05-10", From: "BOG", To: "CLO", Status: domain.StatusDelayed, ETD: "09:45", LastUpdated: earlier},
		{ID: 3, FlightNumber: "AV103", Date: "2024-05-10", From: "BOG", To: "CTG", Status: domain.StatusScheduled, ETD: "08:00", LastUpdated: earlier},
		{ID: 4, FlightNumber: "AV104", Date: "2024-05-10", From: "BOG", To: "SMR", Status: domain.StatusLanded, ETD: "09:50", ATD: "09:55",
			DelayMinutes: testutil.Ptr(5), DelayCategory: testutil.Ptr("0-15 min"), LastUpdated: earlier},
		{ID: 5, FlightNumber: "AV105", Date: "2024-05-10", From: "BOG", To: "ADZ", Status: domain.StatusScheduled, ETD: "11:00", LastUpdated: earlier},
	}
}

func (s *ReconcileServiceTestSuite) expectTransaction() {
	s.txManager.EXPECT().WithTransaction(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		},
	)
}

func (s *ReconcileServiceTestSuite) TestReconcile_MergesEligibleFlights() {
	ctx := context.Background()
	records := s.dataset()

	s.flights.EXPECT().ListByDate(ctx, "2024-05-10").Return(records, nil)

	s.source.EXPECT().FetchStatus(gomock.Any(), "101", "2024-05-10").Return([]domain.StatusUpdate{
		{FlightNumber: "101", Status: domain.StatusDeparted, ETD: "09:30", ATD: "09:52"},
	}, nil)
	s.source.EXPECT().FetchStatus(gomock.Any(), "102", "2024-05-10").Return(nil, domain.ErrUnresolved)

	s.expectTransaction()

	var written []domain.FlightRecord
	s.flights.EXPECT().ReplaceDate(ctx, "2024-05-10", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, recs []domain.FlightRecord) error {
			written = recs
			return nil
		},
	)

	s.passes.EXPECT().Get(ctx, "2024-05-10").Return(&domain.PassState{FlightDate: "2024-05-10", Passes: 2, TotalUpdated: 7}, nil)
	s.passes.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, state *domain.PassState) error {
			s.Equal(int64(3), state.Passes)
			s.Equal(int64(8), state.TotalUpdated)
			s.Equal(1, state.LastFailed)
			s.Equal(s.now, state.LastPassAt)
			return nil
		},
	)

	s.publisher.EXPECT().PublishPass(ctx, gomock.Any()).Return(nil)

	result, err := s.service.Reconcile(ctx, s.now)

	s.Require().NoError(err)
	s.Equal("2024-05-10", result.Date)
	s.Equal(5, result.Total)
	s.Equal(2, result.Eligible)
	s.Equal(1, result.Updated)
	s.Equal([]string{"AV102"}, result.FailedFlights)

	s.Require().Len(written, 5)
	s.Equal(domain.StatusDeparted, written[0].Status)
	s.Equal("09:52", written[0].ATD)
	s.Equal(22, *written[0].DelayMinutes)
	s.Equal("15-30 min", *written[0].DelayCategory)
	s.Equal(s.now, written[0].LastUpdated)

	// Failed flight keeps its data but is stamped.
	s.Equal(domain.StatusDelayed, written[1].Status)
	s.Equal(s.now, written[1].LastUpdated)

	s.Equal(records[2], written[2])
	s.Equal(records[3], written[3])
	s.Equal(records[4], written[4])
}

func (s *ReconcileServiceTestSuite) TestReconcile_NoEligibleFlights() {
	ctx := context.Background()
	records := s.dataset()[2:]

	s.flights.EXPECT().ListByDate(ctx, "2024-05-10").Return(records, nil)

	result, err := s.service.Reconcile(ctx, s.now)

	s.Require().NoError(err)
	s.Equal(0, result.Eligible)
	s.Equal(records, result.Records)
}

func (s *ReconcileServiceTestSuite) TestReconcile_ReadError() {
	ctx := context.Background()

	s.flights.EXPECT().ListByDate(ctx, "2024-05-10").Return(nil, domain.ErrDatasetNotFound)

	result, err := s.service.Reconcile(ctx, s.now)

	s.Nil(result)
	s.ErrorIs(err, domain.ErrDatasetNotFound)
	s.Contains(err.Error(), "read dataset 2024-05-10")
}

func (s *ReconcileServiceTestSuite) TestReconcile_WriteError() {
	ctx := context.Background()

	s.flights.EXPECT().ListByDate(ctx, "2024-05-10").Return(s.dataset(), nil)
	s.source.EXPECT().FetchStatus(gomock.Any(), gomock.Any(), "2024-05-10").Return([]domain.StatusUpdate{}, nil).Times(2)

	writeErr := errors.New("connection reset")
	s.expectTransaction()
	s.flights.EXPECT().ReplaceDate(ctx, "2024-05-10", gomock.Any()).Return(writeErr)

	result, err := s.service.Reconcile(ctx, s.now)

	s.Nil(result)
	s.ErrorIs(err, writeErr)
	s.Contains(err.Error(), "write dataset 2024-05-10")
}

func (s *ReconcileServiceTestSuite) TestReconcile_PublishFailureDoesNotFailPass() {
	ctx := context.Background()

	s.flights.EXPECT().ListByDate(ctx, "2024-05-10").Return(s.dataset(), nil)
	s.source.EXPECT().FetchStatus(gomock.Any(), gomock.Any(), "2024-05-10").Return([]domain.StatusUpdate{
		{Status: domain.StatusDelayed, ETD: "09:30", ATD: ""},
	}, nil).Times(2)

	s.expectTransaction()
	s.flights.EXPECT().ReplaceDate(ctx, "2024-05-10", gomock.Any()).Return(nil)
	s.passes.EXPECT().Get(ctx, "2024-05-10").Return(&domain.PassState{FlightDate: "2024-05-10"}, nil)
	s.passes.EXPECT().Update(ctx, gomock.Any()).Return(nil)
	s.publisher.EXPECT().PublishPass(ctx, gomock.Any()).Return(errors.New("channel closed"))

	result, err := s.service.Reconcile(ctx, s.now)

	s.Require().NoError(err)
	s.Equal(2, result.Updated)
	s.Empty(result.FailedFlights)
}

func (s *ReconcileServiceTestSuite) TestReconcile_WithoutPublisher() {
	ctx := context.Background()
	svc := NewReconcileService(s.source, s.flights, s.passes, s.txManager, nil,
		observability.NewMetricsForTesting(), s.logger, s.cfg, time.UTC)

	s.flights.EXPECT().ListByDate(ctx, "2024-05-10").Return(s.dataset(), nil)
	s.source.EXPECT().FetchStatus(gomock.Any(), gomock.Any(), "2024-05-10").Return(nil, domain.ErrUnresolved).Times(2)
	s.expectTransaction()
	s.flights.EXPECT().ReplaceDate(ctx, "2024-05-10", gomock.Any()).Return(nil)
	s.passes.EXPECT().Get(ctx, "2024-05-10").Return(&domain.PassState{FlightDate: "2024-05-10"}, nil)
	s.passes.EXPECT().Update(ctx, gomock.Any()).Return(nil)

	result, err := svc.Reconcile(ctx, s.now)

	s.Require().NoError(err)
	s.Equal(0, result.Updated)
	s.ElementsMatch([]string{"AV101", "AV102"}, result.FailedFlights)
}

func (s *ReconcileServiceTestSuite) TestReconcileDataset_PreservesIdentityAndOrder() {
	ctx := context.Background()
	records := s.dataset()

	s.source.EXPECT().FetchStatus(gomock.Any(), "101", "2024-05-10").Return([]domain.StatusUpdate{
		{Status: domain.StatusLanded, ETD: "09:30", ATD: "09:20"},
	}, nil)
	s.source.EXPECT().FetchStatus(gomock.Any(), "102", "2024-05-10").Return([]domain.StatusUpdate{
		{Status: domain.StatusDelayed, ETD: "09:45", ATD: "10:40"},
	}, nil)

	result := s.service.ReconcileDataset(ctx, records, s.now)

	s.Require().Len(result.Records, len(records))
	for i := range records {
		s.Equal(records[i].ID, result.Records[i].ID)
		s.Equal(records[i].FlightNumber, result.Records[i].FlightNumber)
		s.Equal(records[i].From, result.Records[i].From)
		s.Equal(records[i].To, result.Records[i].To)
		s.Equal(records[i].Date, result.Records[i].Date)
	}

	s.Equal(-10, *result.Records[0].DelayMinutes)
	s.Equal("Early 10 min", *result.Records[0].DelayCategory)
	s.Equal(55, *result.Records[1].DelayMinutes)
	s.Equal("45+ min", *result.Records[1].DelayCategory)

	// The input dataset is not mutated.
	s.Equal(domain.StatusScheduled, records[0].Status)
	s.Nil(records[0].DelayMinutes)
}

func (s *ReconcileServiceTestSuite) TestReconcileDataset_NoMatchKeepsRecord() {
	ctx := context.Background()
	records := s.dataset()[:1]

	s.source.EXPECT().FetchStatus(gomock.Any(), "101", "2024-05-10").Return([]domain.StatusUpdate{}, nil)

	result := s.service.ReconcileDataset(ctx, records, s.now)

	want := records[0]
	want.LastUpdated = s.now
	s.Equal([]domain.FlightRecord{want}, result.Records)
	s.Equal(0, result.Updated)
	s.Equal([]string{"AV101"}, result.FailedFlights)
}

func (s *ReconcileServiceTestSuite) TestReconcileDataset_FlightNumberWithoutDigits() {
	ctx := context.Background()
	records := s.dataset()[:1]
	records[0].FlightNumber = "AVIANCA"

	result := s.service.ReconcileDataset(ctx, records, s.now)

	s.Equal(0, result.Updated)
	s.Equal([]string{"AVIANCA"}, result.FailedFlights)
	s.Equal(domain.StatusScheduled, result.Records[0].Status)
}

func (s *ReconcileServiceTestSuite) TestReconcileDataset_UncomputableDelayClearsFields() {
	ctx := context.Background()
	records := s.dataset()[1:2]
	records[0].DelayMinutes = testutil.Ptr(10)
	records[0].DelayCategory = testutil.Ptr("0-15 min")

	s.source.EXPECT().FetchStatus(gomock.Any(), "102", "2024-05-10").Return([]domain.StatusUpdate{
		{Status: domain.StatusDelayed, ETD: "09:45", ATD: "--:--"},
	}, nil)

	result := s.service.ReconcileDataset(ctx, records, s.now)

	s.Nil(result.Records[0].DelayMinutes)
	s.Nil(result.Records[0].DelayCategory)
}

func (s *ReconcileServiceTestSuite) TestReconcileDataset_NonDepartureStatusKeepsDelay() {
	ctx := context.Background()
	records := s.dataset()[1:2]
	records[0].DelayMinutes = testutil.Ptr(10)
	records[0].DelayCategory = testutil.Ptr("0-15 min")

	s.source.EXPECT().FetchStatus(gomock.Any(), "102", "2024-05-10").Return([]domain.StatusUpdate{
		{Status: domain.StatusCancelled, ETD: "09:45"},
	}, nil)

	result := s.service.ReconcileDataset(ctx, records, s.now)

	s.Equal(domain.StatusCancelled, result.Records[0].Status)
	s.Equal(10, *result.Records[0].DelayMinutes)
	s.Equal("0-15 min", *result.Records[0].DelayCategory)
}

func (s *ReconcileServiceTestSuite) TestReconcileDataset_Idempotent() {
	ctx := context.Background()

	s.source.EXPECT().FetchStatus(gomock.Any(), "101", "2024-05-10").Return([]domain.StatusUpdate{
		{Status: domain.StatusDeparted, ETD: "09:30", ATD: "09:41"},
	}, nil).AnyTimes()
	s.source.EXPECT().FetchStatus(gomock.Any(), "102", "2024-05-10").Return([]domain.StatusUpdate{
		{Status: domain.StatusDelayed, ETD: "09:45", ATD: "09:58"},
	}, nil).AnyTimes()

	first := s.service.ReconcileDataset(ctx, s.dataset(), s.now)
	second := s.service.ReconcileDataset(ctx, first.Records, s.now)

	s.Equal(first.Records, second.Records)
	// Flight 101 departed, so only 102 is still refreshed.
	s.Equal(2, first.Eligible)
	s.Equal(1, second.Eligible)
}

func (s *ReconcileServiceTestSuite) TestReconcileDataset_BoundedConcurrency() {
	ctx := context.Background()
	cfg := s.cfg
	cfg.MaxConcurrency = 2
	svc := s.newService(cfg)

	records := make([]domain.FlightRecord, 6)
	for i := range records {
		records[i] = domain.FlightRecord{
			ID:           int64(i + 1),
			FlightNumber: "AV20" + string(rune('0'+i)),
			Date:         "2024-05-10",
			Status:       domain.StatusScheduled,
			ETD:          "09:40",
		}
	}

	var inFlight, peak atomic.Int32
	var mu sync.Mutex
	seen := map[string]bool{}

	s.source.EXPECT().FetchStatus(gomock.Any(), gomock.Any(), "2024-05-10").DoAndReturn(
		func(_ context.Context, number, _ string) ([]domain.StatusUpdate, error) {
			n := inFlight.Add(1)
			defer inFlight.Add(-1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			mu.Lock()
			seen[number] = true
			mu.Unlock()
			time.Sleep(10 * time.Millisecond)
			return []domain.StatusUpdate{{Status: domain.StatusScheduled, ETD: "09:40"}}, nil
		},
	).Times(6)

	result := svc.ReconcileDataset(ctx, records, s.now)

	s.Equal(6, result.Updated)
	s.Len(seen, 6)
	s.LessOrEqual(peak.Load(), int32(2))
}

func (s *ReconcileServiceTestSuite) TestReconcileDataset_PanickingFetchKeepsRecord() {
	ctx := context.Background()
	records := s.dataset()

	s.source.EXPECT().FetchStatus(gomock.Any(), "101", "2024-05-10").DoAndReturn(
		func(context.Context, string, string) ([]domain.StatusUpdate, error) {
			panic("decoder blew up")
		},
	)
	s.source.EXPECT().FetchStatus(gomock.Any(), "102", "2024-05-10").Return([]domain.StatusUpdate{
		{Status: domain.StatusDeparted, ETD: "09:45", ATD: "09:50"},
	}, nil)

	result := s.service.ReconcileDataset(ctx, records, s.now)

	s.Equal(1, result.Updated)
	s.Equal([]string{"AV101"}, result.FailedFlights)

	want := records[0]
	want.LastUpdated = s.now
	s.Equal(want, result.Records[0])

	s.Equal(domain.StatusDeparted, result.Records[1].Status)
	s.Equal(5, *result.Records[1].DelayMinutes)
}
