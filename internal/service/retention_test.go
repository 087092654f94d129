package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"flight_tracker/internal/service/mocks"
	"flight_tracker/internal/testutil"
)

type RetentionServiceTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller

	flights   *mocks.MockFlightStore
	passes    *mocks.MockPassStateStore
	txManager *mocks.MockTransactionManager
}

func (s *RetentionServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.flights = mocks.NewMockFlightStore(s.ctrl)
	s.passes = mocks.NewMockPassStateStore(s.ctrl)
	s.txManager = mocks.NewMockTransactionManager(s.ctrl)
}

func (s *RetentionServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestRetentionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RetentionServiceTestSuite))
}

func (s *RetentionServiceTestSuite) newService(keepDays int, loc *time.Location) *RetentionService {
	return NewRetentionService(s.flights, s.passes, s.txManager, keepDays, loc, testutil.DiscardLogger())
}

type txKey struct{}

// expectTransaction runs fn with a context marked as transactional so the
// stores can be checked for running inside it.
func (s *RetentionServiceTestSuite) expectTransaction(ret func(error) error) {
	s.txManager.EXPECT().WithTransaction(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return ret(fn(context.WithValue(ctx, txKey{}, true)))
		},
	)
}

func inTx() gomock.Matcher {
	return gomock.Cond(func(x any) bool {
		ctx, ok := x.(context.Context)
		if !ok {
			return false
		}
		v, _ := ctx.Value(txKey{}).(bool)
		return v
	})
}

func (s *RetentionServiceTestSuite) TestPrune_DeletesRecordsAndPassStateInOneTransaction() {
	ctx := context.Background()
	loc, err := time.LoadLocation("America/Bogota")
	s.Require().NoError(err)

	// 02:00 UTC on the 11th is still the 10th in Bogota.
	now := time.Date(2024, 5, 11, 2, 0, 0, 0, time.UTC)

	s.expectTransaction(func(err error) error { return err })
	gomock.InOrder(
		s.flights.EXPECT().DeleteBefore(inTx(), "2024-04-10").Return(int64(42), nil),
		s.passes.EXPECT().DeleteBefore(inTx(), "2024-04-10").Return(int64(3), nil),
	)

	result, err := s.newService(30, loc).Prune(ctx, now)

	s.Require().NoError(err)
	s.Equal("2024-04-10", result.Cutoff)
	s.Equal(int64(42), result.Records)
	s.Equal(int64(3), result.States)
}

func (s *RetentionServiceTestSuite) TestPrune_RecordDeleteError() {
	ctx := context.Background()
	dbErr := errors.New("relation does not exist")

	s.expectTransaction(func(err error) error { return err })
	s.flights.EXPECT().DeleteBefore(inTx(), "2024-05-03").Return(int64(0), dbErr)
	s.passes.EXPECT().DeleteBefore(gomock.Any(), gomock.Any()).Times(0)

	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	result, err := s.newService(7, time.UTC).Prune(ctx, now)

	s.Nil(result)
	s.ErrorIs(err, dbErr)
	s.Contains(err.Error(), "2024-05-03")
}

func (s *RetentionServiceTestSuite) TestPrune_PassStateErrorFailsWholeSweep() {
	ctx := context.Background()
	dbErr := errors.New("lock timeout")

	// The manager sees the error from fn, which is what makes it roll back.
	var seen error
	s.expectTransaction(func(err error) error {
		seen = err
		return err
	})
	s.flights.EXPECT().DeleteBefore(inTx(), "2024-05-03").Return(int64(12), nil)
	s.passes.EXPECT().DeleteBefore(inTx(), "2024-05-03").Return(int64(0), dbErr)

	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	result, err := s.newService(7, time.UTC).Prune(ctx, now)

	s.Nil(result)
	s.ErrorIs(err, dbErr)
	s.ErrorIs(seen, dbErr)
	s.Contains(err.Error(), "delete pass state")
}
