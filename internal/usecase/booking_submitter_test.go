package usecase

import (
	"context"
	"testing"

	"flightbooking-agent/internal/domain/entity"
	"flightbooking-agent/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitTravelerCountMismatchFailsWithoutSubmission(t *testing.T) {
	repo := &fakeBookingRepo{queue: []submitResult{{confirmation: &entity.BookingConfirmation{ID: "order-1"}}}}
	submitter := NewBookingSubmitter(repo, logger.NewLogger())

	offer := offerWithPricings("1", "2")
	bound := []entity.BoundTraveler{testTraveler("1", "ANNA")}

	confirmation, err := submitter.Submit(context.Background(), offer, bound, &entity.Contact{})

	require.Error(t, err)
	assert.Nil(t, confirmation)
	assert.Zero(t, repo.calls)

	var bookingErr *entity.BookingError
	require.ErrorAs(t, err, &bookingErr)
	assert.Equal(t, entity.FailureRequest, bookingErr.Kind)
	assert.False(t, bookingErr.Recoverable())
}

func TestSubmitMatchingCountsReachesRepository(t *testing.T) {
	repo := &fakeBookingRepo{queue: []submitResult{{confirmation: &entity.BookingConfirmation{ID: "order-1"}}}}
	submitter := NewBookingSubmitter(repo, logger.NewLogger())

	offer := offerWithPricings("1", "2")
	bound := []entity.BoundTraveler{testTraveler("1", "ANNA"), testTraveler("2", "BEN")}

	confirmation, err := submitter.Submit(context.Background(), offer, bound, &entity.Contact{})

	require.NoError(t, err)
	require.NotNil(t, confirmation)
	assert.Equal(t, "order-1", confirmation.ID)
	assert.Equal(t, 1, repo.calls)
}

func TestSubmitNoPricingsSkipsCountCheck(t *testing.T) {
	repo := &fakeBookingRepo{queue: []submitResult{{confirmation: &entity.BookingConfirmation{ID: "order-1"}}}}
	submitter := NewBookingSubmitter(repo, logger.NewLogger())

	offer := &entity.Offer{ID: "offer-1"}
	bound := []entity.BoundTraveler{testTraveler("1", "ANNA")}

	_, err := submitter.Submit(context.Background(), offer, bound, &entity.Contact{})

	require.NoError(t, err)
	assert.Equal(t, 1, repo.calls)
}

func TestSubmitRepositoryErrorPassesThrough(t *testing.T) {
	want := &entity.BookingError{Kind: entity.FailureSegmentSell, Status: 400, Code: 34651, Detail: "segment sell failure"}
	repo := &fakeBookingRepo{queue: []submitResult{{err: want}}}
	submitter := NewBookingSubmitter(repo, logger.NewLogger())

	offer := offerWithPricings("1")
	bound := []entity.BoundTraveler{testTraveler("1", "ANNA")}

	_, err := submitter.Submit(context.Background(), offer, bound, &entity.Contact{})

	require.Error(t, err)

	var bookingErr *entity.BookingError
	require.ErrorAs(t, err, &bookingErr)
	assert.Same(t, want, bookingErr)
	assert.True(t, bookingErr.Recoverable())
}
