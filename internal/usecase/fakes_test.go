package usecase

import (
	"context"

	"flightbooking-agent/internal/domain/entity"
)

// fakeSearchRepo serves a canned offer list and counts calls.
type fakeSearchRepo struct {
	offers []*entity.Offer
	err    error
	calls  int
}

func (f *fakeSearchRepo) Search(_ context.Context, _ entity.SearchParams) ([]*entity.Offer, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.offers, nil
}

// fakePricingRepo returns a fixed refreshed offer, or echoes the input when
// none is configured.
type fakePricingRepo struct {
	refreshed *entity.Offer
	err       error
	calls     int
}

func (f *fakePricingRepo) ValidatePricing(_ context.Context, offer *entity.Offer) (*entity.Offer, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if f.refreshed != nil {
		return f.refreshed, nil
	}
	return offer, nil
}

type submitResult struct {
	confirmation *entity.BookingConfirmation
	err          error
}

// fakeBookingRepo replays a queue of scripted submit outcomes and records the
// traveler bindings it was handed.
type fakeBookingRepo struct {
	queue []submitResult
	calls int
	bound [][]entity.BoundTraveler
}

func (f *fakeBookingRepo) Submit(_ context.Context, _ *entity.Offer, travelers []entity.BoundTraveler, _ *entity.Contact) (*entity.BookingConfirmation, error) {
	f.bound = append(f.bound, travelers)
	idx := f.calls
	f.calls++
	if idx >= len(f.queue) {
		idx = len(f.queue) - 1
	}
	result := f.queue[idx]
	return result.confirmation, result.err
}

func (f *fakeBookingRepo) GetBooking(_ context.Context, _ string) (*entity.BookingConfirmation, error) {
	return nil, entity.ErrBookingNotFound
}
