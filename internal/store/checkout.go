package store

import (
	"context"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Stage is a step of the checkout flow.
type Stage int

const (
	// StageBrowsing means no basket snapshot has been taken.
	StageBrowsing Stage = iota

	// StageBasketReviewed means the basket was copied into the order.
	StageBasketReviewed

	// StageInfoCollected means payment and address are valid.
	StageInfoCollected

	// StageContactsCollected means the whole order is valid.
	StageContactsCollected

	// StageSubmitted means the order is being sent.
	StageSubmitted
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageBrowsing:
		return "browsing"
	case StageBasketReviewed:
		return "basket-reviewed"
	case StageInfoCollected:
		return "info-collected"
	case StageContactsCollected:
		return "contacts-collected"
	case StageSubmitted:
		return "submitted"
	default:
		return "unknown"
	}
}

// Stage derives the checkout stage from the current order.
func (s *State) Stage() Stage {
	errs := validate(s.order)
	switch {
	case s.submitting:
		return StageSubmitted
	case !s.snapshotTaken:
		return StageBrowsing
	case !errs.Valid(InfoFields...):
		return StageBasketReviewed
	case !errs.Valid(ContactsFields...):
		return StageInfoCollected
	default:
		return StageContactsCollected
	}
}

// InfoValid reports whether payment and address are filled in.
func (s *State) InfoValid() bool {
	return validate(s.order).Valid(InfoFields...)
}

// ContactsValid reports whether email and phone are filled in.
func (s *State) ContactsValid() bool {
	return validate(s.order).Valid(ContactsFields...)
}

// BeginSubmit moves the order into StageSubmitted and returns the request
// to send. The order is revalidated first, which emits errors.changed.
// Notification failures are logged; they do not block the submission.
func (s *State) BeginSubmit(ctx context.Context) (OrderRequest, error) {
	if s.submitting {
		return OrderRequest{}, ErrSubmitInFlight
	}
	if !s.snapshotTaken || len(s.order.Items) == 0 {
		return OrderRequest{}, ErrCheckoutNotReady
	}

	valid, err := s.ValidateOrder(ctx)
	if err != nil {
		s.logger.Warn("validation notification failed", zap.Error(err))
	}
	if !valid {
		return OrderRequest{}, ErrCheckoutNotReady
	}

	s.submitting = true
	o := s.Order()
	s.logger.Info("order submission started",
		zap.Int("items", len(o.Items)),
		zap.Stringer("total", o.Total))

	return OrderRequest{
		Payment: o.Payment,
		Email:   o.Email,
		Phone:   o.Phone,
		Address: o.Address,
		Total:   o.Total,
		Items:   o.Items,
	}, nil
}

// CompleteSubmit finishes a successful submission. The basket, order and
// errors are reset, then basket.changed and order.submitted are emitted.
func (s *State) CompleteSubmit(ctx context.Context, result OrderResult) error {
	if !s.submitting {
		return ErrNoSubmitInFlight
	}
	s.submitting = false

	previewFlipped := s.clearBasket()
	s.ClearOrder()
	s.ClearErrors()

	s.logger.Info("order submitted",
		zap.String("id", result.ID),
		zap.Stringer("total", result.Total))

	err := s.emitBasket(ctx, previewFlipped)
	return multierr.Append(err, s.EmitChanges(ctx, TopicOrderSubmitted, result))
}

// FailSubmit records a failed submission. The order is kept so the user
// can retry, and order.failed is emitted.
func (s *State) FailSubmit(ctx context.Context, cause error) error {
	if !s.submitting {
		return ErrNoSubmitInFlight
	}
	s.submitting = false

	s.logger.Warn("order submission failed", zap.Error(cause))

	return s.EmitChanges(ctx, TopicOrderFailed, SubmitFailure{
		Order: s.Order(),
		Err:   cause,
	})
}
