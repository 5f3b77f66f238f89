package bundle

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/pkg/errs"
)

// baseOrderEarning is the fixed per-bundle earning before the category
// coefficient is applied.
const baseOrderEarning = 500

// Domain errors for bundle operations.
var (
	// ErrBundleIsNotConstructed is returned when using an improperly initialized Bundle.
	ErrBundleIsNotConstructed = errors.New("Bundle must be created via NewBundle constructor")
	// ErrBundleAlreadyCompleted is returned when finalizing or voiding a bundle twice.
	ErrBundleAlreadyCompleted = errors.New("bundle is already completed")
)

// Bundle represents a batch of orders assigned to one courier in a single
// dispatch call. The orders share one assignment timestamp and one lifecycle.
//
// States:
//   - open: at least one of its orders is not yet completed
//   - finalized: all orders completed; the earning is computed from the
//     category snapshot taken at assignment and credited to the courier
//   - voided: emptied by a reassignment cascade before any order completed;
//     marked completed and deleted together, with no earning
//
// Bundles are never physically deleted; the deleted flag marks the logical
// void. The bundle identifier is monotonically increasing across the system:
// highest existing id plus one, or 1 when none exist.
type Bundle struct {
	// id is the monotonically increasing bundle identifier.
	id int64

	// courierID references the owning courier.
	courierID int64

	// initCategory snapshots the courier's category at assignment time.
	// It is immutable afterwards and drives the earning computation even if
	// the courier's category later changes.
	initCategory courier.Category

	// assignTime is the shared assignment timestamp of the dispatch call.
	assignTime time.Time

	// completed marks a finalized or voided bundle.
	completed bool

	// completeTime is set at finalization; voided bundles keep nil.
	completeTime *time.Time

	// earning is the amount credited at finalization (zero for voided bundles).
	earning int

	// deleted marks the logical void of an emptied bundle.
	deleted bool

	// isConstructed ensures the bundle was created via NewBundle or RestoreBundle.
	isConstructed bool
}

// NewBundle creates an open Bundle owned by the given courier, snapshotting
// the courier's category at assignment time.
func NewBundle(id, courierID int64, initCategory courier.Category, assignTime time.Time) (*Bundle, error) {
	if id <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("id",
			fmt.Errorf("%d is not greater than 0", id))
	}
	if courierID <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("courierID",
			fmt.Errorf("%d is not greater than 0", courierID))
	}
	if err := initCategory.Validate(); err != nil {
		return nil, err
	}

	return &Bundle{
		id:            id,
		courierID:     courierID,
		initCategory:  initCategory,
		assignTime:    assignTime,
		isConstructed: true,
	}, nil
}

// RestoreBundle reconstructs a Bundle from persistence.
func RestoreBundle(
	id, courierID int64,
	initCategory courier.Category,
	assignTime time.Time,
	completed bool,
	completeTime *time.Time,
	earning int,
	deleted bool,
) (*Bundle, error) {
	bundle, err := NewBundle(id, courierID, initCategory, assignTime)
	if err != nil {
		return nil, err
	}

	if deleted && !completed {
		return nil, errs.NewValueIsInvalidErrorWithCause("bundle",
			fmt.Errorf("bundle %d is deleted but not completed", id))
	}

	bundle.completed = completed
	bundle.completeTime = completeTime
	bundle.earning = earning
	bundle.deleted = deleted
	return bundle, nil
}

// Validate ensures the Bundle instance was properly constructed.
// Returns ErrBundleIsNotConstructed otherwise.
func (b *Bundle) Validate() error {
	if b == nil || !b.isConstructed {
		return ErrBundleIsNotConstructed
	}
	return nil
}

// ID returns the bundle identifier.
func (b *Bundle) ID() int64 {
	return b.id
}

// Courier returns the owning courier's identifier.
func (b *Bundle) Courier() int64 {
	return b.courierID
}

// InitCategory returns the courier category snapshotted at assignment time.
func (b *Bundle) InitCategory() courier.Category {
	return b.initCategory
}

// AssignTime returns the shared assignment timestamp.
func (b *Bundle) AssignTime() time.Time {
	return b.assignTime
}

// IsCompleted reports whether the bundle has been finalized or voided.
func (b *Bundle) IsCompleted() bool {
	return b.completed
}

// CompleteTime returns the finalization timestamp, or nil for open and voided bundles.
func (b *Bundle) CompleteTime() *time.Time {
	return b.completeTime
}

// Earning returns the amount credited at finalization.
func (b *Bundle) Earning() int {
	return b.earning
}

// IsDeleted reports whether the bundle was voided.
func (b *Bundle) IsDeleted() bool {
	return b.deleted
}

// Finalize closes the bundle after its last order completed. The earning is
// computed from the category snapshot taken at assignment, so a later courier
// category change does not affect it. The returned amount is what the caller
// credits to the courier, exactly once.
func (b *Bundle) Finalize(completeTime time.Time) (int, error) {
	if b.completed {
		return 0, ErrBundleAlreadyCompleted
	}

	b.completed = true
	b.completeTime = &completeTime
	b.earning = b.initCategory.EarningCoefficient() * baseOrderEarning
	return b.earning, nil
}

// Void closes a bundle that the reassignment cascade emptied before any of
// its orders completed. The bundle is marked completed and deleted together;
// no earning is produced and the courier's rating is unaffected.
func (b *Bundle) Void() error {
	if b.completed {
		return ErrBundleAlreadyCompleted
	}

	b.completed = true
	b.deleted = true
	return nil
}
