package courier

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Category classifies a courier by transport and drives two business rules:
// the maximum total weight a courier may carry in one bundle and the
// coefficient applied to the bundle earning at finalization.
//
// The rules are table driven: supporting a new category means adding a row to
// getCategorySpecs, the matcher and earning code stay untouched.
type Category string

const (
	// CategoryFoot is a light courier on foot.
	CategoryFoot Category = "foot"

	// CategoryBike is a medium-capacity bike courier.
	CategoryBike Category = "bike"

	// CategoryCar is a high-capacity vehicle courier.
	CategoryCar Category = "car"
)

// categorySpec holds the static per-category business parameters.
type categorySpec struct {
	capacity           float64
	earningCoefficient int
}

// getCategorySpecs returns the capacity table: the static mapping from
// category to carry capacity and earning coefficient.
func getCategorySpecs() map[Category]categorySpec {
	return map[Category]categorySpec{
		CategoryFoot: {capacity: 10, earningCoefficient: 2},
		CategoryBike: {capacity: 15, earningCoefficient: 5},
		CategoryCar:  {capacity: 50, earningCoefficient: 9},
	}
}

// CategoryFromString converts the wire representation into a Category.
func CategoryFromString(s string) (Category, error) {
	category := Category(s)
	if err := category.Validate(); err != nil {
		return "", err
	}
	return category, nil
}

// Validate checks that the category is present in the capacity table.
func (c Category) Validate() error {
	if _, ok := getCategorySpecs()[c]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("category",
			fmt.Errorf("%q is not a known courier category", string(c)))
	}
	return nil
}

// String returns the wire representation of the category.
func (c Category) String() string {
	return string(c)
}

// Capacity returns the maximum total order weight a courier of this category
// may carry in a single bundle.
func (c Category) Capacity() float64 {
	return getCategorySpecs()[c].capacity
}

// EarningCoefficient returns the multiplier applied to the base order earning
// when a bundle assigned under this category is finalized.
func (c Category) EarningCoefficient() int {
	return getCategorySpecs()[c].earningCoefficient
}
