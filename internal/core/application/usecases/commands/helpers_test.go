package commands_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/bundle"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

var assignTime = time.Date(2021, 1, 10, 9, 32, 14, 0, time.UTC)

func windows(t *testing.T, raw ...string) []kernel.TimeWindow {
	t.Helper()
	result := make([]kernel.TimeWindow, 0, len(raw))
	for _, r := range raw {
		w, err := kernel.TimeWindowFromString(r)
		require.NoError(t, err)
		result = append(result, w)
	}
	return result
}

func buildCourier(t *testing.T, id int64, category courier.Category, regions []int) *courier.Courier {
	t.Helper()
	c, err := courier.NewCourier(id, category, regions, windows(t, "09:00-18:00"))
	require.NoError(t, err)
	return c
}

func buildOrder(t *testing.T, id int64, weight float64, region int) *order.Order {
	t.Helper()
	o, err := order.NewOrder(id, weight, region, windows(t, "10:00-14:00"))
	require.NoError(t, err)
	return o
}

func buildAssignedOrder(t *testing.T, id int64, weight float64, region int, courierID, bundleID int64) *order.Order {
	t.Helper()
	o := buildOrder(t, id, weight, region)
	require.NoError(t, o.Assign(courierID, bundleID, assignTime))
	return o
}

func buildBundle(t *testing.T, id, courierID int64, category courier.Category) *bundle.Bundle {
	t.Helper()
	b, err := bundle.NewBundle(id, courierID, category, assignTime)
	require.NoError(t, err)
	return b
}
