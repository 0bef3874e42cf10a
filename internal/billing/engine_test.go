package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompute_MeteredUtilities(t *testing.T) {
	items := Compute(
		ContractTerms{RentPrice: 3000},
		UtilityInput{Prev: 10, Curr: 15, UnitPrice: 18},
		UtilityInput{Prev: 100, Curr: 120, UnitPrice: 8},
		FixedFees{Common: 300},
	)

	assert.Equal(t, int64(90), items.Water.Subtotal)
	assert.Equal(t, int64(5), items.Water.Units)
	assert.Equal(t, int64(160), items.Electric.Subtotal)
	assert.Equal(t, int64(20), items.Electric.Units)
	assert.Equal(t, int64(3550), items.Total)
}

func TestCompute_FlatRateOverridesReadings(t *testing.T) {
	flat := int64(250)
	items := Compute(
		ContractTerms{RentPrice: 3000},
		UtilityInput{Prev: 10, Curr: 15, UnitPrice: 18, FlatAmount: &flat},
		UtilityInput{Prev: 100, Curr: 120, UnitPrice: 8},
		FixedFees{Common: 300},
	)

	assert.True(t, items.Water.FlatRate)
	assert.Equal(t, int64(250), items.Water.Subtotal)
	assert.Equal(t, int64(0), items.Water.Prev)
	assert.Equal(t, int64(0), items.Water.Curr)
	assert.Equal(t, int64(0), items.Water.Units)
	assert.Equal(t, int64(3000+250+160+300), items.Total)
}

func TestCompute_DecreasingReadingIsNotClamped(t *testing.T) {
	items := Compute(
		ContractTerms{RentPrice: 1000},
		UtilityInput{Prev: 50, Curr: 20, UnitPrice: 10},
		UtilityInput{Prev: 0, Curr: 0, UnitPrice: 8},
		FixedFees{},
	)

	assert.Equal(t, int64(-30), items.Water.Units)
	assert.Equal(t, int64(-300), items.Water.Subtotal)
	assert.Equal(t, int64(700), items.Total)
}

func TestCompute_FeeTotal(t *testing.T) {
	fees := FixedFees{Common: 1, Parking: 2, Internet: 3, Cleaning: 4, Other: 5}
	assert.Equal(t, int64(15), fees.Total())

	items := Compute(ContractTerms{RentPrice: 100}, UtilityInput{}, UtilityInput{}, fees)
	assert.Equal(t, int64(115), items.Total)
}

func TestCompute_ZeroFlatAmountStillFlat(t *testing.T) {
	flat := int64(0)
	items := Compute(
		ContractTerms{},
		UtilityInput{Prev: 1, Curr: 9, UnitPrice: 5, FlatAmount: &flat},
		UtilityInput{},
		FixedFees{},
	)

	assert.True(t, items.Water.FlatRate)
	assert.Equal(t, int64(0), items.Water.Subtotal)
	assert.Equal(t, int64(0), items.Total)
}
