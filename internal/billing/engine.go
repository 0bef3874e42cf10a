// Package billing derives invoice line items from contract terms, meter
// readings and pricing. It is pure: every input is explicit and no state is
// read or written.
package billing

// ContractTerms carries the contract fields billing needs. Rent is copied
// from the contract at invoice creation time and never re-read.
type ContractTerms struct {
	RentPrice int64
}

// UtilityInput describes one utility for a billing period. When FlatAmount is
// set the utility is billed flat-rate and the readings are ignored.
type UtilityInput struct {
	Prev       int64
	Curr       int64
	UnitPrice  int64
	FlatAmount *int64
}

// FixedFees are the per-invoice fixed charges.
type FixedFees struct {
	Common   int64
	Parking  int64
	Internet int64
	Cleaning int64
	Other    int64
}

func (f FixedFees) Total() int64 {
	return f.Common + f.Parking + f.Internet + f.Cleaning + f.Other
}

// UtilityLine is the computed charge for one utility.
type UtilityLine struct {
	Prev      int64
	Curr      int64
	Units     int64
	UnitPrice int64
	FlatRate  bool
	Subtotal  int64
}

// LineItems is the full computed invoice body.
type LineItems struct {
	Rent     int64
	Water    UtilityLine
	Electric UtilityLine
	Fees     FixedFees
	Total    int64
}

// Pricing is the billing configuration resolved at invoice creation time.
// It replaces the shared mutable settings read the original system did, so
// Compute stays independently testable.
type Pricing struct {
	WaterUnitPrice     int64
	ElectricUnitPrice  int64
	WaterFlatAmount    *int64
	ElectricFlatAmount *int64
	DefaultFees        FixedFees
}

// Compute turns contract terms, two utility inputs and fixed fees into
// invoice line items.
//
// A metered subtotal is (curr - prev) * unit price with no clamping: a
// reading that went backwards (meter replacement) produces a negative
// subtotal. This intentionally differs from consumption reporting, which
// clamps at zero. A flat-rate utility records zero readings and units so the
// stored invoice does not imply metered billing occurred.
func Compute(terms ContractTerms, water, electric UtilityInput, fees FixedFees) LineItems {
	items := LineItems{
		Rent:     terms.RentPrice,
		Water:    computeUtility(water),
		Electric: computeUtility(electric),
		Fees:     fees,
	}
	items.Total = items.Rent + items.Water.Subtotal + items.Electric.Subtotal + fees.Total()
	return items
}

func computeUtility(in UtilityInput) UtilityLine {
	if in.FlatAmount != nil {
		return UtilityLine{
			FlatRate: true,
			Subtotal: *in.FlatAmount,
		}
	}

	units := in.Curr - in.Prev
	return UtilityLine{
		Prev:      in.Prev,
		Curr:      in.Curr,
		Units:     units,
		UnitPrice: in.UnitPrice,
		Subtotal:  units * in.UnitPrice,
	}
}
