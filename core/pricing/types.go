// Package pricing implements the dynamic-pricing rule compatibility tables.
// All decision functions are pure lookups; an unmapped type is a programming
// error and panics.
package pricing

import "fmt"

// PriceType enumerates the configurable pricing-rule types.
type PriceType int

const (
	MinimumPrice PriceType = iota
	StartPrice
	PriceEachKm
	HourPrice
	Zones
	StopPrice
	ParcelPrice
	WaitingTime
	EveningSurcharge
	WeekendSurcharge
	HolidaySurcharge
	VehicleSurcharge
	FuelSurcharge
	TollFee
)

// Types returns all price types in builder display order.
func Types() []PriceType {
	return []PriceType{
		MinimumPrice, StartPrice, PriceEachKm, HourPrice, Zones,
		StopPrice, ParcelPrice, WaitingTime, EveningSurcharge,
		WeekendSurcharge, HolidaySurcharge, VehicleSurcharge,
		FuelSurcharge, TollFee,
	}
}

type traits struct {
	title       string
	description string
	// conflicts lists the types whose presence blocks adding this one.
	conflicts []PriceType
	// once forbids a second rule of this type in the same set.
	once bool
	// estimable marks rules whose amount can be computed from a route
	// estimate. Zones is special-cased in CanCalculateWithEstimate.
	estimable bool
}

// priceTraits is the fixed compatibility table. The conflict pairs are kept
// symmetric around HourPrice, PriceEachKm and Zones; every type must have an
// entry.
var priceTraits = map[PriceType]traits{
	MinimumPrice: {
		title:       "Minimum price",
		description: "A lower bound applied after all other rules.",
		conflicts:   []PriceType{HourPrice},
		once:        true,
		estimable:   true,
	},
	StartPrice: {
		title:       "Start price",
		description: "A flat fee added to every route.",
		conflicts:   []PriceType{HourPrice},
		once:        true,
		estimable:   true,
	},
	PriceEachKm: {
		title:       "Price per km",
		description: "A rate multiplied by the driven distance.",
		conflicts:   []PriceType{HourPrice, Zones},
		once:        true,
		estimable:   true,
	},
	HourPrice: {
		title:       "Hourly price",
		description: "A rate multiplied by the route duration. Excludes all distance-based rules.",
		conflicts:   []PriceType{MinimumPrice, StartPrice, PriceEachKm, Zones},
		once:        true,
		estimable:   true,
	},
	Zones: {
		title:       "Zone price",
		description: "A fixed price per delivery zone. May be added several times.",
		conflicts:   []PriceType{PriceEachKm, HourPrice},
		once:        false,
		estimable:   false,
	},
	StopPrice: {
		title:       "Price per stop",
		description: "A fee for every stop on the route.",
		once:        true,
	},
	ParcelPrice: {
		title:       "Price per parcel",
		description: "A fee for every parcel carried.",
		once:        true,
	},
	WaitingTime: {
		title:       "Waiting time",
		description: "A rate for time spent waiting at stops.",
		once:        true,
	},
	EveningSurcharge: {
		title:       "Evening surcharge",
		description: "An addition for routes running in the evening.",
		once:        true,
	},
	WeekendSurcharge: {
		title:       "Weekend surcharge",
		description: "An addition for routes on Saturdays and Sundays.",
		once:        true,
	},
	HolidaySurcharge: {
		title:       "Holiday surcharge",
		description: "An addition for routes on public holidays.",
		once:        true,
	},
	VehicleSurcharge: {
		title:       "Vehicle surcharge",
		description: "An addition depending on the vehicle type.",
		once:        true,
	},
	FuelSurcharge: {
		title:       "Fuel surcharge",
		description: "A percentage tracking the fuel index.",
		once:        true,
	},
	TollFee: {
		title:       "Toll fee",
		description: "Pass-through of bridge and road tolls.",
		once:        true,
	},
}

func (t PriceType) traits() traits {
	tr, ok := priceTraits[t]
	if !ok {
		panic(fmt.Sprintf("pricing: no traits for price type %d", t))
	}
	return tr
}

// String returns the title of the type.
func (t PriceType) String() string { return t.traits().title }

// Title returns the display title for the type.
func Title(t PriceType) string { return t.traits().title }

// Description returns the display description for the type.
func Description(t PriceType) string { return t.traits().description }

// AllowedOnlyOnce reports whether a second rule of this type is forbidden.
// Only Zones may repeat.
func AllowedOnlyOnce(t PriceType) bool { return t.traits().once }

// LimitedBy reports whether any existing rule's type blocks adding a rule of
// type t.
func LimitedBy(t PriceType, existing []Rule) bool {
	for _, c := range t.traits().conflicts {
		for _, r := range existing {
			if r.Type == c {
				return true
			}
		}
	}
	return false
}

// AllowedToAdd reports whether a rule of type t may join the given rule set.
func AllowedToAdd(t PriceType, existing []Rule) bool {
	if LimitedBy(t, existing) {
		return false
	}
	if AllowedOnlyOnce(t) {
		for _, r := range existing {
			if r.Type == t {
				return false
			}
		}
	}
	return true
}

// CanCalculateWithEstimate reports whether the rule's amount can be derived
// from a route estimate. For Zones only the first Zones rule in list order
// qualifies.
func CanCalculateWithEstimate(rule Rule, all []Rule) bool {
	if rule.Type == Zones {
		for _, r := range all {
			if r.Type == Zones {
				return r.ID == rule.ID
			}
		}
		return false
	}
	return rule.Type.traits().estimable
}
