package pricing

import "testing"

func rulesOf(types ...PriceType) []Rule {
	var out []Rule
	for _, t := range types {
		out = append(out, NewRule(t))
	}
	return out
}

func TestAllowedOnlyOnce(t *testing.T) {
	for _, pt := range Types() {
		want := pt != Zones
		if got := AllowedOnlyOnce(pt); got != want {
			t.Errorf("%s: AllowedOnlyOnce = %v, want %v", pt, got, want)
		}
	}
}

func TestAllowedToAddRejectsDuplicates(t *testing.T) {
	for _, pt := range Types() {
		existing := rulesOf(pt)
		got := AllowedToAdd(pt, existing)
		if pt == Zones {
			if !got {
				t.Errorf("Zones should remain addable after a first Zones rule")
			}
			continue
		}
		if got {
			t.Errorf("%s: second instance should be rejected", pt)
		}
	}
}

func TestHourPriceConflicts(t *testing.T) {
	blockers := []PriceType{MinimumPrice, StartPrice, PriceEachKm, Zones}
	for _, b := range blockers {
		if !LimitedBy(HourPrice, rulesOf(b)) {
			t.Errorf("HourPrice should be limited by %s", b)
		}
	}
	nonBlockers := []PriceType{StopPrice, ParcelPrice, WaitingTime, EveningSurcharge,
		WeekendSurcharge, HolidaySurcharge, VehicleSurcharge, FuelSurcharge, TollFee}
	for _, b := range nonBlockers {
		if LimitedBy(HourPrice, rulesOf(b)) {
			t.Errorf("HourPrice should not be limited by %s", b)
		}
	}
	if LimitedBy(HourPrice, nil) {
		t.Errorf("HourPrice should not be limited by an empty set")
	}
}

func TestZonesConflicts(t *testing.T) {
	if !LimitedBy(Zones, rulesOf(PriceEachKm)) {
		t.Errorf("Zones should be limited by PriceEachKm")
	}
	if !LimitedBy(Zones, rulesOf(HourPrice)) {
		t.Errorf("Zones should be limited by HourPrice")
	}
	if LimitedBy(Zones, rulesOf(StartPrice, MinimumPrice)) {
		t.Errorf("Zones should not be limited by start/minimum price")
	}
}

func TestCanCalculateWithEstimateFirstZonesOnly(t *testing.T) {
	a, b, c := NewRule(Zones), NewRule(Zones), NewRule(Zones)
	all := []Rule{a, b, c}
	if !CanCalculateWithEstimate(a, all) {
		t.Errorf("first Zones rule should be estimable")
	}
	if CanCalculateWithEstimate(b, all) || CanCalculateWithEstimate(c, all) {
		t.Errorf("later Zones rules should not be estimable")
	}
}

func TestCanCalculateWithEstimatePerType(t *testing.T) {
	estimable := map[PriceType]bool{
		MinimumPrice: true, StartPrice: true, PriceEachKm: true, HourPrice: true,
	}
	for _, pt := range Types() {
		if pt == Zones {
			continue
		}
		r := NewRule(pt)
		if got := CanCalculateWithEstimate(r, []Rule{r}); got != estimable[pt] {
			t.Errorf("%s: estimable = %v, want %v", pt, got, estimable[pt])
		}
	}
}

func TestTraitsCoverAllTypes(t *testing.T) {
	for _, pt := range Types() {
		if Title(pt) == "" || Description(pt) == "" {
			t.Errorf("%d: missing title or description", pt)
		}
	}
}

func TestRuleSetAddRemove(t *testing.T) {
	var s RuleSet
	r, ok := s.Add(PriceEachKm)
	if !ok || r.ID == "" || r.Title != "Price per km" {
		t.Fatalf("add PriceEachKm: %v %v", r, ok)
	}
	if _, ok := s.Add(HourPrice); ok {
		t.Fatalf("HourPrice must be blocked by PriceEachKm")
	}
	if _, ok := s.Add(PriceEachKm); ok {
		t.Fatalf("duplicate PriceEachKm must be blocked")
	}
	if !s.Remove(r.ID) {
		t.Fatalf("remove should find the rule")
	}
	if s.Remove(r.ID) {
		t.Fatalf("second remove should report missing")
	}
	if _, ok := s.Add(HourPrice); !ok {
		t.Fatalf("HourPrice should be addable once PriceEachKm is gone")
	}
}

func TestAddableListShrinks(t *testing.T) {
	var s RuleSet
	before := len(s.Addable())
	if _, ok := s.Add(HourPrice); !ok {
		t.Fatalf("add HourPrice")
	}
	after := s.Addable()
	if len(after) >= before {
		t.Fatalf("addable list should shrink, %d -> %d", before, len(after))
	}
	for _, pt := range after {
		if pt == MinimumPrice || pt == StartPrice || pt == PriceEachKm || pt == Zones || pt == HourPrice {
			t.Errorf("%s should not be addable alongside HourPrice", pt)
		}
	}
}
