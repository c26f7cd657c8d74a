package pricing

import "github.com/google/uuid"

// Rule is one configured pricing-rule instance in a rule set.
type Rule struct {
	ID    string    `json:"id"`
	Type  PriceType `json:"type"`
	Title string    `json:"title"`
}

// NewRule creates a rule instance with a generated id.
func NewRule(t PriceType) Rule {
	return Rule{ID: uuid.NewString(), Type: t, Title: Title(t)}
}

// RuleSet is the ordered list of rules an operator builds for an agreement.
type RuleSet struct {
	rules []Rule
}

// Rules returns the rules in insertion order.
func (s *RuleSet) Rules() []Rule {
	out := make([]Rule, len(s.rules))
	copy(out, s.rules)
	return out
}

// Add appends a new rule of the given type if the compatibility table allows
// it. It returns the created rule and whether it was added.
func (s *RuleSet) Add(t PriceType) (Rule, bool) {
	if !AllowedToAdd(t, s.rules) {
		return Rule{}, false
	}
	r := NewRule(t)
	s.rules = append(s.rules, r)
	return r, true
}

// Remove deletes the rule with the given id, reporting whether it existed.
func (s *RuleSet) Remove(id string) bool {
	for i, r := range s.rules {
		if r.ID == id {
			s.rules = append(s.rules[:i], s.rules[i+1:]...)
			return true
		}
	}
	return false
}

// Addable returns the types currently allowed to join the set, in display
// order. It drives the rule-builder list.
func (s *RuleSet) Addable() []PriceType {
	var out []PriceType
	for _, t := range Types() {
		if AllowedToAdd(t, s.rules) {
			out = append(out, t)
		}
	}
	return out
}
