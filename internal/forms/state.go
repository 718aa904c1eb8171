package forms

// State holds the field values and errors for one open form. It is created
// when the form's screen or modal mounts and discarded when it closes; the
// only carry-over between forms is the explicit sign-in pre-fill after a
// successful sign-up.
type State struct {
	Kind   Kind   `json:"kind"`
	Values Values `json:"values"`
	Errors Errors `json:"errors"`
}

// NewState returns an empty form state for the given kind.
func NewState(kind Kind) *State {
	values := make(Values, len(kind.Fields()))
	for _, field := range kind.Fields() {
		values[field] = ""
	}
	return &State{Kind: kind, Values: values, Errors: Errors{}}
}

// KnowsField reports whether the field belongs to this form's field set.
func (s *State) KnowsField(field string) bool {
	for _, f := range s.Kind.Fields() {
		if f == field {
			return true
		}
	}
	return false
}

// Edit records a keystroke: it sets the field's value and clears that
// field's error while leaving every other error in place.
func (s *State) Edit(field, value string) {
	s.Values[field] = value
	s.Errors = ClearField(s.Errors, field)
}

// Submit validates the current values, replaces the error set wholesale, and
// reports whether the form passed.
func (s *State) Submit() bool {
	s.Errors = Validate(s.Kind, s.Values)
	return len(s.Errors) == 0
}

// Clone returns an independent copy so read-side projections can expose form
// state without aliasing the live maps.
func (s *State) Clone() *State {
	clone := &State{
		Kind:   s.Kind,
		Values: make(Values, len(s.Values)),
		Errors: make(Errors, len(s.Errors)),
	}
	for k, v := range s.Values {
		clone.Values[k] = v
	}
	for k, v := range s.Errors {
		clone.Errors[k] = v
	}
	return clone
}
