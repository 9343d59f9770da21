package rules

// Verdict is the tri-state outcome of a compliance question. Unsure
// is also the answer when the model's reply could not be parsed, so
// downstream consumers never see a fourth "broken" state.
type Verdict int

const (
	VerdictUnsure Verdict = iota
	VerdictYes
	VerdictNo
)

// String returns the verdict name used in logs and reports.
func (v Verdict) String() string {
	switch v {
	case VerdictYes:
		return "yes"
	case VerdictNo:
		return "no"
	default:
		return "unsure"
	}
}

// MarshalJSON renders the verdict as true/false/null, the wire shape
// report consumers expect for the answer field.
func (v Verdict) MarshalJSON() ([]byte, error) {
	switch v {
	case VerdictYes:
		return []byte("true"), nil
	case VerdictNo:
		return []byte("false"), nil
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts the true/false/null wire shape.
func (v *Verdict) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case "true":
		*v = VerdictYes
	case "false":
		*v = VerdictNo
	default:
		*v = VerdictUnsure
	}
	return nil
}
