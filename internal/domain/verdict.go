package domain

// Verdict is the three-way outcome of grading a learner's typed answer
// against the reference answer.
type Verdict string

// Possible verdict values
const (
	VerdictOK    Verdict = "OK"
	VerdictMaybe Verdict = "MAYBE"
	VerdictNG    Verdict = "NG"
)

// IsValid reports whether v is one of the defined verdict values.
func (v Verdict) IsValid() bool {
	switch v {
	case VerdictOK, VerdictMaybe, VerdictNG:
		return true
	}
	return false
}
