package domain

// Ballot choice keys submitted by the voting page.
const (
	ChoiceA = "a"
	ChoiceB = "b"
)

type Vote struct {
	VoterID      string  `json:"voter_id"`
	Vote         string  `json:"vote"`
	TraceContext *string `json:"trace_context"`
}

type OptionPair struct {
	A string `json:"option_a"`
	B string `json:"option_b"`
}

// Label returns the display name configured for a choice key.
func (p OptionPair) Label(choice string) (string, bool) {
	switch choice {
	case ChoiceA:
		return p.A, true
	case ChoiceB:
		return p.B, true
	}
	return "", false
}
