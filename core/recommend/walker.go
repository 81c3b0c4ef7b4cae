package recommend

import "strings"

// Sentinels returned in place of a neighborhood id.
const (
	// SentinelNoMatch is returned when an answer matches no option of the current question.
	SentinelNoMatch = "No se pudo determinar una recomendación."
	// SentinelExhausted is returned when the answers run out before a leaf is reached.
	SentinelExhausted = "No se pudo determinar una recomendación de barrio."
)

// Outcome tells how a walk ended.
type Outcome int

const (
	OutcomeDetermined Outcome = iota
	OutcomeNoMatch
	OutcomeExhausted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeDetermined:
		return "determined"
	case OutcomeNoMatch:
		return "no_match"
	case OutcomeExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Result is a neighborhood id or one of the two undetermined outcomes.
type Result struct {
	Neighborhood string
	Outcome      Outcome
}

// Determined reports whether a neighborhood was found.
func (r Result) Determined() bool {
	return r.Outcome == OutcomeDetermined
}

// String returns the neighborhood id, or the sentinel text for undetermined results.
func (r Result) String() string {
	switch r.Outcome {
	case OutcomeDetermined:
		return r.Neighborhood
	case OutcomeNoMatch:
		return SentinelNoMatch
	default:
		return SentinelExhausted
	}
}

// Walk follows the answers down from root, one answer per step, matching case-insensitively.
// It stops at the first leaf even when answers remain.
func Walk(root *Node, answers []string) Result {
	current := root

	for _, answer := range answers {
		if len(current.Options) == 0 {
			return Result{Outcome: OutcomeNoMatch}
		}
		next, ok := current.Branch(strings.ToLower(answer))
		if !ok {
			return Result{Outcome: OutcomeNoMatch}
		}

		switch {
		case next.IsQuestion():
			current = next
		case next.IsLeaf():
			return Result{Neighborhood: next.Neighborhood, Outcome: OutcomeDetermined}
		default:
			// neither question nor leaf: the answer is consumed, the position is kept
			continue
		}
	}

	return Result{Outcome: OutcomeExhausted}
}

// Recommend evaluates a full questionnaire against the decision tree.
func Recommend(answers []string) Result {
	return Walk(Tree(), SelectAnswers(answers))
}
