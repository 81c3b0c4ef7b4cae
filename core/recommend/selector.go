package recommend

// IncomeIndex is the position of the income bracket answer in the questionnaire.
const IncomeIndex = 7

// positions of the lifestyle answers read by SelectAnswers
const (
	sportIndex         = 0
	parksIndex         = 2
	entertainmentIndex = 5
	houseIndex         = 6
	transitIndex       = 10
	noiseIndex         = 13
)

// SelectAnswers picks, from the full questionnaire, the answers the decision tree asks for
// the declared income bracket, in the order the tree asks them.
// An unrecognized bracket yields an empty sequence.
func SelectAnswers(answers []string) []string {
	at := func(i int) string {
		if i < len(answers) {
			return answers[i]
		}
		return ""
	}
	income := at(IncomeIndex)

	switch income {
	case IncomeLow:
		return []string{income, at(noiseIndex)}
	case IncomeLowMid:
		return []string{income, at(houseIndex), at(noiseIndex)}
	case IncomeMid:
		return []string{income, at(houseIndex), at(noiseIndex), at(entertainmentIndex)}
	case IncomeHighMid:
		return []string{income, at(houseIndex), at(transitIndex), at(entertainmentIndex)}
	case IncomeHigh:
		if at(houseIndex) == Yes {
			return []string{income, at(houseIndex), at(entertainmentIndex)}
		}
		selected := []string{income, at(houseIndex), at(sportIndex)}
		if at(sportIndex) == Yes {
			return append(selected, at(parksIndex))
		}
		return append(selected, at(noiseIndex))
	case IncomeStudent:
		return []string{income}
	}
	return []string{}
}
