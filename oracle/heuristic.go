package oracle

import "strings"

var completeIndicators = []string{
	"leave a message",
	"after the beep",
	"after the tone",
	"call me back",
	"thank you",
	"goodbye",
	"leave your name",
	"i'll call you",
	"message after",
	"beep and then",
}

var incompleteIndicators = []string{
	"hi this is",
	"hello this is",
	"you've reached",
	"i am",
	"my name is",
	"i'm not available",
	"sorry i missed",
}

// Heuristic scores fixed indicator phrases. The excerpt is complete
// when complete indicators outscore incomplete ones, or when at least
// one complete indicator is present and the excerpt is longer than 10
// characters. The second clause can win even when incomplete
// indicators dominate.
type Heuristic struct{}

func (Heuristic) Judge(text string) (Judgment, error) {
	lower := strings.ToLower(text)
	var completeScore, incompleteScore int
	for _, phrase := range completeIndicators {
		if strings.Contains(lower, phrase) {
			completeScore++
		}
	}
	for _, phrase := range incompleteIndicators {
		if strings.Contains(lower, phrase) {
			incompleteScore++
		}
	}
	complete := completeScore > incompleteScore || (completeScore > 0 && len(text) > 10)
	return Judgment{Complete: complete, Raw: "HEURISTIC"}, nil
}
