package transcribe

import (
	"math"
	"strings"
)

var greetingPhrases = []string{
	"Hi you've reached Mike Rodriguez",
	"Hello this is Mike",
	"You've reached Mike Rodriguez",
	"Hi you've reached Mike Rodriguez I can't take your call right now",
	"Hello this is Mike I'm not available at the moment",
	"You've reached the voicemail of Mike Rodriguez",
	"Hi you've reached Mike Rodriguez I can't take your call right now please leave your name and number after the beep",
	"Hello this is Mike I'm not available right now please leave a message after the tone and I'll get back to you",
	"You've reached Mike Rodriguez I can't come to the phone right now please leave your name number and a brief message after the beep",
}

const (
	fragmentInterval = 0.4
	closerFragment   = " please leave a message after the beep"
)

// SimulatedSource plays a canned greeting back as incremental
// fragments, paced against stream time rather than the wall clock so
// batch runs stay deterministic. Longer recordings pick longer
// greetings; the fragment position tracks a progress ratio of elapsed
// time, and a closing phrase is appended once past 80% of the stream
// when the chosen greeting has no closing language of its own.
type SimulatedSource struct {
	phrase     string
	position   int
	lastEmit   float64
	emitted    bool
	closerSent bool
}

func NewSimulatedSource() *SimulatedSource {
	return &SimulatedSource{}
}

func (s *SimulatedSource) NextFragment(totalDuration, elapsed float64) (string, bool) {
	if s.emitted && elapsed-s.lastEmit < fragmentInterval {
		return "", false
	}
	s.lastEmit = elapsed
	s.emitted = true

	if s.phrase == "" {
		idx := int(totalDuration / 5)
		if idx > len(greetingPhrases)-1 {
			idx = len(greetingPhrases) - 1
		}
		s.phrase = greetingPhrases[idx]
	}

	progress := math.Min(1.0, elapsed/math.Max(3.0, totalDuration*0.7))
	pos := int(float64(len(s.phrase)) * progress)
	if pos > s.position {
		fragment := s.phrase[s.position:pos]
		s.position = pos
		return fragment, true
	}

	if elapsed > totalDuration*0.8 && !s.closerSent {
		lower := strings.ToLower(s.phrase)
		if !strings.Contains(lower, "after the beep") && !strings.Contains(lower, "message") {
			s.closerSent = true
			return closerFragment, true
		}
	}
	return "", false
}

func (s *SimulatedSource) Reset() {
	s.phrase = ""
	s.position = 0
	s.lastEmit = 0
	s.emitted = false
	s.closerSent = false
}
