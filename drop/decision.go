// Package drop runs the per-stream detection loop and arbitrates the
// single drop point across the beep, silence and transcription cues.
package drop

// Reason identifies which cue produced a drop decision.
type Reason string

const (
	// ReasonBeep: the tonal beep marker was confirmed. Highest priority.
	ReasonBeep Reason = "beep_detected"

	// ReasonSilenceComplete: post-speech silence held long enough and
	// the oracle judged the greeting complete.
	ReasonSilenceComplete Reason = "silence_and_complete_greeting"

	// ReasonEndOfSpeech: nothing triggered but speech was heard well
	// after the stream started.
	ReasonEndOfSpeech Reason = "end_of_speech"

	// ReasonEndOfAudio: nothing triggered and little or no speech was
	// ever confirmed.
	ReasonEndOfAudio Reason = "end_of_audio"
)

// Decision is the single drop point chosen for one stream, latched
// first-wins: once a stream triggers, no later cue can replace it.
type Decision struct {
	Time   float64
	Reason Reason
}
