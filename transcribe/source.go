// Package transcribe defines the incremental transcription contract the
// decision engine consumes, the trailing context buffer fed to the
// completeness oracle, and a simulated source for offline runs.
package transcribe

// Source produces incremental transcript fragments for one stream.
// Implementations rate-limit themselves; NextFragment returns false
// when nothing new is available yet. Reset restarts the sequence for
// the next stream.
type Source interface {
	NextFragment(totalDuration, elapsed float64) (string, bool)
	Reset()
}

const (
	trailingCap = 200
	minContext  = 10
)

// ContextBuffer accumulates fragments into an unbounded transcript plus
// a 200-character trailing window. The trailing window bounds what the
// completeness oracle ever sees.
type ContextBuffer struct {
	transcript string
	trailing   string
}

func (b *ContextBuffer) Append(fragment string) {
	if fragment == "" {
		return
	}
	b.transcript += fragment
	b.trailing += fragment
	if len(b.trailing) > trailingCap {
		b.trailing = b.trailing[len(b.trailing)-trailingCap:]
	}
}

// Current returns the judgment excerpt: the trailing window when it is
// long enough, otherwise the transcript tail, otherwise empty.
func (b *ContextBuffer) Current() string {
	if len(b.trailing) > minContext {
		return b.trailing
	}
	if b.transcript == "" {
		return ""
	}
	if len(b.transcript) > trailingCap {
		return b.transcript[len(b.transcript)-trailingCap:]
	}
	return b.transcript
}

func (b *ContextBuffer) Transcript() string { return b.transcript }

func (b *ContextBuffer) Reset() {
	b.transcript = ""
	b.trailing = ""
}
