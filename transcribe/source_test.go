package transcribe

import (
	"strings"
	"testing"
)

func TestContextBufferTrailingCap(t *testing.T) {
	var b ContextBuffer
	b.Append(strings.Repeat("a", 150))
	b.Append(strings.Repeat("b", 100))

	got := b.Current()
	if len(got) != trailingCap {
		t.Fatalf("excerpt length = %d, want %d", len(got), trailingCap)
	}
	if want := strings.Repeat("a", 100) + strings.Repeat("b", 100); got != want {
		t.Error("trailing window must drop the oldest characters first")
	}
	if len(b.Transcript()) != 250 {
		t.Errorf("transcript length = %d, want 250", len(b.Transcript()))
	}
}

func TestContextBufferFallbacks(t *testing.T) {
	var b ContextBuffer
	if b.Current() != "" {
		t.Error("empty buffer must return an empty excerpt")
	}
	b.Append("short")
	if b.Current() != "short" {
		t.Errorf("Current() = %q, want transcript fallback %q", b.Current(), "short")
	}
	b.Append(" but long enough now")
	if b.Current() != "short but long enough now" {
		t.Errorf("Current() = %q, want full trailing window", b.Current())
	}
}

func TestContextBufferIgnoresEmptyFragment(t *testing.T) {
	var b ContextBuffer
	b.Append("")
	if b.Transcript() != "" || b.Current() != "" {
		t.Error("empty fragment must not change the buffer")
	}
}

func TestContextBufferReset(t *testing.T) {
	var b ContextBuffer
	b.Append(strings.Repeat("x", 300))
	b.Reset()
	if b.Transcript() != "" || b.Current() != "" {
		t.Error("reset must clear transcript and trailing window")
	}
}

func runSource(s *SimulatedSource, total float64, steps int) string {
	var sb strings.Builder
	for i := 1; i <= steps; i++ {
		elapsed := total * float64(i) / float64(steps)
		if frag, ok := s.NextFragment(total, elapsed); ok {
			sb.WriteString(frag)
		}
	}
	return sb.String()
}

func TestSimulatedSourceEmitsFullGreeting(t *testing.T) {
	s := NewSimulatedSource()
	got := runSource(s, 10.0, 100)
	// a 10s stream picks the third greeting, which carries no closing
	// language of its own, so the closer is appended past 80%
	want := "You've reached Mike Rodriguez" + closerFragment
	if got != want {
		t.Errorf("reassembled transcript = %q, want %q", got, want)
	}
}

func TestSimulatedSourceCloserSentOnce(t *testing.T) {
	s := NewSimulatedSource()
	got := runSource(s, 10.0, 200)
	if n := strings.Count(got, closerFragment); n != 1 {
		t.Errorf("closer emitted %d times, want 1", n)
	}
}

func TestSimulatedSourceKeepsExplicitCloser(t *testing.T) {
	s := NewSimulatedSource()
	// a 30s stream picks a greeting that already ends with beep language
	got := runSource(s, 30.0, 300)
	want := "Hi you've reached Mike Rodriguez I can't take your call right now please leave your name and number after the beep"
	if got != want {
		t.Errorf("reassembled transcript = %q, want %q", got, want)
	}
}

func TestSimulatedSourcePacing(t *testing.T) {
	s := NewSimulatedSource()
	var emits []float64
	for i := 1; i <= 300; i++ {
		elapsed := float64(i) * 0.01
		if _, ok := s.NextFragment(3.0, elapsed); ok {
			emits = append(emits, elapsed)
		}
	}
	if len(emits) < 2 {
		t.Fatalf("only %d fragments emitted", len(emits))
	}
	for i := 1; i < len(emits); i++ {
		if emits[i]-emits[i-1] < fragmentInterval-1e-9 {
			t.Fatalf("fragments %f and %f closer than %.1fs", emits[i-1], emits[i], fragmentInterval)
		}
	}
}

func TestSimulatedSourceReset(t *testing.T) {
	s := NewSimulatedSource()
	first := runSource(s, 10.0, 100)
	s.Reset()
	second := runSource(s, 10.0, 100)
	if first != second {
		t.Errorf("replay after reset differs: %q vs %q", second, first)
	}
}
