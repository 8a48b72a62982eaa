package detect

import (
	"errors"
	"math"
	"testing"
)

// scriptClassifier replays a fixed verdict sequence, one per frame.
// Frames past the end of the script are silence.
type scriptClassifier struct {
	verdicts []bool
	errAt    map[int]bool
	i        int
}

func (c *scriptClassifier) IsSpeech(frame []float64, rate int) (bool, error) {
	idx := c.i
	c.i++
	if c.errAt[idx] {
		return false, errors.New("classifier failure")
	}
	if idx >= len(c.verdicts) {
		return false, nil
	}
	return c.verdicts[idx], nil
}

func loudChunk(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 0.5
	}
	return out
}

func TestNoSilenceWithoutPriorSpeech(t *testing.T) {
	d := NewSilenceDetector(8000, &scriptClassifier{})
	for i := 0; i < 20; i++ {
		if dur := d.ProcessChunk(loudChunk(800), float64(i+1)*0.1); dur != 0 {
			t.Fatalf("silence duration %f with no prior speech", dur)
		}
	}
}

func TestSingleSpeechFrameDoesNotActivate(t *testing.T) {
	c := &scriptClassifier{verdicts: []bool{true}}
	d := NewSilenceDetector(8000, c)
	for i := 0; i < 5; i++ {
		d.ProcessChunk(loudChunk(800), float64(i+1)*0.1)
	}
	if d.SpeechActive() {
		t.Error("one speech frame must not activate speech")
	}
	if d.LastSpeechTime() != 0 {
		t.Errorf("last speech time = %f, want 0", d.LastSpeechTime())
	}
}

func TestSpeechThenSilenceTimer(t *testing.T) {
	c := &scriptClassifier{verdicts: []bool{true, true}}
	d := NewSilenceDetector(8000, c)

	// two speech frames activate speech
	d.ProcessChunk(loudChunk(800), 0.1)
	d.ProcessChunk(loudChunk(800), 0.2)
	if !d.SpeechActive() {
		t.Fatal("two consecutive speech frames must activate speech")
	}
	if d.LastSpeechTime() != 0.2 {
		t.Errorf("last speech time = %f, want 0.2", d.LastSpeechTime())
	}

	// two silence frames are not yet enough
	for i := 3; i <= 4; i++ {
		if dur := d.ProcessChunk(loudChunk(800), float64(i)*0.1); dur != 0 {
			t.Fatalf("duration %f before three consecutive silence frames", dur)
		}
	}
	if !d.SpeechActive() {
		t.Fatal("speech must stay active through two silence frames")
	}

	// third silence frame starts the timer at its chunk time
	if dur := d.ProcessChunk(loudChunk(800), 0.5); dur != 0 {
		t.Fatalf("duration %f at silence onset, want 0", dur)
	}
	if d.SpeechActive() {
		t.Error("speech must deactivate when the timer starts")
	}

	// from here the duration grows with stream time and never decreases
	prev := 0.0
	for i := 6; i <= 10; i++ {
		now := float64(i) * 0.1
		dur := d.ProcessChunk(loudChunk(800), now)
		if dur < prev {
			t.Fatalf("duration decreased: %f after %f", dur, prev)
		}
		if math.Abs(dur-(now-0.5)) > 1e-9 {
			t.Fatalf("duration = %f at %f, want %f", dur, now, now-0.5)
		}
		prev = dur
	}
}

func TestSpeechResetsTimer(t *testing.T) {
	c := &scriptClassifier{verdicts: []bool{
		true, true, // activate
		false, false, false, false, // timer running
		true, true, // speech resumes
	}}
	d := NewSilenceDetector(8000, c)
	for i := 1; i <= 6; i++ {
		d.ProcessChunk(loudChunk(800), float64(i)*0.1)
	}
	d.ProcessChunk(loudChunk(800), 0.7)
	if dur := d.ProcessChunk(loudChunk(800), 0.8); dur != 0 {
		t.Fatalf("duration = %f after speech resumed, want 0", dur)
	}
	if !d.SpeechActive() {
		t.Error("speech must reactivate after two speech frames")
	}
	if d.LastSpeechTime() != 0.8 {
		t.Errorf("last speech time = %f, want 0.8", d.LastSpeechTime())
	}
}

func TestClassifierErrorCountsAsSilence(t *testing.T) {
	c := &scriptClassifier{
		verdicts: []bool{true, true, true, true, true},
		errAt:    map[int]bool{2: true, 3: true, 4: true},
	}
	d := NewSilenceDetector(8000, c)
	for i := 1; i <= 5; i++ {
		d.ProcessChunk(loudChunk(800), float64(i)*0.1)
	}
	if d.SpeechActive() {
		t.Error("three erroring frames must deactivate speech")
	}
	if dur := d.ProcessChunk(loudChunk(800), 0.6); math.Abs(dur-0.1) > 1e-9 {
		t.Errorf("duration = %f, want 0.1", dur)
	}
}

func TestEmptyChunkKeepsDuration(t *testing.T) {
	c := &scriptClassifier{verdicts: []bool{true, true}}
	d := NewSilenceDetector(8000, c)
	for i := 1; i <= 6; i++ {
		d.ProcessChunk(loudChunk(800), float64(i)*0.1)
	}
	before := d.SilenceDuration()
	if dur := d.ProcessChunk(nil, 0.7); math.Abs(dur-before) > 1e-9 {
		t.Errorf("empty chunk changed duration: %f != %f", dur, before)
	}
}

func TestChunkShorterThanFrameIsSilence(t *testing.T) {
	c := &scriptClassifier{verdicts: []bool{true, true}}
	d := NewSilenceDetector(8000, c)
	d.ProcessChunk(loudChunk(800), 0.1)
	d.ProcessChunk(loudChunk(800), 0.2)
	// 100 samples is under the 30ms frame, so no classifier call happens
	for i := 3; i <= 5; i++ {
		d.ProcessChunk(loudChunk(100), float64(i)*0.1)
	}
	if d.SpeechActive() {
		t.Error("short chunks must count as silence frames")
	}
	if c.i != 2 {
		t.Errorf("classifier called %d times, want 2", c.i)
	}
}

func TestSilenceReset(t *testing.T) {
	c := &scriptClassifier{verdicts: []bool{true, true}}
	d := NewSilenceDetector(8000, c)
	for i := 1; i <= 6; i++ {
		d.ProcessChunk(loudChunk(800), float64(i)*0.1)
	}
	d.Reset()
	if d.SpeechActive() || d.LastSpeechTime() != 0 || d.SilenceDuration() != 0 {
		t.Error("reset must clear all state")
	}
}
