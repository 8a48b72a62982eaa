package detect

import "math"

const (
	vadFrameDuration = 0.03

	speechConfirm  = 2 // consecutive speech frames to enter speechActive
	silenceConfirm = 3 // consecutive non-speech frames before acting on silence
)

// SilenceDetector tracks how long the stream has been silent after
// speech. Raw per-frame VAD output flickers, so it applies asymmetric
// hysteresis: two consecutive speech frames enter the active state,
// three consecutive non-speech frames are needed before the silence
// timer starts or advances. Time is passed in explicitly as seconds
// from stream start.
type SilenceDetector struct {
	rate       int
	classifier Classifier

	consecutiveSpeech  int
	consecutiveSilence int
	speechActive       bool
	silenceStarted     bool
	silenceStart       float64
	silenceDuration    float64
	lastSpeechTime     float64
}

func NewSilenceDetector(rate int, classifier Classifier) *SilenceDetector {
	return &SilenceDetector{rate: rate, classifier: classifier}
}

// ProcessChunk classifies the chunk's leading 30ms frame and returns
// the current continuous silence duration in seconds.
func (d *SilenceDetector) ProcessChunk(samples []float64, now float64) float64 {
	if len(samples) == 0 {
		return d.silenceDuration
	}

	frameSize := int(float64(d.rate) * vadFrameDuration)
	speech := false
	if frameSize > 0 && len(samples) >= frameSize {
		frame := normalizePeak(samples[:frameSize], peak(samples))
		var err error
		speech, err = d.classifier.IsSpeech(frame, d.rate)
		if err != nil {
			speech = false
		}
	}

	if speech {
		d.consecutiveSpeech++
		d.consecutiveSilence = 0
		if d.consecutiveSpeech >= speechConfirm {
			d.speechActive = true
			d.lastSpeechTime = now
			d.silenceStarted = false
			d.silenceDuration = 0
		}
	} else {
		d.consecutiveSilence++
		d.consecutiveSpeech = 0
		if d.consecutiveSilence >= silenceConfirm {
			if d.speechActive {
				d.silenceStart = now
				d.silenceStarted = true
				d.speechActive = false
			} else if d.silenceStarted {
				d.silenceDuration = now - d.silenceStart
			}
		}
	}
	return d.silenceDuration
}

func (d *SilenceDetector) SilenceDuration() float64 { return d.silenceDuration }

// LastSpeechTime is the stream time speech was last confirmed, 0 if
// speech was never confirmed.
func (d *SilenceDetector) LastSpeechTime() float64 { return d.lastSpeechTime }

func (d *SilenceDetector) SpeechActive() bool { return d.speechActive }

func (d *SilenceDetector) Reset() {
	d.consecutiveSpeech = 0
	d.consecutiveSilence = 0
	d.speechActive = false
	d.silenceStarted = false
	d.silenceStart = 0
	d.silenceDuration = 0
	d.lastSpeechTime = 0
}

func peak(samples []float64) float64 {
	var p float64
	for _, s := range samples {
		if a := math.Abs(s); a > p {
			p = a
		}
	}
	return p
}

// normalizePeak scales the frame so the chunk peak sits at unit
// amplitude. Silent chunks (zero peak) pass through unscaled.
func normalizePeak(frame []float64, chunkPeak float64) []float64 {
	out := make([]float64, len(frame))
	if chunkPeak == 0 {
		copy(out, frame)
		return out
	}
	for i, s := range frame {
		out[i] = s / chunkPeak
	}
	return out
}
