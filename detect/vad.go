package detect

import (
	"encoding/binary"
	"math"

	webrtcvad "github.com/maxhawkins/go-webrtcvad"
)

// Classifier decides whether a single audio frame contains speech.
// Frames arrive peak-normalized from the silence detector.
type Classifier interface {
	IsSpeech(frame []float64, rate int) (bool, error)
}

const vadMode = 2

// WebRTCClassifier wraps the WebRTC voice activity detector. It needs
// 10/20/30ms frames at 8/16/32/48kHz; anything else comes back as an
// error, which the silence detector treats as non-speech.
type WebRTCClassifier struct {
	vad *webrtcvad.VAD
}

func NewWebRTCClassifier() (*WebRTCClassifier, error) {
	v, err := webrtcvad.New()
	if err != nil {
		return nil, err
	}
	if err := v.SetMode(vadMode); err != nil {
		return nil, err
	}
	return &WebRTCClassifier{vad: v}, nil
}

func (c *WebRTCClassifier) IsSpeech(frame []float64, rate int) (bool, error) {
	buf := make([]byte, len(frame)*2)
	for i, s := range frame {
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(int16(s*32767)))
	}
	return c.vad.Process(rate, buf)
}

const defaultRMSThreshold = 0.12

// RMSClassifier is a pure-Go energy classifier used when the WebRTC
// detector is unavailable and as a deterministic stand-in for tests.
type RMSClassifier struct {
	Threshold float64
}

func (c RMSClassifier) IsSpeech(frame []float64, _ int) (bool, error) {
	if len(frame) == 0 {
		return false, nil
	}
	var sum float64
	for _, s := range frame {
		sum += s * s
	}
	return math.Sqrt(sum/float64(len(frame))) >= c.Threshold, nil
}

// NewClassifier returns the WebRTC classifier, falling back to the RMS
// classifier if it cannot be constructed.
func NewClassifier() Classifier {
	if c, err := NewWebRTCClassifier(); err == nil {
		return c
	}
	return RMSClassifier{Threshold: defaultRMSThreshold}
}
