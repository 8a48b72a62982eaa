// Package audio holds the decoded sample model shared by the detectors
// and the splicer, plus WAV/FLAC file IO and resampling.
package audio

import "math"

// Clip is decoded audio: one float64 slice per channel, samples in
// [-1, 1], all channels the same length.
type Clip struct {
	Rate int
	Data [][]float64
}

func (c Clip) Channels() int { return len(c.Data) }

// Len is the number of samples per channel.
func (c Clip) Len() int {
	if len(c.Data) == 0 {
		return 0
	}
	return len(c.Data[0])
}

func (c Clip) Duration() float64 {
	if c.Rate == 0 {
		return 0
	}
	return float64(c.Len()) / float64(c.Rate)
}

// Mono returns an averaged mixdown of all channels. Mono clips return
// their channel directly, so callers must not mutate the result.
func (c Clip) Mono() []float64 {
	if len(c.Data) == 1 {
		return c.Data[0]
	}
	out := make([]float64, c.Len())
	for _, ch := range c.Data {
		for i, s := range ch {
			out[i] += s
		}
	}
	n := float64(len(c.Data))
	for i := range out {
		out[i] /= n
	}
	return out
}

// Peak returns the largest absolute sample value across all channels.
func (c Clip) Peak() float64 {
	var peak float64
	for _, ch := range c.Data {
		for _, s := range ch {
			if a := math.Abs(s); a > peak {
				peak = a
			}
		}
	}
	return peak
}
