package main

import "vmdrop/audio"

const playbackRate = 44100

// playbackSamples converts a clip to interleaved stereo int16 at the
// playback rate, which keeps the platform backends on one fixed output
// format regardless of the source file.
func playbackSamples(c audio.Clip) []int16 {
	if c.Len() == 0 {
		return nil
	}
	c = audio.Resample(c, playbackRate)
	left := c.Data[0]
	right := left
	if c.Channels() > 1 {
		right = c.Data[1]
	}
	out := make([]int16, len(left)*2)
	for i := range left {
		out[i*2] = toInt16(left[i])
		out[i*2+1] = toInt16(right[i])
	}
	return out
}

func toInt16(s float64) int16 {
	if s > 1 {
		s = 1
	} else if s < -1 {
		s = -1
	}
	return int16(s * 32767)
}
