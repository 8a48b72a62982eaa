//go:build linux

package main

import (
	"github.com/jfreymuth/pulse"

	"vmdrop/audio"
	"vmdrop/log"
)

// playClip previews a spliced clip through the default PulseAudio sink.
func playClip(c audio.Clip) {
	samples := playbackSamples(c)
	if len(samples) == 0 {
		return
	}
	client, err := pulse.NewClient()
	if err != nil {
		log.Errorf("pulse playback error: %v", err)
		return
	}
	defer client.Close()

	pos := 0
	reader := pulse.Int16Reader(func(buf []int16) (int, error) {
		if pos >= len(samples) {
			return 0, pulse.EndOfData
		}
		n := copy(buf, samples[pos:])
		pos += n
		return n, nil
	})
	stream, err := client.NewPlayback(reader,
		pulse.PlaybackStereo,
		pulse.PlaybackSampleRate(playbackRate),
		pulse.PlaybackLatency(0.1),
	)
	if err != nil {
		log.Errorf("pulse playback error: %v", err)
		return
	}
	stream.Start()
	stream.Drain()
	stream.Stop()
	stream.Close()
}
