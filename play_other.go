//go:build !linux

package main

import (
	"bytes"
	"encoding/binary"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"vmdrop/audio"
	"vmdrop/log"
)

var (
	otoCtx   *oto.Context
	playOnce sync.Once
)

func initPlayback() {
	var ready chan struct{}
	var err error
	otoCtx, ready, err = oto.NewContext(&oto.NewContextOptions{
		SampleRate:   playbackRate,
		ChannelCount: 2,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   50 * time.Millisecond,
	})
	if err != nil {
		log.Errorf("oto init error: %v", err)
		return
	}
	<-ready
}

// playClip previews a spliced clip through the default output device.
func playClip(c audio.Clip) {
	playOnce.Do(initPlayback)
	if otoCtx == nil {
		return
	}
	samples := playbackSamples(c)
	if len(samples) == 0 {
		return
	}
	buf := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(s))
	}
	player := otoCtx.NewPlayer(bytes.NewReader(buf))
	player.Play()
	for player.IsPlaying() {
		time.Sleep(10 * time.Millisecond)
	}
	player.Close()
}
