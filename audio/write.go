package audio

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WriteWAV writes c as a 16-bit PCM WAV file, creating parent
// directories as needed. If the peak exceeds 1.0 every sample is scaled
// down uniformly so relative dynamics survive the clamp.
func WriteWAV(path string, c Clip) error {
	if c.Channels() == 0 || c.Rate <= 0 {
		return fmt.Errorf("writing %s: empty clip", filepath.Base(path))
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	gain := 1.0
	if peak := c.Peak(); peak > 1.0 {
		gain = 1.0 / peak
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	channels := c.Channels()
	n := c.Len()
	data := make([]int, n*channels)
	for i := 0; i < n; i++ {
		for ch := 0; ch < channels; ch++ {
			s := c.Data[ch][i] * gain
			v := math.Round(s * 32767)
			if v > 32767 {
				v = 32767
			} else if v < -32768 {
				v = -32768
			}
			data[i*channels+ch] = int(v)
		}
	}

	enc := wav.NewEncoder(f, c.Rate, 16, channels, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: c.Rate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		enc.Close()
		f.Close()
		return fmt.Errorf("writing wav %s: %w", filepath.Base(path), err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return fmt.Errorf("finalizing wav %s: %w", filepath.Base(path), err)
	}
	return f.Close()
}
