package audio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
	"github.com/mewkiz/flac"
)

// ReadFile decodes a WAV or FLAC file into a Clip, picking the decoder
// by extension.
func ReadFile(path string) (Clip, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav", ".wave":
		return readWAV(path)
	case ".flac":
		return readFLAC(path)
	default:
		return Clip{}, fmt.Errorf("unsupported audio format: %s", filepath.Base(path))
	}
}

func readWAV(path string) (Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return Clip{}, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return Clip{}, fmt.Errorf("invalid wav file: %s", filepath.Base(path))
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return Clip{}, fmt.Errorf("decoding wav %s: %w", filepath.Base(path), err)
	}
	if buf == nil || buf.Format == nil || buf.Format.NumChannels == 0 {
		return Clip{}, fmt.Errorf("empty wav file: %s", filepath.Base(path))
	}

	channels := buf.Format.NumChannels
	bits := int(dec.BitDepth)
	if bits == 0 {
		bits = 16
	}
	scale := float64(int64(1) << (bits - 1))

	n := len(buf.Data) / channels
	data := make([][]float64, channels)
	for ch := range data {
		data[ch] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for ch := 0; ch < channels; ch++ {
			data[ch][i] = float64(buf.Data[i*channels+ch]) / scale
		}
	}
	return Clip{Rate: buf.Format.SampleRate, Data: data}, nil
}

func readFLAC(path string) (Clip, error) {
	stream, err := flac.ParseFile(path)
	if err != nil {
		return Clip{}, fmt.Errorf("decoding flac %s: %w", filepath.Base(path), err)
	}
	defer stream.Close()

	info := stream.Info
	channels := int(info.NChannels)
	if channels == 0 {
		return Clip{}, fmt.Errorf("empty flac file: %s", filepath.Base(path))
	}
	scale := float64(int64(1) << (info.BitsPerSample - 1))

	data := make([][]float64, channels)
	for {
		fr, err := stream.ParseNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Clip{}, fmt.Errorf("decoding flac %s: %w", filepath.Base(path), err)
		}
		for ch, sub := range fr.Subframes {
			if ch >= channels {
				break
			}
			for _, s := range sub.Samples {
				data[ch] = append(data[ch], float64(s)/scale)
			}
		}
	}
	return Clip{Rate: int(info.SampleRate), Data: data}, nil
}
