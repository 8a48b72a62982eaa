package audio

import (
	"math"
	"path/filepath"
	"testing"
)

func TestWriteReadWAVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.wav")
	orig := Clip{Rate: 8000, Data: [][]float64{
		{0, 0.25, -0.5, 0.99},
		{0.1, -0.1, 0.2, -0.2},
	}}
	if err := WriteWAV(path, orig); err != nil {
		t.Fatalf("WriteWAV: %v", err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if got.Rate != 8000 || got.Channels() != 2 || got.Len() != 4 {
		t.Fatalf("rate/channels/len = %d/%d/%d, want 8000/2/4", got.Rate, got.Channels(), got.Len())
	}
	for ch := range orig.Data {
		for i := range orig.Data[ch] {
			if math.Abs(got.Data[ch][i]-orig.Data[ch][i]) > 1e-3 {
				t.Errorf("channel %d sample %d = %f, want %f", ch, i, got.Data[ch][i], orig.Data[ch][i])
			}
		}
	}
}

func TestWriteWAVScalesDownHotClip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hot.wav")
	orig := Clip{Rate: 8000, Data: [][]float64{{2.0, 1.0, -0.5}}}
	if err := WriteWAV(path, orig); err != nil {
		t.Fatalf("WriteWAV: %v", err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if p := got.Peak(); p > 1.0 {
		t.Errorf("peak = %f after clamp, want <= 1.0", p)
	}
	// relative dynamics survive the uniform gain
	want := []float64{1.0, 0.5, -0.25}
	for i := range want {
		if math.Abs(got.Data[0][i]-want[i]) > 1e-3 {
			t.Errorf("sample %d = %f, want %f", i, got.Data[0][i], want[i])
		}
	}
}

func TestWriteWAVCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "clip.wav")
	c := Clip{Rate: 8000, Data: [][]float64{{0.1, 0.2}}}
	if err := WriteWAV(path, c); err != nil {
		t.Fatalf("WriteWAV: %v", err)
	}
	if _, err := ReadFile(path); err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
}

func TestWriteWAVEmptyClip(t *testing.T) {
	if err := WriteWAV(filepath.Join(t.TempDir(), "x.wav"), Clip{}); err == nil {
		t.Fatal("expected error for empty clip")
	}
}

func TestReadFileUnsupportedExtension(t *testing.T) {
	if _, err := ReadFile("greeting.mp3"); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestReadFileMissing(t *testing.T) {
	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.wav")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestMono(t *testing.T) {
	stereo := Clip{Rate: 8000, Data: [][]float64{{0.5, -0.5}, {0.1, 0.5}}}
	got := stereo.Mono()
	want := []float64{0.3, 0.0}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("mono sample %d = %f, want %f", i, got[i], want[i])
		}
	}

	mono := Clip{Rate: 8000, Data: [][]float64{{0.1, 0.2}}}
	if &mono.Mono()[0] != &mono.Data[0][0] {
		t.Error("mono clip must return its channel without copying")
	}
}

func TestClipAccessors(t *testing.T) {
	c := Clip{Rate: 8000, Data: [][]float64{make([]float64, 1600)}}
	if c.Duration() != 0.2 {
		t.Errorf("duration = %f, want 0.2", c.Duration())
	}
	if (Clip{}).Len() != 0 || (Clip{}).Duration() != 0 {
		t.Error("empty clip must report zero length and duration")
	}
	hot := Clip{Rate: 8000, Data: [][]float64{{0.2, -0.9}, {0.5, 0.1}}}
	if hot.Peak() != 0.9 {
		t.Errorf("peak = %f, want 0.9", hot.Peak())
	}
}
