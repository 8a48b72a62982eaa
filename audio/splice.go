package audio

import (
	"fmt"
	"math"
)

// Insert splices clip into original at dropTime seconds. The clip is
// resampled to the original's rate and reconciled to its channel count
// first; the insertion index is clamped into [0, len], so a drop time
// past the end appends. No samples overlap and none are lost.
func Insert(original, clip Clip, dropTime float64) (Clip, error) {
	if original.Channels() == 0 || original.Rate <= 0 {
		return Clip{}, fmt.Errorf("splice: empty original clip")
	}
	if clip.Channels() == 0 {
		return Clip{}, fmt.Errorf("splice: empty insert clip")
	}

	if clip.Rate != original.Rate {
		clip = Resample(clip, original.Rate)
	}
	clip, err := matchChannels(clip, original.Channels())
	if err != nil {
		return Clip{}, err
	}

	idx := 0
	if dropTime > 0 {
		idx = int(math.Round(dropTime * float64(original.Rate)))
	}
	if idx > original.Len() {
		idx = original.Len()
	}

	out := Clip{Rate: original.Rate, Data: make([][]float64, original.Channels())}
	for ch := range out.Data {
		merged := make([]float64, 0, original.Len()+clip.Len())
		merged = append(merged, original.Data[ch][:idx]...)
		merged = append(merged, clip.Data[ch]...)
		merged = append(merged, original.Data[ch][idx:]...)
		out.Data[ch] = merged
	}
	return out, nil
}

// matchChannels reconciles c to target channels: equal counts pass
// through, multi-channel downmixes to mono by averaging, and mono
// duplicates up. Anything else (for example 5.1 against stereo) is an
// error surfaced to the caller as a per-file failure.
func matchChannels(c Clip, target int) (Clip, error) {
	switch {
	case c.Channels() == target:
		return c, nil
	case target == 1:
		return Clip{Rate: c.Rate, Data: [][]float64{c.Mono()}}, nil
	case c.Channels() == 1:
		out := Clip{Rate: c.Rate, Data: make([][]float64, target)}
		out.Data[0] = c.Data[0]
		for ch := 1; ch < target; ch++ {
			dup := make([]float64, len(c.Data[0]))
			copy(dup, c.Data[0])
			out.Data[ch] = dup
		}
		return out, nil
	default:
		return Clip{}, fmt.Errorf("splice: cannot reconcile %d-channel clip with %d-channel original", c.Channels(), target)
	}
}
