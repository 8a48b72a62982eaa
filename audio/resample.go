package audio

import "math"

// Resample converts c to the target rate using endpoint-aligned linear
// interpolation, one channel at a time. The output length is
// ceil(n * target/source).
func Resample(c Clip, rate int) Clip {
	if rate == c.Rate || c.Rate <= 0 {
		return c
	}
	out := Clip{Rate: rate, Data: make([][]float64, c.Channels())}
	for ch, src := range c.Data {
		out.Data[ch] = resampleChannel(src, c.Rate, rate)
	}
	return out
}

func resampleChannel(src []float64, from, to int) []float64 {
	n := len(src)
	if n == 0 {
		return nil
	}
	m := int(math.Ceil(float64(n) * float64(to) / float64(from)))
	if m < 1 {
		m = 1
	}
	out := make([]float64, m)
	if n == 1 || m == 1 {
		for i := range out {
			out[i] = src[0]
		}
		return out
	}
	step := float64(n-1) / float64(m-1)
	for i := range out {
		pos := float64(i) * step
		j := int(pos)
		if j >= n-1 {
			out[i] = src[n-1]
			continue
		}
		frac := pos - float64(j)
		out[i] = src[j]*(1-frac) + src[j+1]*frac
	}
	return out
}
