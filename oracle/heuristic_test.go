package oracle

import "testing"

func TestHeuristicJudge(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{
			"full greeting with closer",
			"Hi this is Mike please leave a message after the beep",
			true,
		},
		{
			"opening only",
			"Hello this is Mike",
			false,
		},
		{
			"closer only",
			"please leave a message after the beep",
			true,
		},
		{
			"length clause beats incomplete majority",
			"hi this is Mike you've reached my phone thank you",
			true,
		},
		{
			"no indicators at all",
			"the weather today is nice",
			false,
		},
		{
			"empty",
			"",
			false,
		},
	}
	var h Heuristic
	for _, tt := range tests {
		j, err := h.Judge(tt.text)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.name, err)
		}
		if j.Complete != tt.want {
			t.Errorf("%s: Complete = %v, want %v", tt.name, j.Complete, tt.want)
		}
		if j.Raw != "HEURISTIC" {
			t.Errorf("%s: Raw = %q, want HEURISTIC", tt.name, j.Raw)
		}
	}
}
