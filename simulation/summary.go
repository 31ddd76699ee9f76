package simulation

// Summary condenses a Result into the numbers compared across runs.
type Summary struct {
	Calls         int    `json:"calls"`
	FinalHP       uint32 `json:"final_hp"`
	PeakHighWater uint32 `json:"peak"`
	Collections   int    `json:"collections"`
	Truncated     bool   `json:"truncated"`
}

func Summarize(r *Result) Summary {
	s := Summary{
		Collections: len(r.Collections),
		Truncated:   r.Truncated,
	}
	if n := r.Len(); n > 0 {
		s.Calls = n - 1
		s.FinalHP = r.HP[n-1]
		// HighWater never decreases.
		s.PeakHighWater = r.HighWater[n-1]
	}
	return s
}
