package technical

// tail returns the last n values, or nil when there are fewer than n
func tail(values []float64, n int) []float64 {
	if n <= 0 || len(values) < n {
		return nil
	}
	return values[len(values)-n:]
}

// ewm computes the adjusted exponentially weighted mean for every point of
// values, with alpha = 2/(span+1). Each output is the weighted average of
// all inputs seen so far, so the series has no warm-up gap.
func ewm(values []float64, span int) []float64 {
	out := make([]float64, len(values))
	if span < 1 {
		span = 1
	}
	decay := 1 - 2.0/float64(span+1)

	var num, den float64
	for i, v := range values {
		num = v + decay*num
		den = 1 + decay*den
		out[i] = num / den
	}
	return out
}

func last(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return values[len(values)-1]
}
