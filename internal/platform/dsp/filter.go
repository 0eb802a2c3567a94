package dsp

// Filter runs x through the filter causally, starting from a zero state.
// It uses the transposed direct form II recursion; the output has the same length as x.
func (c *Coefficients) Filter(x []float64) []float64 {
	y := make([]float64, len(x))
	n := len(c.A)
	if n == 0 {
		return y
	}

	state := make([]float64, n)
	for i, xi := range x {
		yi := c.B[0]*xi + state[0]
		for k := 1; k < n; k++ {
			state[k-1] = c.B[k]*xi + state[k] - c.A[k]*yi
		}
		y[i] = yi
	}
	return y
}
