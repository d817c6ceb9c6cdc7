package signal

// Window is a read-only slice of bars ordered oldest first. It is recreated
// on every scan; nothing mutates it after fetch.
type Window []Bar

// Last returns the most recent bar. Callers must check Len first.
func (w Window) Last() Bar { return w[len(w)-1] }

// Len reports the number of bars in the window.
func (w Window) Len() int { return len(w) }

// HighestHigh returns the maximum high over w[from:to).
func (w Window) HighestHigh(from, to int) float64 {
	max := w[from].High
	for _, b := range w[from+1 : to] {
		if b.High > max {
			max = b.High
		}
	}
	return max
}

// LowestLow returns the minimum low over w[from:to).
func (w Window) LowestLow(from, to int) float64 {
	min := w[from].Low
	for _, b := range w[from+1 : to] {
		if b.Low < min {
			min = b.Low
		}
	}
	return min
}

// AvgVolume returns the mean volume of the trailing n bars (or all bars when
// fewer than n are present).
func (w Window) AvgVolume(n int) float64 {
	if len(w) == 0 {
		return 0
	}
	start := len(w) - n
	if start < 0 {
		start = 0
	}
	var sum float64
	for _, b := range w[start:] {
		sum += b.Volume
	}
	return sum / float64(len(w)-start)
}
