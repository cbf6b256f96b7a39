package analysis

// Autocorrelation returns the normalized autocorrelation of data for lags
// 0..maxLag. Lag 0 is always 1 unless the series has no variance.
func Autocorrelation(data []float64, maxLag int) []float64 {
	n := len(data)
	if n == 0 {
		return nil
	}
	if maxLag >= n {
		maxLag = n - 1
	}

	var mean float64
	for _, v := range data {
		mean += v
	}
	mean /= float64(n)

	var variance float64
	for _, v := range data {
		d := v - mean
		variance += d * d
	}

	out := make([]float64, maxLag+1)
	if variance == 0 {
		return out
	}
	for lag := 0; lag <= maxLag; lag++ {
		var sum float64
		for i := 0; i < n-lag; i++ {
			sum += (data[i] - mean) * (data[i+lag] - mean)
		}
		out[lag] = sum / variance
	}
	return out
}

// CorrelationTime is the first lag at which the autocorrelation drops below
// 1/e, in samples. Returns len(acf) when it never decays that far.
func CorrelationTime(acf []float64) int {
	const threshold = 0.36787944117144233
	for lag, v := range acf {
		if lag > 0 && v < threshold {
			return lag
		}
	}
	return len(acf)
}
