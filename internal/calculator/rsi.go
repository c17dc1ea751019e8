package calculator

import "math"

// RSISeries computes the trailing simple-moving-average RSI over a closing
// price series. The result has the same length as the input; the first
// `period` entries are NaN (insufficient history), as are any windows where
// both average gain and average loss are zero.
//
// When average loss is zero but average gain is positive, RSI is 100. This is
// the plain rolling-mean RSI variant, not Wilder's exponential smoothing.
func RSISeries(closes []float64, period int) []float64 {
	rsi := make([]float64, len(closes))
	for i := range rsi {
		rsi[i] = math.NaN()
	}
	if period <= 0 || len(closes) <= period {
		return rsi
	}

	// Day-over-day gains and losses; index 0 has no prior close.
	gains := make([]float64, len(closes))
	losses := make([]float64, len(closes))
	for i := 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			gains[i] = change
		} else {
			losses[i] = -change
		}
	}

	var gainSum, lossSum float64
	for i := 1; i < len(closes); i++ {
		gainSum += gains[i]
		lossSum += losses[i]
		if i < period {
			continue
		}
		if i > period {
			gainSum -= gains[i-period]
			lossSum -= losses[i-period]
		}
		avgGain := gainSum / float64(period)
		avgLoss := lossSum / float64(period)

		switch {
		case avgLoss == 0 && avgGain == 0:
			// flat window, RSI undefined
		case avgLoss == 0:
			rsi[i] = 100.0
		default:
			rs := avgGain / avgLoss
			rsi[i] = 100.0 - 100.0/(1.0+rs)
		}
	}
	return rsi
}
