package models

import (
	"fmt"
	"math"
	"time"
)

// Bar is a single daily OHLCV record as delivered by a market data provider.
type Bar struct {
	Timestamp time.Time `json:"t"`
	Open      float64   `json:"o"`
	High      float64   `json:"h"`
	Low       float64   `json:"l"`
	Close     float64   `json:"c"`
	Volume    float64   `json:"v"`
}

// MarketSeries is an immutable, index-aligned container of daily bars.
// All accessors return copies or read-only views; detectors downstream rely
// on a series never changing after construction.
type MarketSeries struct {
	symbol     string
	timestamps []time.Time
	open       []float64
	high       []float64
	low        []float64
	close      []float64
	volume     []float64
}

// NewMarketSeries validates and builds a series from provider bars.
// Timestamps must be strictly increasing, prices positive, volume non-negative.
func NewMarketSeries(symbol string, bars []Bar) (*MarketSeries, error) {
	if symbol == "" {
		return nil, fmt.Errorf("series: symbol is required")
	}
	s := &MarketSeries{
		symbol:     symbol,
		timestamps: make([]time.Time, len(bars)),
		open:       make([]float64, len(bars)),
		high:       make([]float64, len(bars)),
		low:        make([]float64, len(bars)),
		close:      make([]float64, len(bars)),
		volume:     make([]float64, len(bars)),
	}
	for i, b := range bars {
		if i > 0 && !b.Timestamp.After(bars[i-1].Timestamp) {
			return nil, fmt.Errorf("series %s: timestamps not strictly increasing at index %d", symbol, i)
		}
		if b.Open <= 0 || b.High <= 0 || b.Low <= 0 || b.Close <= 0 {
			return nil, fmt.Errorf("series %s: non-positive price at index %d", symbol, i)
		}
		if b.Volume < 0 || math.IsNaN(b.Volume) {
			return nil, fmt.Errorf("series %s: invalid volume at index %d", symbol, i)
		}
		s.timestamps[i] = b.Timestamp
		s.open[i] = b.Open
		s.high[i] = b.High
		s.low[i] = b.Low
		s.close[i] = b.Close
		s.volume[i] = b.Volume
	}
	return s, nil
}

// Symbol returns the instrument identifier.
func (s *MarketSeries) Symbol() string { return s.symbol }

// Len returns the number of bars.
func (s *MarketSeries) Len() int { return len(s.close) }

// Timestamp returns the timestamp at index i.
func (s *MarketSeries) Timestamp(i int) time.Time { return s.timestamps[i] }

// Open returns the open price at index i.
func (s *MarketSeries) Open(i int) float64 { return s.open[i] }

// High returns the high price at index i.
func (s *MarketSeries) High(i int) float64 { return s.high[i] }

// Low returns the low price at index i.
func (s *MarketSeries) Low(i int) float64 { return s.low[i] }

// Close returns the close price at index i.
func (s *MarketSeries) Close(i int) float64 { return s.close[i] }

// Volume returns the traded volume at index i.
func (s *MarketSeries) Volume(i int) float64 { return s.volume[i] }

// Closes returns a copy of the close array.
func (s *MarketSeries) Closes() []float64 {
	out := make([]float64, len(s.close))
	copy(out, s.close)
	return out
}

// Volumes returns a copy of the volume array.
func (s *MarketSeries) Volumes() []float64 {
	out := make([]float64, len(s.volume))
	copy(out, s.volume)
	return out
}

// Returns computes simple returns r_i = (C_i - C_{i-1}) / C_{i-1}.
// The slice has length Len()-1, or nil for fewer than two bars.
func (s *MarketSeries) Returns() []float64 {
	if len(s.close) < 2 {
		return nil
	}
	out := make([]float64, 0, len(s.close)-1)
	for i := 1; i < len(s.close); i++ {
		out = append(out, (s.close[i]-s.close[i-1])/s.close[i-1])
	}
	return out
}

// LogReturns computes log returns r_i = ln(C_i / C_{i-1}).
func (s *MarketSeries) LogReturns() []float64 {
	if len(s.close) < 2 {
		return nil
	}
	out := make([]float64, 0, len(s.close)-1)
	for i := 1; i < len(s.close); i++ {
		out = append(out, math.Log(s.close[i]/s.close[i-1]))
	}
	return out
}

// SliceTo returns a new point-in-time series containing bars [0, n).
// Detectors evaluated "as of" bar n-1 must be given this prefix so they can
// never observe future bars. The underlying arrays are shared, which is safe
// because a series is never mutated after construction.
func (s *MarketSeries) SliceTo(n int) *MarketSeries {
	if n < 0 {
		n = 0
	}
	if n > len(s.close) {
		n = len(s.close)
	}
	return &MarketSeries{
		symbol:     s.symbol,
		timestamps: s.timestamps[:n],
		open:       s.open[:n],
		high:       s.high[:n],
		low:        s.low[:n],
		close:      s.close[:n],
		volume:     s.volume[:n],
	}
}

// Bars reassembles the series into provider bars, used when caching a
// fetched series.
func (s *MarketSeries) Bars() []Bar {
	out := make([]Bar, len(s.close))
	for i := range s.close {
		out[i] = Bar{
			Timestamp: s.timestamps[i],
			Open:      s.open[i],
			High:      s.high[i],
			Low:       s.low[i],
			Close:     s.close[i],
			Volume:    s.volume[i],
		}
	}
	return out
}
