package models

// ModelMetrics is a per (date, model) snapshot of trailing performance.
// Rolling hit rates are nil when the window holds no picks; consumers must
// treat a nil hit rate as automatically disqualifying.
type ModelMetrics struct {
	ModelID       string   `json:"model_id"`
	HitRate7d     *float64 `json:"rolling_hit_rate_7d,omitempty"`
	HitRate14d    *float64 `json:"rolling_hit_rate_14d,omitempty"`
	HitRate30d    *float64 `json:"rolling_hit_rate_30d,omitempty"`
	Sample7d      int      `json:"rolling_sample_7d"`
	Sample14d     int      `json:"rolling_sample_14d"`
	Sample30d     int      `json:"rolling_sample_30d"`
	DailyPicks    int      `json:"daily_picks"`
	DailyWins     int      `json:"daily_wins"`
	DailyHitRate  float64  `json:"daily_hit_rate"`
}

// HasWindow reports whether the 7-day window qualifies against a minimum
// sample size. A nil hit rate never qualifies regardless of sample.
func (m *ModelMetrics) HasWindow(minSample int) bool {
	return m != nil && m.HitRate7d != nil && m.Sample7d >= minSample
}
