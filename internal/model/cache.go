package model

import "time"

// CacheRecord is the persisted state carried across restarts.
type CacheRecord struct {
	LastLoadTime time.Time `json:"last_load_time"`
	Fingerprint  string    `json:"fingerprint"`
	CachedWeek   int       `json:"cached_week"`
}

// HasWeek reports whether a week number has been cached.
func (r CacheRecord) HasWeek() bool {
	return r.CachedWeek > 0
}

// LoadRecord is one entry in the load history.
type LoadRecord struct {
	LoadedAt    time.Time `json:"loaded_at"`
	ID          string    `json:"id"`
	Fingerprint string    `json:"fingerprint"`
	Reason      string    `json:"reason"`
	Week        int       `json:"week"`
	Courses     int       `json:"courses"`
}
