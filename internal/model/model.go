package model

import "time"

// RecordTypeA is the only record type lookups produce. The schema and the
// store stay generic over the type tag so other types can be added without a
// migration.
const RecordTypeA = "A"

type Record struct {
	ID        int64
	Hostname  string
	IPAddress string
	Type      string
	TTL       int64 // seconds the record stays fresh, counted from CreatedAt
	CreatedAt time.Time
	ExpiresAt time.Time // CreatedAt + TTL, computed at write time
}

// Fresh reports whether the record is still usable at the given instant.
// A record expiring exactly at now is already stale.
func (r Record) Fresh(now time.Time) bool {
	return r.ExpiresAt.After(now)
}
