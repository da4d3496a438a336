package redisx

import "time"

const (
	// Login session: session:{token} -> customer id
	KeySession = "session:%s"

	// Dedup event processing in the notifier: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"
)

var (
	TTLSession = 12 * time.Hour
	TTLDedup   = 48 * time.Hour
)
