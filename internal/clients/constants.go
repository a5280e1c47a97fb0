package clients

import "time"

const (
	// CLIENT_TIMEOUT bounds a single hosted-model HTTP round trip; the
	// per-request ctx deadline is the tighter bound in practice.
	CLIENT_TIMEOUT = 60 * time.Second

	// METRICS_TIMEOUT keeps fire-and-forget metric publishes from ever
	// holding a request slot.
	METRICS_TIMEOUT = 2 * time.Second
)
