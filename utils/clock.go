package utils

import "time"

// The service keeps every timestamp and expiry comparison in one fixed
// zone (UTC+8) so values persisted by different nodes stay comparable.
var appZone = time.FixedZone("UTC+8", 8*60*60)

func Now() time.Time {
	return time.Now().In(appZone)
}

func InAppZone(t time.Time) time.Time {
	return t.In(appZone)
}
