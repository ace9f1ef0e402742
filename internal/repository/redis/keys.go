package redis

import "fmt"

const ns = "tixledger:v1"

// Derived views of a concert held in the cache.
const (
	ViewSummary      = "summary"
	ViewAvailability = "availability"
	ViewStatement    = "statement"
)

// KeyConcertGeneration counts invalidations of a concert's cached views.
func KeyConcertGeneration(concertID uint64) string {
	return fmt.Sprintf("%s:concert:%d:gen", ns, concertID)
}

// KeyConcertView names one view of a concert as of generation gen.
func KeyConcertView(concertID uint64, view string, gen int64) string {
	return fmt.Sprintf("%s:concert:%d:%s:g%d", ns, concertID, view, gen)
}

func KeyRateLimit(scope, id string) string {
	return fmt.Sprintf("%s:rl:%s:%s", ns, scope, id)
}

func ChannelLedgerChanged() string {
	return ns + ":ledger:changed"
}
