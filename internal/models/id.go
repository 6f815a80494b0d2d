package models

import (
	"fmt"
	"sync/atomic"
	"time"
)

var lastID atomic.Int64

// NextID returns "{prefix}-{n}" where n is a microsecond timestamp bumped
// past the previously issued value. IDs are unique and strictly increasing
// within the process, even when the clock stalls or steps backwards.
func NextID(prefix string) string {
	for {
		now := time.Now().UnixMicro()
		prev := lastID.Load()
		if now <= prev {
			now = prev + 1
		}
		if lastID.CompareAndSwap(prev, now) {
			return fmt.Sprintf("%s-%d", prefix, now)
		}
	}
}
