// internal/daily/daily.go
//
// Word-of-the-day selection. The index for a date is a keyed BLAKE2b digest
// of its YYYY-MM-DD key, so every server sharing DAILY_SALT agrees on the
// word without storing anything.

package daily

import (
	"encoding/binary"
	"time"

	"golang.org/x/crypto/blake2b"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WordIndex returns a deterministic index in [0, n) for the date.
func WordIndex(date time.Time, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	var key []byte
	if salt != "" {
		key = []byte(salt)
		if len(key) > blake2b.Size {
			sum := blake2b.Sum256(key)
			key = sum[:]
		}
	}
	h, err := blake2b.New256(key)
	if err != nil {
		// Only reachable with an oversized key, which is hashed down above.
		return 0
	}
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes as uint64 for the modulus
	return int(binary.BigEndian.Uint64(sum[:8]) % uint64(n))
}

// Pick returns the word for the date from list, or "" when list is empty.
func Pick(list []string, date time.Time, salt string) string {
	if len(list) == 0 {
		return ""
	}
	return list[WordIndex(date, salt, len(list))]
}
