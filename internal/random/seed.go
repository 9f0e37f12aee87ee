package random

import "time"

// DailySeed derives the seed shared by every learner who loads key on the
// calendar day of now (UTC). The hash is the classic 31-multiplier string
// hash folded to 32 bits, made non-negative.
func DailySeed(key string, now time.Time) int64 {
	return StringSeed(key + "-" + now.UTC().Format("2006-01-02"))
}

// StringSeed hashes s into a non-negative 32-bit seed.
func StringSeed(s string) int64 {
	var h int32
	for _, r := range s {
		h = h*31 + int32(r)
	}
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return v
}
