// Package daily derives reproducible per-day choices from a secret salt.
package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Index returns a deterministic index in [0, total) for date using
// HMAC(salt, YYYY-MM-DD) % total.
func Index(date time.Time, salt string, total int) int {
	if total <= 0 {
		return 0
	}
	return int(newStream(salt, DateKey(date)).next() % uint64(total))
}

// Pick returns min(n, total) distinct indices in [0, total) for date.
// It runs a partial Fisher-Yates shuffle driven by an HMAC counter stream,
// so the result depends only on salt, the calendar day and total.
func Pick(n, total int, salt string, date time.Time) []int {
	if n <= 0 || total <= 0 {
		return []int{}
	}
	if n > total {
		n = total
	}
	perm := make([]int, total)
	for i := range perm {
		perm[i] = i
	}
	s := newStream(salt, DateKey(date))
	for i := 0; i < n; i++ {
		j := i + int(s.next()%uint64(total-i))
		perm[i], perm[j] = perm[j], perm[i]
	}
	return perm[:n]
}

// stream yields 64-bit values from HMAC-SHA256(salt, key || counter).
type stream struct {
	salt []byte
	key  string
	ctr  uint32
}

func newStream(salt, key string) *stream {
	return &stream{salt: []byte(salt), key: key}
}

func (s *stream) next() uint64 {
	h := hmac.New(sha256.New, s.salt)
	h.Write([]byte(s.key))
	if s.ctr > 0 {
		var c [4]byte
		binary.BigEndian.PutUint32(c[:], s.ctr)
		h.Write(c[:])
	}
	s.ctr++
	sum := h.Sum(nil)
	// first 8 bytes as uint64 for the modulus
	return binary.BigEndian.Uint64(sum[:8])
}
