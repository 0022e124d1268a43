// internal/daily/daily.go
//
// Deterministic secret of the day.
// The same (date, salt) always maps to the same answer index, so every
// process serving the same word list agrees on the daily puzzle.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"strconv"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// SecretIndex returns a deterministic index for a date using HMAC(salt, YYYY-MM-DD) % n.
func SecretIndex(date time.Time, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// take first 8 bytes to uint64 for modulus distribution
	v := binary.BigEndian.Uint64(sum[:8])
	return int(v % uint64(n))
}

// Secrets picks boards distinct secrets for date out of answers, which must be
// in a stable order. Board 0 uses salt itself, board i > 0 uses salt#i.
func Secrets(date time.Time, salt string, answers []string, boards int) []string {
	boards = max(0, min(boards, len(answers)))
	out := make([]string, 0, boards)
	used := make(map[int]struct{}, boards)
	for i := 0; len(out) < boards; i++ {
		boardSalt := salt
		if i > 0 {
			boardSalt = salt + "#" + strconv.Itoa(i)
		}
		idx := SecretIndex(date, boardSalt, len(answers))
		for {
			if _, taken := used[idx]; !taken {
				break
			}
			idx = (idx + 1) % len(answers)
		}
		used[idx] = struct{}{}
		out = append(out, answers[idx])
	}
	return out
}
