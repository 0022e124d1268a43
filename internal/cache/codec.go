package cache

import (
	"encoding/json"
	"fmt"

	"github.com/klauspost/compress/zstd"

	"github.com/robalobadob/wordle-solver/internal/feedback"
	"github.com/robalobadob/wordle-solver/internal/space"
)

// record is the on-disk form: guess -> feedback code -> bucket.
type record struct {
	Length int                            `json:"length"`
	Space  map[string]map[uint32][]string `json:"space"`
}

var (
	encoder, _ = zstd.NewWriter(nil)
	decoder, _ = zstd.NewReader(nil)
)

// Encode serializes s as zstd-compressed JSON.
func Encode(s space.Space) ([]byte, error) {
	r := record{Space: make(map[string]map[uint32][]string, len(s))}
	for word, grouping := range s {
		codes := make(map[uint32][]string, len(grouping))
		for fb, bucket := range grouping {
			if r.Length == 0 {
				r.Length = fb.Len()
			}
			codes[fb.Code()] = bucket
		}
		r.Space[word] = codes
	}
	raw, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encode space: %w", err)
	}
	return encoder.EncodeAll(raw, nil), nil
}

// Decode reverses Encode.
func Decode(data []byte) (space.Space, error) {
	raw, err := decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("decompress space: %w", err)
	}
	var r record
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, fmt.Errorf("decode space: %w", err)
	}
	out := make(space.Space, len(r.Space))
	for word, codes := range r.Space {
		grouping := make(space.Grouping, len(codes))
		for code, bucket := range codes {
			fb, err := feedback.Decode(code, r.Length)
			if err != nil {
				return nil, fmt.Errorf("decode space %q: %w", word, err)
			}
			grouping[fb] = bucket
		}
		out[word] = grouping
	}
	return out, nil
}
