package replay

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

var ErrInvalidCode = errors.New("invalid share code")

// maxDecodedSize caps what a share code may expand to.
const maxDecodedSize = 4 << 20

var (
	encOnce sync.Once
	enc     *zstd.Encoder
	dec     *zstd.Decoder
)

func codecs() (*zstd.Encoder, *zstd.Decoder) {
	encOnce.Do(func() {
		var err error
		enc, err = zstd.NewWriter(nil,
			zstd.WithEncoderLevel(zstd.SpeedBestCompression),
			zstd.WithEncoderConcurrency(1),
		)
		if err != nil {
			panic(err)
		}
		dec, err = zstd.NewReader(nil,
			zstd.WithDecoderConcurrency(1),
			zstd.WithDecoderMaxMemory(maxDecodedSize),
		)
		if err != nil {
			panic(err)
		}
	})
	return enc, dec
}

// Encode packs the replay into a URL-safe share code.
func (r *Replay) Encode() (string, error) {
	payload, err := json.Marshal(r)
	if err != nil {
		return "", err
	}
	e, _ := codecs()
	return base64.RawURLEncoding.EncodeToString(e.EncodeAll(payload, nil)), nil
}

func Decode(code string) (*Replay, error) {
	raw, err := base64.RawURLEncoding.DecodeString(code)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCode, err)
	}
	_, d := codecs()
	payload, err := d.DecodeAll(raw, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCode, err)
	}
	var r Replay
	if err := json.Unmarshal(payload, &r); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCode, err)
	}
	for i, a := range r.Actions {
		if _, err := ParseActionKind(string(a.Kind)); err != nil {
			return nil, fmt.Errorf("%w: action %d: %w", ErrInvalidCode, i, err)
		}
	}
	return &r, nil
}
