package bridge

import (
	"encoding/json"
	"fmt"

	"github.com/san-kum/particlesim/internal/dynamo"
)

var null = []byte("null")

// Encode converts a snapshot into the [{x,y,vx,vy,mass}] transfer form.
// Non-finite values are not representable and yield ErrEncode.
func Encode(s dynamo.Snapshot) ([]byte, error) {
	if s == nil {
		s = dynamo.Snapshot{}
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", dynamo.ErrEncode, err)
	}
	return data, nil
}

// EncodeOrNull is Encode for hosts that expect a value no matter what:
// an unrepresentable snapshot becomes the JSON literal null.
func EncodeOrNull(s dynamo.Snapshot) []byte {
	data, err := Encode(s)
	if err != nil {
		return null
	}
	return data
}

// Decode parses the transfer form back into a snapshot. null decodes to
// an empty snapshot.
func Decode(data []byte) (dynamo.Snapshot, error) {
	var s dynamo.Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if s == nil {
		s = dynamo.Snapshot{}
	}
	return s, nil
}
