package apiconnect

import (
	"encoding/json"
	"fmt"
)

// jsonCodec marshals the plain Go messages of package api with encoding/json.
// It replaces Connect's default JSON codec, which only handles protobuf
// messages.
type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (jsonCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("decode %T: %w", msg, err)
	}
	return nil
}
