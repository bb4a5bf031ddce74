package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"
)

// Codec names accepted in the ?codec= query parameter
const (
	CodecJSON    = "json"
	CodecMsgpack = "msgpack"
)

var (
	ErrUnknownCodec = errors.New("unknown codec")
	ErrEmptyFrame   = errors.New("empty frame")
	ErrMissingEvent = errors.New("frame has no event name")
	ErrUnknownEvent = errors.New("unknown event")
)

// Frame is a decoded envelope whose payload is still encoded
type Frame struct {
	Event   string
	Payload []byte
}

// Codec converts between envelopes and websocket frames.
type Codec interface {
	Name() string
	// MessageType is the websocket frame type the codec writes
	MessageType() int
	Encode(event string, payload any) ([]byte, error)
	Decode(data []byte) (Frame, error)
	Unmarshal(payload []byte, v any) error
}

// DecodePayload unmarshals a frame's payload into a T
func DecodePayload[T any](c Codec, f Frame) (T, error) {
	var out T
	if len(f.Payload) == 0 {
		return out, fmt.Errorf("empty payload for event %q", f.Event)
	}
	if err := c.Unmarshal(f.Payload, &out); err != nil {
		return out, fmt.Errorf("decoding %q payload: %w", f.Event, err)
	}
	return out, nil
}

func codecFor(name string) (Codec, error) {
	switch name {
	case CodecJSON:
		return jsonCodec{}, nil
	case CodecMsgpack:
		return msgpackCodec{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
}

type outEnvelope struct {
	T string `json:"t"`
	P any    `json:"p"`
}

type jsonEnvelope struct {
	T string          `json:"t"`
	P json.RawMessage `json:"p"`
}

type jsonCodec struct{}

func (jsonCodec) Name() string     { return CodecJSON }
func (jsonCodec) MessageType() int { return websocket.TextMessage }

func (jsonCodec) Encode(event string, payload any) ([]byte, error) {
	if event == "" {
		return nil, ErrMissingEvent
	}
	return json.Marshal(outEnvelope{T: event, P: payload})
}

func (jsonCodec) Decode(data []byte) (Frame, error) {
	if len(data) == 0 {
		return Frame{}, ErrEmptyFrame
	}
	var e jsonEnvelope
	if err := json.Unmarshal(data, &e); err != nil {
		return Frame{}, err
	}
	if e.T == "" {
		return Frame{}, ErrMissingEvent
	}
	return Frame{Event: e.T, Payload: e.P}, nil
}

func (jsonCodec) Unmarshal(payload []byte, v any) error {
	return json.Unmarshal(payload, v)
}

// msgpackCodec writes binary frames. Struct fields use their json tags so
// both codecs put the same keys on the wire.
type msgpackCodec struct{}

type msgpackEnvelope struct {
	T string             `json:"t"`
	P msgpack.RawMessage `json:"p"`
}

func (msgpackCodec) Name() string     { return CodecMsgpack }
func (msgpackCodec) MessageType() int { return websocket.BinaryMessage }

func (msgpackCodec) Encode(event string, payload any) ([]byte, error) {
	if event == "" {
		return nil, ErrMissingEvent
	}
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(outEnvelope{T: event, P: payload}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c msgpackCodec) Decode(data []byte) (Frame, error) {
	if len(data) == 0 {
		return Frame{}, ErrEmptyFrame
	}
	var e msgpackEnvelope
	if err := c.Unmarshal(data, &e); err != nil {
		return Frame{}, err
	}
	if e.T == "" {
		return Frame{}, ErrMissingEvent
	}
	return Frame{Event: e.T, Payload: e.P}, nil
}

func (msgpackCodec) Unmarshal(payload []byte, v any) error {
	dec := msgpack.NewDecoder(bytes.NewReader(payload))
	dec.SetCustomStructTag("json")
	return dec.Decode(v)
}
