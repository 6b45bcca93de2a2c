package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Result is the uniform outcome of an API call that reached the backend.
// Errors holds field-keyed validation messages when the backend sends them.
type Result[T any] struct {
	Success bool
	Data    T
	Message string
	Errors  map[string]string
}

// Empty is the payload of results that carry no data.
type Empty struct{}

// Ack is the result of a mutation: the caller re-fetches to observe new state.
type Ack = Result[Empty]

// flag decodes the backend's "success" field, which is either a boolean
// or a human readable message string. A non-empty string counts as success.
type flag struct {
	ok   bool
	text string
}

func (f *flag) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case nil:
		*f = flag{}
	case bool:
		*f = flag{ok: t}
	case string:
		*f = flag{ok: t != "", text: t}
	case float64:
		*f = flag{ok: t != 0}
	default:
		*f = flag{ok: true}
	}
	return nil
}

// envelope is the common response wrapper used by most endpoints.
type envelope struct {
	Success flag              `json:"success"`
	Data    json.RawMessage   `json:"data"`
	Message string            `json:"message"`
	Error   string            `json:"error"`
	Errors  map[string]string `json:"errors"`
}

// message prefers the explicit message, then a success text, then the error text.
func (e envelope) message() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.Success.text != "":
		return e.Success.text
	}
	return e.Error
}

// mutation is the response of cart and wishlist writes.
type mutation struct {
	Success flag   `json:"success"`
	Error   string `json:"error"`
}

func (m mutation) ack() Ack {
	msg := m.Success.text
	if msg == "" {
		msg = m.Error
	}
	return Ack{Success: m.Success.ok, Message: msg}
}

// decodeList accepts either a bare JSON array or an envelope whose data is an
// array. ok is false when raw has neither shape.
func decodeList[T any](raw json.RawMessage) (items []T, ok bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return []T{}, false
	}
	if raw[0] == '[' {
		if err := json.Unmarshal(raw, &items); err != nil {
			return []T{}, false
		}
		return items, true
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil || !env.Success.ok {
		return []T{}, false
	}
	data := bytes.TrimSpace(env.Data)
	if len(data) == 0 || data[0] != '[' {
		return []T{}, false
	}
	if err := json.Unmarshal(data, &items); err != nil {
		return []T{}, false
	}
	return items, true
}

// decodeOne accepts an envelope whose data is the record, or the bare record.
// present reports whether the record was found in either shape.
func decodeOne[T any](raw json.RawMessage, present func(T) bool) Result[T] {
	var res Result[T]

	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil {
		res.Message = env.message()
		if len(bytes.TrimSpace(env.Data)) > 0 {
			if err := json.Unmarshal(env.Data, &res.Data); err == nil && present(res.Data) {
				res.Success = true
				return res
			}
		}
	}

	var bare T
	if err := json.Unmarshal(raw, &bare); err == nil && present(bare) {
		return Result[T]{Success: true, Data: bare}
	}
	return res
}

func decodeInto(raw json.RawMessage, v any) error {
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("invalid response: %w", err)
	}
	return nil
}
