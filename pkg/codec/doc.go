// Package codec encodes session payloads as MessagePack.
//
// Sessions are string-keyed maps of JSON-like values (strings, integers,
// floats, booleans, lists, nested maps). MessagePack keeps the encoded blob
// compact and binary-safe without any external schema. Decoding is loose:
// integers come back as int64, lists as []any and nested maps as
// map[string]any, so a round trip is predictable regardless of which concrete
// numeric types went in.
//
// Any decode failure, including trailing garbage after a valid document, is
// reported through ErrCorruptPayload.
package codec
