package codec

import (
	"bytes"
	"errors"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// ErrCorruptPayload indicates the blob is not a valid encoded session record.
var ErrCorruptPayload = errors.New("codec.corrupt_payload")

// Marshal encodes data into a compact MessagePack blob.
func Marshal(data map[string]any) ([]byte, error) {
	return msgpack.Marshal(data)
}

// Unmarshal decodes a MessagePack blob into a string-keyed map. Integers
// decode as int64, lists as []any, nested maps as map[string]any.
func Unmarshal(blob []byte) (map[string]any, error) {
	dec := msgpack.NewDecoder(bytes.NewReader(blob))
	dec.UseLooseInterfaceDecoding(true)

	var data map[string]any
	if err := dec.Decode(&data); err != nil {
		return nil, errors.Join(ErrCorruptPayload, err)
	}

	// A valid document followed by extra bytes is corruption, not data.
	if _, err := dec.PeekCode(); err != io.EOF {
		return nil, ErrCorruptPayload
	}

	return data, nil
}
