// Package builtin registers the default codecs. Import for side effects:
//
//	_ "github.com/c360studio/semreg/codec/builtin"
package builtin

import (
	"encoding/json"

	"github.com/c360studio/semreg/codec"
)

func init() {
	codec.MustRegister(jsonCodec{})
}

type jsonCodec struct{}

func (jsonCodec) Name() string {
	return "json"
}

func (jsonCodec) ContentType() string {
	return "application/json"
}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
