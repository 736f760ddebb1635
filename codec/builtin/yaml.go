package builtin

import (
	"gopkg.in/yaml.v3"

	"github.com/c360studio/semreg/codec"
)

func init() {
	codec.MustRegister(yamlCodec{})
}

type yamlCodec struct{}

func (yamlCodec) Name() string {
	return "yaml"
}

func (yamlCodec) ContentType() string {
	return "application/yaml"
}

func (yamlCodec) Marshal(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

func (yamlCodec) Unmarshal(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}
