package fields

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/teranos/tokenfield/errors"
)

// catalogFile is the on-disk YAML shape of a fields catalog.
//
//	fields:
//	  - key: status
//	    label: Status
//	    type: enum
//	    operators: [is, "is not"]
//	    enum:
//	      - active            # shorthand: raw value only
//	      - value: inactive   # full record
//	        label: Inactive
//	        icon: moon
type catalogFile struct {
	Fields []Definition `yaml:"fields"`
}

// UnmarshalYAML accepts either a bare scalar (raw value) or a full
// value/label/icon record for an enum option.
func (o *EnumOption) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		o.Value = node.Value
		return nil
	}
	type plain EnumOption
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*o = EnumOption(p)
	return nil
}

// LoadCatalog reads a fields catalog from a YAML file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidCatalog, "read %s: %v", path, err)
	}
	catalog, err := ParseCatalog(data)
	if err != nil {
		return nil, errors.Wrapf(err, "in %s", path)
	}
	return catalog, nil
}

// ParseCatalog decodes a fields catalog from YAML bytes.
func ParseCatalog(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidCatalog, "decode yaml: %v", err)
	}
	for i := range file.Fields {
		def := &file.Fields[i]
		if def.Type == "" {
			if len(def.Enum) > 0 {
				def.Type = TypeEnum
			} else {
				def.Type = TypeString
			}
		}
	}
	return NewCatalog(file.Fields...)
}
