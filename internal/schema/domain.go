package schema

import "gopkg.in/yaml.v3"

// DefinitionDoc is a parsed definition (domain) file. A project may split its
// domain across any number of these; each file carries whichever sections it
// declares.
type DefinitionDoc struct {
	Intents   []NamedEntry         `yaml:"intents"`
	Entities  []NamedEntry         `yaml:"entities"`
	Slots     map[string]yaml.Node `yaml:"slots"`
	Responses map[string]yaml.Node `yaml:"responses"`
	Forms     map[string]yaml.Node `yaml:"forms"`
	Actions   []string             `yaml:"actions"`
}

// NamedEntry is a list entry that is either a plain name or a single-key
// mapping whose key is the name and whose value holds per-item properties:
//
//	intents:
//	  - greet
//	  - goodbye:
//	      use_entities: []
//
// Entries with zero or multiple keys carry no usable name and decode to an
// empty Name.
type NamedEntry struct {
	Name string
}

func (n *NamedEntry) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		n.Name = value.Value
	case yaml.MappingNode:
		if len(value.Content) == 2 {
			n.Name = value.Content[0].Value
		}
	}
	return nil
}

// ParseDefinitionFile reads and decodes one definition file.
func ParseDefinitionFile(path string) (*DefinitionDoc, error) {
	var doc DefinitionDoc
	if err := decodeFile(path, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
