package schema

import "gopkg.in/yaml.v3"

// StoryDoc is a parsed stories file.
type StoryDoc struct {
	Stories []Flow `yaml:"stories"`
}

// RuleDoc is a parsed rules file. Rules share the story step grammar and add
// an optional condition block of the same shape.
type RuleDoc struct {
	Rules []Flow `yaml:"rules"`
}

// Flow is one story or rule: a name plus an ordered step sequence.
type Flow struct {
	Story     string `yaml:"story"`
	Rule      string `yaml:"rule"`
	Condition []Step `yaml:"condition"`
	Steps     []Step `yaml:"steps"`
}

// Step is one entry in a flow. Each field is optional; a step usually
// carries exactly one of them.
type Step struct {
	Intent     string  `yaml:"intent"`
	Action     string  `yaml:"action"`
	ActiveLoop LoopRef `yaml:"active_loop"`
	SlotWasSet SlotSet `yaml:"slot_was_set"`
	Or         []Step  `yaml:"or"`
	Checkpoint string  `yaml:"checkpoint"`
}

// LoopRef is the tri-state active_loop field: absent, explicit null
// (deactivation), or a form name.
type LoopRef struct {
	Set  bool
	Name string
}

func (l *LoopRef) UnmarshalYAML(value *yaml.Node) error {
	l.Set = true
	if value.Kind == yaml.ScalarNode && value.Tag != "!!null" {
		l.Name = value.Value
	}
	return nil
}

// SlotSet holds the slot names of a slot_was_set field. The field is either
// a single mapping or a list whose entries are plain names or single-key
// mappings; all three encodings resolve to the same names.
type SlotSet struct {
	Names []string
}

func (s *SlotSet) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(value.Content); i += 2 {
			s.Names = append(s.Names, value.Content[i].Value)
		}
	case yaml.SequenceNode:
		for _, item := range value.Content {
			switch item.Kind {
			case yaml.ScalarNode:
				if item.Tag != "!!null" {
					s.Names = append(s.Names, item.Value)
				}
			case yaml.MappingNode:
				if len(item.Content) == 2 {
					s.Names = append(s.Names, item.Content[0].Value)
				}
			}
		}
	}
	return nil
}

// ParseStoryFile reads and decodes one stories file.
func ParseStoryFile(path string) (*StoryDoc, error) {
	var doc StoryDoc
	if err := decodeFile(path, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ParseRuleFile reads and decodes one rules file.
func ParseRuleFile(path string) (*RuleDoc, error) {
	var doc RuleDoc
	if err := decodeFile(path, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
