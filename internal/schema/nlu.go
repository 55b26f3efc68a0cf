package schema

// ExampleDoc is a parsed NLU training data file.
type ExampleDoc struct {
	NLU []TrainingItem `yaml:"nlu"`
}

// TrainingItem is one entry in an NLU file. Only intent items matter here;
// synonym, regex and lookup items decode with an empty Intent and are
// ignored by the extractor.
type TrainingItem struct {
	Intent   string `yaml:"intent"`
	Examples string `yaml:"examples"`
}

// ParseExampleFile reads and decodes one NLU training data file.
func ParseExampleFile(path string) (*ExampleDoc, error) {
	var doc ExampleDoc
	if err := decodeFile(path, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
