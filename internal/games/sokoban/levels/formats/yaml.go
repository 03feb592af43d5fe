package formats

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	ID       string            `yaml:"id"`
	Title    string            `yaml:"title"`
	Author   string            `yaml:"author"`
	Board    string            `yaml:"board"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

// ParseYAML parses a YAML level file. The board block uses the text notation.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, &ParseError{Code: CodeBadYAML, Message: fmt.Sprintf("yaml unmarshal: %v", err)}
	}

	lvl, err := ParseText([]byte(yl.Board))
	if err != nil {
		return Level{}, err
	}

	lvl.ID = yl.ID
	for k, v := range yl.Metadata {
		lvl.Metadata[k] = v
	}
	if yl.Title != "" {
		lvl.Title = yl.Title
		lvl.Metadata["Title"] = yl.Title
	}
	if yl.Author != "" {
		lvl.Author = yl.Author
		lvl.Metadata["Author"] = yl.Author
	}
	return lvl, nil
}
