// Package help provides help text loading and lookup from YAML files.
package help

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Topic represents a single help topic with aliases and text.
type Topic struct {
	Aliases []string `yaml:"aliases"`
	Text    string   `yaml:"text"`
}

// HelpData represents the structure of the help.yaml file.
type HelpData struct {
	Topics      map[string]Topic `yaml:"topics"`
	GeneralHelp string           `yaml:"general_help"`
}

// Help provides help text lookup.
type Help struct {
	data        *HelpData
	aliasLookup map[string]string // maps alias -> topic name
}

// Load loads help data from a YAML file.
func Load(path string) (*Help, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read help file: %w", err)
	}
	return Parse(data)
}

// Parse builds help from YAML bytes.
func Parse(data []byte) (*Help, error) {
	var helpData HelpData
	if err := yaml.Unmarshal(data, &helpData); err != nil {
		return nil, fmt.Errorf("failed to parse help file: %w", err)
	}

	h := &Help{
		data:        &helpData,
		aliasLookup: make(map[string]string),
	}

	for topicName, topic := range helpData.Topics {
		h.aliasLookup[strings.ToLower(topicName)] = topicName
		for _, alias := range topic.Aliases {
			h.aliasLookup[strings.ToLower(alias)] = topicName
		}
	}

	return h, nil
}

// GetTopic returns help text for a given topic/alias.
// Returns empty string if topic not found.
func (h *Help) GetTopic(topic string) string {
	topicName, ok := h.aliasLookup[strings.ToLower(topic)]
	if !ok {
		return ""
	}
	return strings.TrimSpace(h.data.Topics[topicName].Text)
}

// GetGeneralHelp returns the general help text.
func (h *Help) GetGeneralHelp() string {
	return strings.TrimSpace(h.data.GeneralHelp)
}

// GetHelpText returns help for a topic, or general help if topic is empty.
func (h *Help) GetHelpText(topic string) string {
	if topic == "" {
		return h.GetGeneralHelp()
	}

	text := h.GetTopic(topic)
	if text == "" {
		return fmt.Sprintf("No help available for '%s'.\nType 'help' for a list of commands.", topic)
	}
	return text
}
