package config

import (
	"encoding/json"
	"fmt"
	"os"

	"slackgraph/internal/domain"
)

// weightGroupJSON mirrors the on-disk weight-group shape. A nil pointer
// field means "use the default".
type weightGroupJSON struct {
	DefaultWeight *float64           `json:"defaultWeight"`
	Weights       map[string]float64 `json:"weights"`
}

type weightsJSON struct {
	ChannelWeights *weightGroupJSON `json:"channelWeights"`
	EmojiWeights   *weightGroupJSON `json:"emojiWeights"`
}

type projectJSON struct {
	Name    string      `json:"name"`
	Weights weightsJSON `json:"weights"`
}

// Project is a parsed project configuration.
type Project struct {
	Name    string
	Weights domain.Weights
}

// LoadProject parses a project configuration file. Both weight groups
// default to {defaultWeight: 1, weights: {}} when absent.
func LoadProject(path string) (*Project, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project config: %w", err)
	}

	var pj projectJSON
	if err := json.Unmarshal(raw, &pj); err != nil {
		return nil, fmt.Errorf("failed to parse project config: %w", err)
	}
	if pj.Name == "" {
		return nil, fmt.Errorf("project config %s: name is required", path)
	}

	weights := domain.DefaultWeights()
	applyGroup(pj.Weights.ChannelWeights, &weights.Channel)
	applyGroup(pj.Weights.EmojiWeights, &weights.Emoji)

	return &Project{Name: pj.Name, Weights: weights}, nil
}

func applyGroup(src *weightGroupJSON, dst *domain.WeightGroup) {
	if src == nil {
		return
	}
	if src.DefaultWeight != nil {
		dst.Default = *src.DefaultWeight
	}
	if len(src.Weights) > 0 {
		dst.Overrides = src.Weights
	}
}
