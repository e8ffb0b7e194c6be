package domain

// WeightGroup holds a default weight plus explicit per-key overrides.
type WeightGroup struct {
	Default   float64
	Overrides map[string]float64
}

// Weight returns the override for key, or the group default.
func (g WeightGroup) Weight(key string) float64 {
	if w, ok := g.Overrides[key]; ok {
		return w
	}
	return g.Default
}

// Weights configures reaction weighting: one group keyed by channel id,
// one keyed by emoji name.
type Weights struct {
	Channel WeightGroup
	Emoji   WeightGroup
}

// DefaultWeights weighs every reaction in every channel at 1.
func DefaultWeights() Weights {
	return Weights{
		Channel: WeightGroup{Default: 1},
		Emoji:   WeightGroup{Default: 1},
	}
}

// ReactionWeight resolves the weight of one reaction. The reactor and
// message-author identities are part of the contract so identity-dependent
// policies can be added without touching call sites; the bundled policy is
// the product of the emoji and channel weights.
func ReactionWeight(w Weights, reactionName, reactorID, messageAuthorID, channelID string) float64 {
	return w.Emoji.Weight(reactionName) * w.Channel.Weight(channelID)
}
