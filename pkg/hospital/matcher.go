package hospital

import (
	"strings"
)

const (
	// MaxRecommendations caps the hospitals attached to one reply
	MaxRecommendations = 3

	// AssistantReply is the text of every recommendation reply
	AssistantReply = "根据您的描述，我建议您去以下几家专业医院就医："
)

// Rule maps symptom keywords to hospital tags
type Rule struct {
	Triggers []string `json:"triggers"`
	Tags     []string `json:"tags"`
}

// RuleTable is an ordered list of rules; the first rule with a trigger
// found in the input wins, otherwise Fallback applies
type RuleTable struct {
	Rules    []Rule   `json:"rules"`
	Fallback []string `json:"fallback"`
}

// DefaultRules returns the built-in symptom rules
func DefaultRules() *RuleTable {
	return &RuleTable{
		Rules: []Rule{
			{Triggers: []string{"胃"}, Tags: []string{"消化科", "胃病"}},
			{Triggers: []string{"心"}, Tags: []string{"心内科", "心血管"}},
			{Triggers: []string{"骨"}, Tags: []string{"骨科", "关节"}},
		},
		Fallback: []string{"综合医院"},
	}
}

// Match returns the tags selected by input
func (t *RuleTable) Match(input string) []string {
	for _, rule := range t.Rules {
		for _, trigger := range rule.Triggers {
			if trigger != "" && strings.Contains(input, trigger) {
				return rule.Tags
			}
		}
	}
	return t.Fallback
}

// Recommend picks up to limit hospitals, in order, whose tags contain any of tags
func Recommend(hospitals []*Hospital, tags []string, limit int) []*Hospital {
	out := make([]*Hospital, 0, limit)
	for _, h := range hospitals {
		if len(out) >= limit {
			break
		}
		for _, tag := range tags {
			if h.HasTag(tag) {
				out = append(out, h.Clone())
				break
			}
		}
	}
	return out
}
