package progress

import (
	"encoding/json"
	"fmt"
)

// Decode parses a stored user document. Unknown fields are ignored and
// anything missing is filled from Initial, including individual keys of
// skillLevels, skillPoints and stats.
func Decode(data []byte) (State, error) {
	s := Initial()
	if len(data) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return Initial(), fmt.Errorf("decode user state: %w", err)
	}
	return Normalize(s), nil
}

// Encode serializes s in the stored document format.
func Encode(s State) ([]byte, error) {
	b, err := json.Marshal(Normalize(s))
	if err != nil {
		return nil, fmt.Errorf("encode user state: %w", err)
	}
	return b, nil
}

// Normalize repairs a state loaded from an older or partial document:
// nil collections become empty, missing skill keys get their defaults,
// values are clamped into range and level is recomputed from xp.
func Normalize(s State) State {
	n := s.Clone()
	for _, k := range AllSkillKeys() {
		v, ok := n.SkillLevels[k]
		if !ok {
			v = MinSkillLevel
		}
		n.SkillLevels[k] = min(max(roundSkill(v), MinSkillLevel), MaxSkillLevel)
		if _, ok := n.SkillPoints[k]; !ok {
			n.SkillPoints[k] = 0
		}
	}
	if n.History == nil {
		n.History = []DailyRecord{}
	}
	if n.UnlockedNodes == nil {
		n.UnlockedNodes = []string{}
	}
	n.XP = max(n.XP, 0)
	n.GemCoins = max(n.GemCoins, 0)
	n.StepsCompleted = max(n.StepsCompleted, 0)
	n.Level = Level(n.XP)
	return n
}

// DecodeQuests parses the stored active quest list. An empty document is
// an empty list.
func DecodeQuests(data []byte) ([]Quest, error) {
	if len(data) == 0 {
		return []Quest{}, nil
	}
	var qs []Quest
	if err := json.Unmarshal(data, &qs); err != nil {
		return nil, fmt.Errorf("decode quests: %w", err)
	}
	if qs == nil {
		qs = []Quest{}
	}
	return qs, nil
}

// EncodeQuests serializes the active quest list.
func EncodeQuests(qs []Quest) ([]byte, error) {
	if qs == nil {
		qs = []Quest{}
	}
	b, err := json.Marshal(qs)
	if err != nil {
		return nil, fmt.Errorf("encode quests: %w", err)
	}
	return b, nil
}
