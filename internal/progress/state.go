// Package progress holds the persisted learner document and the pure
// reducers that move it forward in response to events.
package progress

import (
	"maps"
	"math"
	"slices"
)

const (
	// XPPerLevel is the XP span of one level.
	XPPerLevel = 1000

	// MaxSkillLevel caps every entry of SkillLevels.
	MaxSkillLevel = 10.0

	// MinSkillLevel is the starting value of every skill.
	MinSkillLevel = 1.0

	// SkillStep is the amount a skill grows per rewarded event.
	SkillStep = 0.1

	// TotalSteps is the size of the external curriculum. Not enforced.
	TotalSteps = 1445
)

// State is the single persisted user document. Field names match the
// stored JSON so documents written by older versions keep loading.
type State struct {
	XP             int                  `json:"xp"`
	Level          int                  `json:"level"`
	GemCoins       int                  `json:"gemCoins"`
	StepsCompleted int                  `json:"stepsCompleted"`
	SkillLevels    map[SkillKey]float64 `json:"skillLevels"`
	LastQuestDate  *string              `json:"lastQuestDate"`
	History        []DailyRecord        `json:"history"`

	BuildPoints   int              `json:"buildPoints"`
	SkillPoints   map[SkillKey]int `json:"skillPoints"`
	UnlockedNodes []string         `json:"unlockedNodes"`

	Stats Stats `json:"stats"`
}

// DailyRecord accumulates one calendar day of activity.
type DailyRecord struct {
	Date            string `json:"date"` // YYYY-MM-DD, local time
	XP              int    `json:"xp"`
	QuestsCompleted int    `json:"questsCompleted"`
	StepsAdded      int    `json:"stepsAdded"`
}

// Stats are the monotonically increasing per-category counters that
// drive building tiers.
type Stats struct {
	WordsMastered       int `json:"wordsMastered"`
	PromptsTested       int `json:"promptsTested"`
	CodeQuestsCompleted int `json:"codeQuestsCompleted"`
	KmDriven            int `json:"kmDriven"`
	BooksRead           int `json:"booksRead"`
	WatchesFixed        int `json:"watchesFixed"`
}

// Get returns the counter named by k, or 0 for an unknown key.
func (s Stats) Get(k StatKey) int {
	if p := s.field(k); p != nil {
		return *p
	}
	return 0
}

// Add increments the counter named by k. Unknown keys and negative
// deltas are ignored.
func (s *Stats) Add(k StatKey, n int) {
	if n <= 0 {
		return
	}
	if p := s.field(k); p != nil {
		*p += n
	}
}

func (s *Stats) field(k StatKey) *int {
	switch k {
	case StatWordsMastered:
		return &s.WordsMastered
	case StatPromptsTested:
		return &s.PromptsTested
	case StatCodeQuestsCompleted:
		return &s.CodeQuestsCompleted
	case StatKmDriven:
		return &s.KmDriven
	case StatBooksRead:
		return &s.BooksRead
	case StatWatchesFixed:
		return &s.WatchesFixed
	}
	return nil
}

// Initial returns the state of a brand new user.
func Initial() State {
	levels := make(map[SkillKey]float64, len(AllSkillKeys()))
	points := make(map[SkillKey]int, len(AllSkillKeys()))
	for _, k := range AllSkillKeys() {
		levels[k] = MinSkillLevel
		points[k] = 0
	}
	return State{
		XP:            0,
		Level:         1,
		SkillLevels:   levels,
		History:       []DailyRecord{},
		BuildPoints:   1,
		SkillPoints:   points,
		UnlockedNodes: []string{},
	}
}

// Level returns the level reached with xp experience.
func Level(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return xp/XPPerLevel + 1
}

// LevelProgress returns how far xp is into its current level, in [0, 1).
func LevelProgress(xp int) float64 {
	if xp < 0 {
		return 0
	}
	return float64(xp%XPPerLevel) / XPPerLevel
}

// IsUnlocked reports whether node id has been purchased.
func (s State) IsUnlocked(id string) bool {
	return slices.Contains(s.UnlockedNodes, id)
}

// Skill returns the level of skill k, defaulting to MinSkillLevel.
func (s State) Skill(k SkillKey) float64 {
	if v, ok := s.SkillLevels[k]; ok {
		return v
	}
	return MinSkillLevel
}

// Clone returns a deep copy; reducers work on clones so callers can keep
// the previous value.
func (s State) Clone() State {
	c := s
	c.SkillLevels = maps.Clone(s.SkillLevels)
	c.SkillPoints = maps.Clone(s.SkillPoints)
	c.History = slices.Clone(s.History)
	c.UnlockedNodes = slices.Clone(s.UnlockedNodes)
	if s.LastQuestDate != nil {
		d := *s.LastQuestDate
		c.LastQuestDate = &d
	}
	if c.SkillLevels == nil {
		c.SkillLevels = map[SkillKey]float64{}
	}
	if c.SkillPoints == nil {
		c.SkillPoints = map[SkillKey]int{}
	}
	return c
}

// roundSkill keeps skill values on the 0.1 grid so repeated increments do
// not drift (1.9 + 0.1 must floor to 2).
func roundSkill(v float64) float64 {
	return math.Round(v*10) / 10
}
