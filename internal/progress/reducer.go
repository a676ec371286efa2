package progress

import "math"

const (
	// StepXP is the XP granted per manually validated curriculum step.
	StepXP = 10
	// StepCoins is the coin reward per validated step.
	StepCoins = 1

	// QuestCoinRate is the share of quest XP paid out as coins.
	QuestCoinRate = 0.2

	// QuizXPPerAnswer and QuizCoinsPerAnswer reward each correct quiz answer.
	QuizXPPerAnswer    = 30
	QuizCoinsPerAnswer = 5

	// ChallengeXPPerPoint rewards each point of a prompt-challenge score.
	ChallengeXPPerPoint = 2

	// SkillGainChance is the probability that a completed quest grows its skill.
	SkillGainChance = 0.5
)

// CostType selects the currency a skill node is paid with.
type CostType string

const (
	CostBP CostType = "BP"
	CostSP CostType = "SP"
)

// Delta is one event's contribution to today's history record.
type Delta struct {
	XP              int
	StepsAdded      int
	QuestsCompleted int
}

// Purchase describes a skill-node purchase already approved by the gate.
type Purchase struct {
	NodeID   string
	Cost     int
	CostType CostType
	// SkillKey selects the skill-point balance charged for CostSP.
	SkillKey SkillKey
}

// ApplyQuestCompletion rewards a completed quest. A quest already marked
// completed leaves the state unchanged.
func ApplyQuestCompletion(s State, q Quest, env Env) State {
	if q.IsCompleted {
		return s
	}
	next := s.Clone()
	xp := max(q.XPAttribuee, 0)

	next.addXP(xp)
	next.GemCoins += int(math.Floor(float64(xp) * QuestCoinRate))

	if key, ok := SkillKeyFor(q.Domaine); ok && env.rand() > SkillGainChance {
		next.growSkill(key)
	}
	if stat, ok := StatFor(q.Domaine); ok {
		next.Stats.Add(stat, 1)
	}

	today := env.Today()
	next.LastQuestDate = &today
	return UpsertTodayDelta(next, Delta{XP: xp, QuestsCompleted: 1}, today)
}

// ApplyManualStepIncrement records one validated curriculum step.
func ApplyManualStepIncrement(s State, env Env) State {
	next := s.Clone()
	next.StepsCompleted++
	next.addXP(StepXP)
	next.GemCoins += StepCoins
	return UpsertTodayDelta(next, Delta{XP: StepXP, StepsAdded: 1}, env.Today())
}

// ApplyQuizResult rewards a finished English quiz. Zero correct answers
// earn nothing and leave no history trace.
func ApplyQuizResult(s State, correct int, env Env) State {
	if correct <= 0 {
		return s
	}
	next := s.Clone()
	xp := correct * QuizXPPerAnswer
	next.addXP(xp)
	next.GemCoins += correct * QuizCoinsPerAnswer
	next.growSkill(SkillAnglais)
	next.Stats.Add(StatWordsMastered, correct)
	return UpsertTodayDelta(next, Delta{XP: xp, QuestsCompleted: 1}, env.Today())
}

// ApplyChallengeScore rewards a scored prompt-engineering challenge.
// Scores outside [0, 100] are clamped.
func ApplyChallengeScore(s State, score int, env Env) State {
	score = min(max(score, 0), 100)
	next := s.Clone()
	xp := score * ChallengeXPPerPoint
	next.addXP(xp)
	next.GemCoins += score / 2
	next.growSkill(SkillAIEngineering)
	next.Stats.Add(StatPromptsTested, 1)
	return UpsertTodayDelta(next, Delta{XP: xp, QuestsCompleted: 1}, env.Today())
}

// PurchaseSkillNode charges the purchase and records the node as
// unlocked. Sufficiency is the gate's job; nothing is checked here.
func PurchaseSkillNode(s State, p Purchase) State {
	next := s.Clone()
	switch p.CostType {
	case CostBP:
		next.BuildPoints -= p.Cost
	case CostSP:
		next.SkillPoints[p.SkillKey] -= p.Cost
	}
	next.UnlockedNodes = append(next.UnlockedNodes, p.NodeID)
	return next
}

// UpsertTodayDelta adds d to the record for today, creating it when the
// day has no record yet. It is the only function that mutates History.
func UpsertTodayDelta(s State, d Delta, today string) State {
	next := s.Clone()
	for i := range next.History {
		if next.History[i].Date == today {
			next.History[i].XP += d.XP
			next.History[i].StepsAdded += d.StepsAdded
			next.History[i].QuestsCompleted += d.QuestsCompleted
			return next
		}
	}
	next.History = append(next.History, DailyRecord{
		Date:            today,
		XP:              d.XP,
		StepsAdded:      d.StepsAdded,
		QuestsCompleted: d.QuestsCompleted,
	})
	return next
}

// addXP grants xp, recomputes the level and pays one build point when the
// level went up.
func (s *State) addXP(xp int) {
	before := s.Level
	s.XP += xp
	s.Level = Level(s.XP)
	if s.Level > before {
		s.BuildPoints++
	}
}

// growSkill adds one SkillStep to k, clamped at MaxSkillLevel, and pays a
// skill point when the integer part increased.
func (s *State) growSkill(k SkillKey) {
	old := s.Skill(k)
	grown := math.Min(MaxSkillLevel, roundSkill(old+SkillStep))
	s.SkillLevels[k] = grown
	if math.Floor(grown) > math.Floor(old) {
		s.SkillPoints[k]++
	}
}
