package progress

// Difficulty is the generator's difficulty label.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Facile"
	DifficultyMedium Difficulty = "Moyen"
	DifficultyHard   Difficulty = "Difficile"
	DifficultyExpert Difficulty = "Expert"
)

// QuestDraft is a quest as produced by the content generator, before the
// board assigns an id.
type QuestDraft struct {
	Titre                  string     `json:"titre"`
	Domaine                Domain     `json:"domaine"`
	Difficulte             Difficulty `json:"difficulte"`
	XPAttribuee            int        `json:"xp_attribuee"`
	Description            string     `json:"description"`
	ConditionsDeValidation string     `json:"conditions_de_validation"`
}

// Quest is one entry of the active quest list. It transitions once from
// IsCompleted=false to true and is never reopened.
type Quest struct {
	ID string `json:"id"`
	QuestDraft
	IsCompleted bool `json:"isCompleted"`
}
