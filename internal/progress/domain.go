package progress

// SkillKey identifies one of the six tracked competencies.
type SkillKey string

const (
	SkillAnglais       SkillKey = "anglais"
	SkillWebDev        SkillKey = "webDev"
	SkillAIEngineering SkillKey = "aiEngineering"
	SkillConduite      SkillKey = "conduite"
	SkillBibliotheque  SkillKey = "bibliotheque"
	SkillHorlogerie    SkillKey = "horlogerie"
)

// AllSkillKeys returns the skill keys in display order.
func AllSkillKeys() []SkillKey {
	return []SkillKey{
		SkillAnglais,
		SkillWebDev,
		SkillAIEngineering,
		SkillConduite,
		SkillBibliotheque,
		SkillHorlogerie,
	}
}

// Domain is a quest/skill-tree/building category. The values are the
// labels stored in persisted documents and returned by the generator.
type Domain string

const (
	DomainAnglais      Domain = "Anglais"
	DomainWebDev       Domain = "Développement Web"
	DomainAI           Domain = "Ingénierie IA"
	DomainConduite     Domain = "Conduite"
	DomainBibliotheque Domain = "Bibliothèque"
	DomainHorlogerie   Domain = "Horlogerie"
)

// AllDomains returns every declared domain.
func AllDomains() []Domain {
	return []Domain{
		DomainAnglais,
		DomainWebDev,
		DomainAI,
		DomainConduite,
		DomainBibliotheque,
		DomainHorlogerie,
	}
}

// ActiveDomains returns the domains the quest generator may produce.
// Conduite, Bibliothèque and Horlogerie are mapped but inactive.
func ActiveDomains() []Domain {
	return []Domain{DomainAnglais, DomainWebDev, DomainAI}
}

// Active reports whether quests can currently be generated for d.
func (d Domain) Active() bool {
	for _, a := range ActiveDomains() {
		if a == d {
			return true
		}
	}
	return false
}

// StatKey names a counter in Stats.
type StatKey string

const (
	StatWordsMastered       StatKey = "wordsMastered"
	StatPromptsTested       StatKey = "promptsTested"
	StatCodeQuestsCompleted StatKey = "codeQuestsCompleted"
	StatKmDriven            StatKey = "kmDriven"
	StatBooksRead           StatKey = "booksRead"
	StatWatchesFixed        StatKey = "watchesFixed"
)

type domainRoute struct {
	skill SkillKey
	stat  StatKey
}

// routes is the closed Domain → (skill, stat) table. Anything not listed
// has no skill and no stat; there is no fallback key.
var routes = map[Domain]domainRoute{
	DomainAnglais:      {SkillAnglais, StatWordsMastered},
	DomainWebDev:       {SkillWebDev, StatCodeQuestsCompleted},
	DomainAI:           {SkillAIEngineering, StatPromptsTested},
	DomainConduite:     {SkillConduite, StatKmDriven},
	DomainBibliotheque: {SkillBibliotheque, StatBooksRead},
	DomainHorlogerie:   {SkillHorlogerie, StatWatchesFixed},
}

// SkillKeyFor returns the skill key routed from domain d.
func SkillKeyFor(d Domain) (SkillKey, bool) {
	r, ok := routes[d]
	return r.skill, ok
}

// StatFor returns the stats counter routed from domain d.
func StatFor(d Domain) (StatKey, bool) {
	r, ok := routes[d]
	return r.stat, ok
}

// DisplayName returns a short label for a skill key.
func (k SkillKey) DisplayName() string {
	switch k {
	case SkillAnglais:
		return "Anglais"
	case SkillWebDev:
		return "Web Dev"
	case SkillAIEngineering:
		return "IA Eng."
	case SkillConduite:
		return "Conduite"
	case SkillBibliotheque:
		return "Bibliothèque"
	case SkillHorlogerie:
		return "Horlogerie"
	default:
		return string(k)
	}
}
