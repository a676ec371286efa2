package content

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/learnquest/learnquest/internal/progress"
	"github.com/learnquest/learnquest/internal/skilltree"
)

const mentorSystemPrompt = `Tu es Prométhée, mentor d'un développeur qui prépare la certification
"Responsive Web Design" de FreeCodeCamp (1445 étapes) tout en progressant en anglais
technique et en ingénierie IA. Tu réponds toujours en français, sauf pour le contenu
d'anglais, et uniquement avec du JSON conforme au schéma demandé.`

const evaluatorSystemPrompt = `Tu es un expert mondial en prompt engineering. Tu évalues
des prompts destinés à faire générer du code par un LLM. Tu es exigeant mais constructif
et tu réponds uniquement avec du JSON conforme au schéma demandé.`

func buildQuestsPrompt(skills map[progress.SkillKey]float64, steps int) string {
	next := steps + 1
	last := steps + StepsPerSprint

	var b strings.Builder
	fmt.Fprintf(&b, "État actuel : %d étapes validées sur %d. Prochaine étape : %d.\n\n",
		steps, progress.TotalSteps, next)
	fmt.Fprintf(&b, "Génère exactement %d quêtes pour aujourd'hui :\n\n", DailyQuestCount)

	fmt.Fprintf(&b, "1. Domaine %q. Titre \"Anglais : Le mot du jour\". Choisis un terme technique "+
		"qu'on rencontre vers l'étape %d (nesting, anchor, attribute...). Description : "+
		"\"Traduis et explique en une phrase le terme technique lié à ton étape actuelle.\" "+
		"Condition : \"Saisie validée\".\n", progress.DomainAnglais, next)
	fmt.Fprintf(&b, "2. Domaine %q. Titre \"Sprint FCC : Étapes %d à %d\". Description : "+
		"\"Concentre-toi et valide les %d prochaines étapes sur FreeCodeCamp.\" Condition : "+
		"\"Valide tes étapes sur le compteur de l'app au fur et à mesure\".\n",
		progress.DomainWebDev, next, last, StepsPerSprint)
	fmt.Fprintf(&b, "3. Domaine %q. Titre \"Coach IA\". Description : demande à une IA une astuce "+
		"ou une bonne pratique sur l'élément HTML étudié à l'étape %d.\n\n", progress.DomainAI, next)

	fmt.Fprintf(&b, "Adapte la difficulté et l'XP aux niveaux : Anglais %.1f/10, Web %.1f/10, IA %.1f/10.\n",
		skills[progress.SkillAnglais], skills[progress.SkillWebDev], skills[progress.SkillAIEngineering])
	return b.String()
}

func buildQuizPrompt(level float64) string {
	return fmt.Sprintf(`Génère un mini-quiz d'anglais technique pour un développeur web de niveau %.1f/10.
Sujets : vocabulaire HTML/CSS, verbes techniques (debug, commit, merge, nest) ou faux-amis.
Exactement %d questions à choix multiples, %d choix par question.
"correctAnswer" reprend mot pour mot l'un des choix.
Exemple : "What does 'nesting' mean in HTML context?"`, level, QuizLength, QuestionOptions)
}

func buildChallengePrompt(level float64) string {
	return fmt.Sprintf(`Génère un scénario de "Prompt Engineering Challenge" pour un développeur web.
Complexité : %.1f/10.
L'utilisateur devra écrire un prompt qui fait générer à une IA un code précis, par exemple
une requête SQL avec jointures, un composant de barre de navigation responsive, une regex
de validation ou l'explication d'un bug dans un code fourni.
Un seul objet JSON.`, level)
}

func buildEvaluationPrompt(sc Scenario, prompt string) string {
	return fmt.Sprintf(`SCÉNARIO
Contexte : %s
Objectif : %s

PROMPT DE L'UTILISATEUR
"""
%s
"""

Évalue ce prompt selon la clarté, le contexte fourni, les contraintes techniques
(langage, format) et la gestion des cas limites. Donne un score sur 100, un feedback
constructif, les points forts et faibles, et une version optimisée du prompt.`,
		sc.Context, sc.Goal, prompt)
}

func buildAdvicePrompt(s progress.State, c *skilltree.Catalog) string {
	skills, _ := json.Marshal(s.SkillLevels)
	unlocked := strings.Join(s.UnlockedNodes, ", ")
	if unlocked == "" {
		unlocked = "aucune pour l'instant"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Niveaux de compétences : %s\n", skills)
	fmt.Fprintf(&b, "Compétences débloquées : %s\n", unlocked)
	fmt.Fprintf(&b, "Points de Build (BP) : %d. Points de Compétence (SP) :", s.BuildPoints)
	for _, k := range progress.AllSkillKeys() {
		if n := s.SkillPoints[k]; n > 0 {
			fmt.Fprintf(&b, " %s=%d", k, n)
		}
	}
	b.WriteString("\n\nArbres disponibles (id | titre | coût | prérequis) :\n")
	for _, n := range c.Nodes() {
		parent := n.ParentID
		if parent == "" {
			parent = "-"
		}
		fmt.Fprintf(&b, "%s | %s | %d %s | %s\n", n.ID, n.Title, n.Cost, n.CostType, parent)
	}
	b.WriteString("\nEn conseiller de stratégie RPG, suggère LA prochaine compétence à débloquer " +
		"pour un build \"Full Stack AI Engineer\". Sois bref, motivant et stratégique.")
	return b.String()
}
