// Package render turns learner state into the text the CLI prints.
package render

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/learnquest/learnquest/internal/content"
	"github.com/learnquest/learnquest/internal/history"
	"github.com/learnquest/learnquest/internal/progress"
	"github.com/learnquest/learnquest/internal/quest"
	"github.com/learnquest/learnquest/internal/skilltree"
	"github.com/learnquest/learnquest/internal/town"
	"github.com/learnquest/learnquest/internal/ui/components"
	"github.com/learnquest/learnquest/internal/ui/theme"
)

// Status renders the dashboard card: level, xp, coins, steps, streak and
// the six skills.
func Status(s progress.State, streak, width int) string {
	cw := components.ContentWidth(width)
	lines := []string{
		components.Row("Niveau", fmt.Sprintf("%d", s.Level)),
		components.NewProgressBar("XP", progress.LevelProgress(s.XP), true, cw).View(),
		components.Row("XP total", fmt.Sprintf("%d", s.XP)),
		components.Row("Gemmes", theme.Coins.Render(fmt.Sprintf("%d", s.GemCoins))),
		components.Row("Étapes", fmt.Sprintf("%d / %d", s.StepsCompleted, progress.TotalSteps)),
		components.Row("Série", fmt.Sprintf("%d jour(s)", streak)),
		components.Row("Points", fmt.Sprintf("%d BP", s.BuildPoints)),
		theme.Section.Render("Compétences"),
	}
	for _, k := range progress.AllSkillKeys() {
		v := s.Skill(k)
		label := fmt.Sprintf("%-12s %4.1f", k.DisplayName(), v)
		if sp := s.SkillPoints[k]; sp > 0 {
			label += theme.Coins.Render(fmt.Sprintf(" +%d SP", sp))
		}
		bar := components.NewProgressBar("", (v-progress.MinSkillLevel)/(progress.MaxSkillLevel-progress.MinSkillLevel), false, 20)
		lines = append(lines, bar.View()+"  "+label)
	}
	return components.Card("LearnQuest", lines...)
}

// Quests renders the active quest board.
func Quests(b quest.Board) string {
	if len(b) == 0 {
		return theme.Hint.Render("Aucune quête active. Lancez `learnquest quests generate`.")
	}
	var sb strings.Builder
	for _, q := range b {
		mark := "[ ]"
		title := theme.Body.Render(q.Titre)
		if q.IsCompleted {
			mark = theme.Correct.Render("[x]")
			title = theme.Done.Render(q.Titre)
		}
		fmt.Fprintf(&sb, "%s %s  %s  %s\n", mark, title, theme.Domain(q.Domaine), theme.Coins.Render(fmt.Sprintf("+%d XP", q.XPAttribuee)))
		fmt.Fprintf(&sb, "    %s\n", theme.Subtitle.Render(fmt.Sprintf("%s · %s", q.ID, q.Difficulte)))
		if q.Description != "" {
			fmt.Fprintf(&sb, "    %s\n", q.Description)
		}
		if q.ConditionsDeValidation != "" {
			fmt.Fprintf(&sb, "    %s\n", theme.Hint.Render("Validation: "+q.ConditionsDeValidation))
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

// Trees renders skill trees with per-node status.
func Trees(views []skilltree.TreeView, s progress.State) string {
	var sb strings.Builder
	for i, tv := range views {
		if i > 0 {
			sb.WriteString("\n")
		}
		header := theme.Domain(tv.Domain)
		if k, ok := progress.SkillKeyFor(tv.Domain); ok {
			header += theme.Subtitle.Render(fmt.Sprintf("  niveau %.1f · %d SP", s.Skill(k), s.SkillPoints[k]))
		}
		sb.WriteString(header + "\n")
		for _, bv := range tv.Branches {
			fmt.Fprintf(&sb, "  %s\n", theme.Section.UnsetMarginTop().Render(bv.Name))
			for _, nv := range bv.Nodes {
				st := theme.NodeStatus(nv.Status)
				fmt.Fprintf(&sb, "    %s %s %s\n",
					st.Render(nodeGlyph(nv.Status)),
					st.Render(nv.Title),
					theme.Subtitle.Render(fmt.Sprintf("(%s, %d %s)", nv.ID, nv.Cost, nv.CostType)))
			}
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

func nodeGlyph(s skilltree.Status) string {
	switch s {
	case skilltree.StatusUnlocked:
		return "●"
	case skilltree.StatusAvailable:
		return "◐"
	default:
		return "○"
	}
}

// Nodes renders a flat node list, e.g. search results.
func Nodes(nodes []skilltree.Node, s progress.State, c *skilltree.Catalog) string {
	if len(nodes) == 0 {
		return theme.Hint.Render("Aucun nœud trouvé.")
	}
	var sb strings.Builder
	for _, n := range nodes {
		status := c.Status(s, n)
		d, _ := c.DomainOf(n.ID)
		fmt.Fprintf(&sb, "%s %-10s %s  %s\n",
			theme.NodeStatus(status).Render(nodeGlyph(status)),
			n.ID, theme.Body.Render(n.Title), theme.Domain(d))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// Town renders every building with its current tier and progress to the
// next one.
func Town(views []town.BuildingView, width int) string {
	cw := components.ContentWidth(width)
	var sb strings.Builder
	for i, bv := range views {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%s  %s\n", theme.Domain(bv.Domain),
			theme.Value.Render(fmt.Sprintf("Niv. %d · %s", bv.Current.Niveau, bv.Current.Titre)))
		if bv.Current.DescriptionVisuelle != "" {
			fmt.Fprintf(&sb, "  %s\n", theme.Hint.Render(bv.Current.DescriptionVisuelle))
		}
		if bv.Next == nil {
			fmt.Fprintf(&sb, "  %s\n", theme.Correct.Render("Niveau maximum atteint"))
			continue
		}
		bar := components.NewProgressBar(fmt.Sprintf("%d %s", bv.Metric, bv.Unit), bv.Progress, true, cw)
		fmt.Fprintf(&sb, "  %s\n", bar.View())
		fmt.Fprintf(&sb, "  %s\n", theme.Subtitle.Render(
			fmt.Sprintf("Encore %d %s pour « %s »", bv.Remaining, bv.Next.UniteExigence, bv.Next.Titre)))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// History renders a period summary: totals, streaks and one bar per day
// scaled to the best day of the window.
func History(sum history.Summary, width int) string {
	cw := components.ContentWidth(width)
	lines := []string{
		components.Row("Période", sum.Period.Label()),
		components.Row("XP", fmt.Sprintf("%d", sum.Totals.XP)),
		components.Row("Quêtes", fmt.Sprintf("%d", sum.Totals.Quests)),
		components.Row("Étapes", fmt.Sprintf("%d", sum.Totals.Steps)),
		components.Row("Série", fmt.Sprintf("%d (record %d)", sum.Streak, sum.Longest)),
	}
	if len(sum.Records) == 0 {
		lines = append(lines, "", theme.Hint.Render("Aucune activité sur la période."))
		return components.Card("Historique", lines...)
	}
	best := 0
	for _, r := range sum.Records {
		best = max(best, r.XP)
	}
	lines = append(lines, "")
	for _, r := range sum.Records {
		pct := 0.0
		if best > 0 {
			pct = float64(r.XP) / float64(best)
		}
		bar := components.NewProgressBar(r.Date, pct, false, cw-8)
		lines = append(lines, bar.View()+theme.Subtitle.Render(fmt.Sprintf(" %5d", r.XP)))
	}
	return components.Card("Historique", lines...)
}

// Question renders quiz question i with numbered options.
func Question(i int, q content.Question) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s\n", theme.Title.Render(fmt.Sprintf("Q%d.", i+1)), theme.Body.Render(q.Question))
	for j, opt := range q.Options {
		fmt.Fprintf(&sb, "  %d) %s\n", j+1, opt)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// Corrections renders each question's answer against the given answers.
func Corrections(quiz content.Quiz, answers []string) string {
	var sb strings.Builder
	for i, q := range quiz.Questions {
		given := ""
		if i < len(answers) {
			given = answers[i]
		}
		if given == q.CorrectAnswer {
			fmt.Fprintf(&sb, "%s %s\n", theme.Correct.Render("✓"), q.CorrectAnswer)
		} else {
			fmt.Fprintf(&sb, "%s %s → %s\n", theme.Incorrect.Render("✗"), given, theme.Correct.Render(q.CorrectAnswer))
		}
		if q.Explanation != "" {
			fmt.Fprintf(&sb, "  %s\n", theme.Hint.Render(q.Explanation))
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

// Scenario renders a prompt-engineering challenge.
func Scenario(sc content.Scenario, width int) string {
	return components.Card(sc.Title,
		lipgloss.NewStyle().Width(components.ContentWidth(width)).Render(sc.Context),
		"",
		components.Row("Objectif", sc.Goal))
}

// Evaluation renders the verdict on a submitted prompt.
func Evaluation(ev content.Evaluation, width int) string {
	cw := components.ContentWidth(width)
	lines := []string{
		components.NewProgressBar("Score", float64(ev.Score)/100, true, cw).View(),
		"",
		theme.Body.Width(cw).Render(ev.Feedback),
	}
	if len(ev.Strengths) > 0 {
		lines = append(lines, theme.Section.Render("Points forts"))
		for _, s := range ev.Strengths {
			lines = append(lines, theme.Correct.Render("+ ")+s)
		}
	}
	if len(ev.Weaknesses) > 0 {
		lines = append(lines, theme.Section.Render("À améliorer"))
		for _, w := range ev.Weaknesses {
			lines = append(lines, theme.Incorrect.Render("- ")+w)
		}
	}
	if ev.ImprovedPrompt != "" {
		lines = append(lines, theme.Section.Render("Prompt amélioré"), theme.Hint.Render(ev.ImprovedPrompt))
	}
	return components.Card("Évaluation", lines...)
}

// Advice renders a skill-tree recommendation.
func Advice(a content.Advice, c *skilltree.Catalog) string {
	out := theme.Body.Render(a.Advice)
	if a.SuggestedNodeID == "" {
		return out
	}
	if n, err := c.Node(a.SuggestedNodeID); err == nil {
		out += "\n" + theme.NodeAvailable.Render(fmt.Sprintf("→ %s (%s)", n.Title, n.ID))
	}
	return out
}
