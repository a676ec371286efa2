package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru"

	"github.com/learnquest/learnquest/internal/llm"
	"github.com/learnquest/learnquest/internal/progress"
	"github.com/learnquest/learnquest/internal/skilltree"
)

// Service is the content-generation collaborator. It is safe for
// concurrent use.
type Service struct {
	provider llm.Provider
	cfg      Config
	catalog  *skilltree.Catalog
	advice   *lru.Cache
}

// NewService creates a content service backed by provider.
func NewService(provider llm.Provider, cfg Config) *Service {
	cache, err := lru.New(max(cfg.AdviceCacheSize, 1))
	if err != nil {
		// lru.New only fails on a non-positive size.
		panic(err)
	}
	return &Service{
		provider: provider,
		cfg:      cfg,
		catalog:  skilltree.Default(),
		advice:   cache,
	}
}

// generate sends one structured request and decodes the payload into out.
func (s *Service) generate(ctx context.Context, op, system, prompt string, schema *llm.Schema, out any) error {
	ctx = llm.WithPurpose(ctx, op)
	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      system,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: prompt}},
		Schema:      schema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return &CollaboratorError{Op: op, Err: err}
	}
	if err := json.Unmarshal(resp.Content, out); err != nil {
		return &CollaboratorError{Op: op, Err: fmt.Errorf("parse response: %w", err)}
	}
	return nil
}

// GenerateDailyQuests asks for today's three quests, tuned to the
// learner's skills and curriculum position.
func (s *Service) GenerateDailyQuests(ctx context.Context, skills map[progress.SkillKey]float64, steps int) ([]progress.QuestDraft, error) {
	var drafts []progress.QuestDraft
	if err := s.generate(ctx, PurposeQuests, mentorSystemPrompt, buildQuestsPrompt(skills, steps), QuestsSchema, &drafts); err != nil {
		return nil, err
	}
	if err := checkDrafts(drafts); err != nil {
		return nil, &CollaboratorError{Op: PurposeQuests, Err: err}
	}
	return drafts, nil
}

func checkDrafts(drafts []progress.QuestDraft) error {
	if len(drafts) != DailyQuestCount {
		return fmt.Errorf("got %d quests, want %d", len(drafts), DailyQuestCount)
	}
	for i, d := range drafts {
		switch {
		case !d.Domaine.Active():
			return fmt.Errorf("quest %d: domain %q is not active", i, d.Domaine)
		case d.XPAttribuee <= 0:
			return fmt.Errorf("quest %d: xp %d must be positive", i, d.XPAttribuee)
		case strings.TrimSpace(d.Titre) == "":
			return fmt.Errorf("quest %d: empty title", i)
		}
	}
	return nil
}

// GenerateQuiz asks for an English quiz at the given skill level.
func (s *Service) GenerateQuiz(ctx context.Context, englishLevel float64) (Quiz, error) {
	var qs []Question
	if err := s.generate(ctx, PurposeQuiz, mentorSystemPrompt, buildQuizPrompt(englishLevel), QuizSchema, &qs); err != nil {
		return Quiz{}, err
	}
	for i, q := range qs {
		if len(q.Options) != QuestionOptions {
			return Quiz{}, &CollaboratorError{Op: PurposeQuiz,
				Err: fmt.Errorf("question %d has %d options, want %d", i, len(q.Options), QuestionOptions)}
		}
		if !slices.Contains(q.Options, q.CorrectAnswer) {
			return Quiz{}, &CollaboratorError{Op: PurposeQuiz,
				Err: fmt.Errorf("question %d: correct answer %q is not an option", i, q.CorrectAnswer)}
		}
	}
	if len(qs) == 0 {
		return Quiz{}, &CollaboratorError{Op: PurposeQuiz, Err: errors.New("no questions")}
	}
	return Quiz{Questions: qs}, nil
}

// GenerateChallenge asks for a prompt-engineering scenario.
func (s *Service) GenerateChallenge(ctx context.Context, aiLevel float64) (Scenario, error) {
	var sc Scenario
	if err := s.generate(ctx, PurposeChallenge, mentorSystemPrompt, buildChallengePrompt(aiLevel), ChallengeSchema, &sc); err != nil {
		return Scenario{}, err
	}
	if strings.TrimSpace(sc.Goal) == "" {
		return Scenario{}, &CollaboratorError{Op: PurposeChallenge, Err: errors.New("scenario has no goal")}
	}
	return sc, nil
}

type evaluationOutput struct {
	Score          float64  `json:"score"`
	Feedback       string   `json:"feedback"`
	Strengths      []string `json:"strengths"`
	Weaknesses     []string `json:"weaknesses"`
	ImprovedPrompt string   `json:"improvedPrompt"`
}

// EvaluatePrompt scores the learner's prompt for sc. An empty prompt
// returns ErrEmptyPrompt without contacting the provider.
func (s *Service) EvaluatePrompt(ctx context.Context, sc Scenario, prompt string) (Evaluation, error) {
	if strings.TrimSpace(prompt) == "" {
		return Evaluation{}, ErrEmptyPrompt
	}
	var out evaluationOutput
	if err := s.generate(ctx, PurposeEvaluation, evaluatorSystemPrompt, buildEvaluationPrompt(sc, prompt), EvaluationSchema, &out); err != nil {
		return Evaluation{}, err
	}
	return Evaluation{
		Score:          min(max(int(math.Round(out.Score)), 0), 100),
		Feedback:       out.Feedback,
		Strengths:      out.Strengths,
		Weaknesses:     out.Weaknesses,
		ImprovedPrompt: out.ImprovedPrompt,
	}, nil
}

// SkillTreeAdvice recommends the next node to unlock. Answers are cached
// per build so repeated asks on an unchanged build cost nothing.
func (s *Service) SkillTreeAdvice(ctx context.Context, st progress.State) (Advice, error) {
	key := buildFingerprint(st)
	if v, ok := s.advice.Get(key); ok {
		return v.(Advice), nil
	}

	var a Advice
	if err := s.generate(ctx, PurposeAdvice, mentorSystemPrompt, buildAdvicePrompt(st, s.catalog), AdviceSchema, &a); err != nil {
		return Advice{}, err
	}
	if strings.TrimSpace(a.Advice) == "" {
		a.Advice = fallbackAdvice
	}
	if _, err := s.catalog.Node(a.SuggestedNodeID); err != nil {
		a.SuggestedNodeID = ""
	}
	s.advice.Add(key, a)
	return a, nil
}

// buildFingerprint identifies everything the advice depends on.
func buildFingerprint(st progress.State) string {
	var b strings.Builder
	unlocked := slices.Clone(st.UnlockedNodes)
	slices.Sort(unlocked)
	b.WriteString(strings.Join(unlocked, ","))
	b.WriteString("|bp=")
	b.WriteString(strconv.Itoa(st.BuildPoints))
	for _, k := range progress.AllSkillKeys() {
		fmt.Fprintf(&b, "|%s=%d/%.1f", k, st.SkillPoints[k], st.Skill(k))
	}
	return b.String()
}
