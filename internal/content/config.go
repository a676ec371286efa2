package content

const (
	// DailyQuestCount is the size of every generated quest batch.
	DailyQuestCount = 3

	// QuizLength is the number of questions per English quiz.
	QuizLength = 3

	// StepsPerSprint is how many curriculum steps the web quest targets.
	StepsPerSprint = 10

	// fallbackAdvice is served when the collaborator answers with no text.
	fallbackAdvice = "Concentrez-vous sur les fondamentaux pour l'instant."
)

// Config holds content generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64

	// AdviceCacheSize bounds the number of cached skill-tree advices.
	AdviceCacheSize int
}

// DefaultConfig returns sensible defaults for content generation.
func DefaultConfig() Config {
	return Config{
		MaxTokens:       2048,
		Temperature:     0.7,
		AdviceCacheSize: 32,
	}
}
