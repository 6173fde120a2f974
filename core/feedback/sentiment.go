package feedback

import "github.com/trezcool/darasa/core"

// Sentiment is the classification of a feedback option.
type Sentiment int

const (
	SentimentUnrecognized Sentiment = iota
	SentimentPositive
	SentimentNegative
	SentimentNeutral
)

func (s Sentiment) String() string {
	switch s {
	case SentimentPositive:
		return "positive"
	case SentimentNegative:
		return "negative"
	case SentimentNeutral:
		return "neutral"
	}
	return "unrecognized"
}

// optionLexicon maps known selected_option values (lowercased, trimmed) to
// their sentiment.
var optionLexicon = map[string]Sentiment{
	"positive": SentimentPositive,
	"like":     SentimentPositive,
	"good":     SentimentPositive,
	"yes":      SentimentPositive,

	"negative": SentimentNegative,
	"dislike":  SentimentNegative,
	"bad":      SentimentNegative,
	"no":       SentimentNegative,

	"neutral": SentimentNeutral,
	"maybe":   SentimentNeutral,
	"ok":      SentimentNeutral,
}

// ClassifyOption classifies a raw selected_option value. Options outside the
// lexicon (including empty ones) come back as SentimentUnrecognized; callers
// decide how to fold those.
func ClassifyOption(option string) Sentiment {
	if s, ok := optionLexicon[core.CleanString(option, true /* lower */)]; ok {
		return s
	}
	return SentimentUnrecognized
}

// FoldUnrecognized counts unrecognized options as neutral. This keeps
// positive+negative+neutral equal to the total for every tally, at the cost
// of conflating "explicitly neutral" with "unrecognized"; the breakdown
// invariants depend on it.
func FoldUnrecognized(s Sentiment) Sentiment {
	if s == SentimentUnrecognized {
		return SentimentNeutral
	}
	return s
}
