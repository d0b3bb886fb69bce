package sentiment

import (
	"strings"

	"github.com/Alias1177/StockPicker/internal/model"
)

var (
	positiveKeywords = []string{"growth", "profit", "gain", "increase", "positive", "strong", "buy", "upgrade"}
	negativeKeywords = []string{"loss", "decline", "decrease", "negative", "weak", "sell", "downgrade", "crisis"}
)

// Per-article scores
const (
	scorePositive = 0.7
	scoreNeutral  = 0.5
	scoreNegative = 0.3
)

// ScoreArticle rates one article by counting keyword hits in its title and
// description.
func ScoreArticle(a model.Article) float64 {
	text := strings.ToLower(a.Title + " " + a.Description)

	var positive, negative int
	for _, word := range positiveKeywords {
		if strings.Contains(text, word) {
			positive++
		}
	}
	for _, word := range negativeKeywords {
		if strings.Contains(text, word) {
			negative++
		}
	}

	switch {
	case positive > negative:
		return scorePositive
	case negative > positive:
		return scoreNegative
	default:
		return scoreNeutral
	}
}
