package recommend

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Alias1177/StockPicker/internal/model"
)

// SystemPrompt frames the model as an analyst answering in JSON
const SystemPrompt = "You are a professional UK stock market analyst. Provide detailed, accurate analysis in the exact JSON format requested. Be specific and actionable in your recommendations."

const criteria = `ANALYSIS CRITERIA:
1. Technical Analysis (40% weight):
   - RSI levels (look for oversold conditions or bullish momentum)
   - MACD signals and crossovers
   - Moving average relationships and crossovers
   - Bollinger Band positions
   - Volume confirmation
   - Recent price momentum

2. Market Sentiment (30% weight):
   - News sentiment analysis
   - Market perception and recent developments
   - Sector sentiment

3. Risk Assessment (30% weight):
   - Volatility patterns
   - Support/resistance levels
   - Overall market conditions
   - Sector-specific risks
`

const outputFormat = `REQUIRED OUTPUT FORMAT (JSON):
{
  "top_10_picks": [
    {
      "rank": 1,
      "symbol": "STOCK.L",
      "company_name": "Company Name",
      "recommendation": "BUY/STRONG_BUY/HOLD",
      "target_price": 150.50,
      "confidence_score": 8.5,
      "key_reasons": [
        "Specific technical reason",
        "Specific sentiment reason",
        "Specific fundamental reason"
      ],
      "risk_level": "LOW/MEDIUM/HIGH",
      "time_horizon": "1-3 days",
      "expected_return": "5.2%"
    }
  ],
  "market_overview": "Brief overall market sentiment and key factors affecting UK stocks today",
  "top_sectors": ["Technology", "Healthcare"],
  "key_risks": ["Risk factor 1", "Risk factor 2"]
}

Focus on stocks showing:
- Strong technical momentum
- Positive sentiment catalysts
- Good risk-reward ratios
- Volume confirmation
- Clear entry points

Provide specific, actionable analysis with clear reasoning for each pick.
`

// BuildPrompt renders the analysis request for a batch of stocks
func BuildPrompt(stocks []model.StockAnalysis) string {
	var b strings.Builder

	b.WriteString("You are an expert UK stock market analyst with deep knowledge of technical analysis, market sentiment, and fundamental analysis.\n\n")
	fmt.Fprintf(&b, "Analyze the following %d UK stocks and select the TOP 10 stocks with the highest potential for positive returns in the next 1-7 days.\n\n", len(stocks))
	b.WriteString("STOCK DATA:\n")
	for _, s := range stocks {
		writeStock(&b, s)
	}
	b.WriteString("\n")
	b.WriteString(criteria)
	b.WriteString("\n")
	b.WriteString(outputFormat)

	return b.String()
}

func writeStock(b *strings.Builder, s model.StockAnalysis) {
	ti := s.Indicators
	p := message.NewPrinter(language.BritishEnglish)

	fmt.Fprintf(b, "\nStock: %s (%s)\n", s.Symbol, s.CompanyName)
	fmt.Fprintf(b, "Sector: %s\n", s.Sector)
	fmt.Fprintf(b, "Current Price: £%.2f\n", ti.CurrentPrice)
	b.WriteString("Technical Indicators:\n")
	fmt.Fprintf(b, "- RSI: %.2f (Overbought >70, Oversold <30)\n", ti.RSI)
	fmt.Fprintf(b, "- MACD: %.4f\n", ti.MACD)
	fmt.Fprintf(b, "- 20-day SMA: £%.2f\n", ti.SMA20)
	fmt.Fprintf(b, "- 50-day SMA: £%.2f\n", ti.SMA50)
	fmt.Fprintf(b, "- Bollinger Band Position: %.2f (0=lower, 1=upper)\n", ti.BBPosition)
	fmt.Fprintf(b, "- Volume Ratio: %.2f (>1 = above average volume)\n", ti.VolumeRatio)
	fmt.Fprintf(b, "- 5-day Price Change: %.2f%%\n", ti.PriceChange5d)
	fmt.Fprintf(b, "- 20-day Price Change: %.2f%%\n", ti.PriceChange20d)
	b.WriteString("Market Sentiment:\n")
	fmt.Fprintf(b, "- Sentiment Score: %.2f (0=negative, 1=positive)\n", s.Sentiment.Score)
	fmt.Fprintf(b, "- Recent News Count: %d\n", s.Sentiment.NewsCount)
	if len(s.Sentiment.RecentHeadlines) > 0 {
		fmt.Fprintf(b, "- Recent Headlines: %s\n", strings.Join(s.Sentiment.RecentHeadlines, " | "))
	}
	if len(s.PreviousPicks) > 0 {
		past := make([]string, 0, len(s.PreviousPicks))
		for _, pp := range s.PreviousPicks {
			past = append(past, fmt.Sprintf("%s #%d %s (target £%.2f)",
				pp.RunDate.Format("2006-01-02"), pp.Rank, pp.Recommendation, pp.TargetPrice))
		}
		fmt.Fprintf(b, "- Previous Picks: %s\n", strings.Join(past, "; "))
	}
	b.WriteString(p.Sprintf("Market Cap: £%d\n", s.MarketCap))
}
