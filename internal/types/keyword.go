package types

// Level is the Low/Medium/High scale used for competition and volume.
type Level string

const (
	LevelLow    Level = "Low"
	LevelMedium Level = "Medium"
	LevelHigh   Level = "High"
)

// Levels lists the allowed Level values.
var Levels = []string{string(LevelLow), string(LevelMedium), string(LevelHigh)}

// BuyerIntents lists the allowed buyer_intent values.
var BuyerIntents = []string{"Informational", "Commercial", "Transactional"}

// MonthlyPoint is one month of a twelve month series. Series are ordered
// chronologically.
type MonthlyPoint struct {
	Month string  `json:"month"`
	Value float64 `json:"value"`
}

// SeriesLength is the number of points in every historical series.
const SeriesLength = 12

// KeywordAnalysis is the result of a keyword query.
type KeywordAnalysis struct {
	Competition              Level          `json:"competition"`
	SearchVolume             Level          `json:"search_volume"`
	BuyerIntent              string         `json:"buyer_intent"`
	CompetitionScore         int            `json:"competition_score"`
	EstimatedMonthlySearches int            `json:"estimated_monthly_searches"`
	HistoricalData           []MonthlyPoint `json:"historical_data"`
	NicheSuggestions         []string       `json:"niche_suggestions"`
	LongTailKeywords         []string       `json:"long_tail_keywords"`
	SuggestedTags            []string       `json:"suggested_tags"`
	ProductIdeas             []string       `json:"product_ideas"`
}
