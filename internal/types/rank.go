package types

// RankAnalysis estimates where a product would rank for a keyword.
type RankAnalysis struct {
	EstimatedRank          string   `json:"estimated_rank"`
	RankExplanation        string   `json:"rank_explanation"`
	ImprovementSuggestions []string `json:"improvement_suggestions"`
}
