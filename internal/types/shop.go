package types

// ShopAnalysis is the result of a shop query. ShopName echoes the input and
// is the identity key of a favorite shop.
type ShopAnalysis struct {
	ShopName              string   `json:"shop_name"`
	Niche                 string   `json:"niche"`
	EstimatedMonthlySales string   `json:"estimated_monthly_sales"`
	TopKeywords           []string `json:"top_keywords"`
	Strengths             []string `json:"strengths"`
	AreasForImprovement   []string `json:"areas_for_improvement"`
}
