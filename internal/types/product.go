package types

// TagScore rates a single listing tag.
type TagScore struct {
	Tag         string  `json:"tag"`
	Volume      string  `json:"volume"`
	Competition string  `json:"competition"`
	Score       float64 `json:"score"`
}

// ListingDetails describes the hypothetical listing behind a product
// analysis.
type ListingDetails struct {
	WhenMade            string `json:"when_made"`
	ListingType         string `json:"listing_type"`
	Customizable        bool   `json:"customizable"`
	CraftSupply         bool   `json:"craft_supply"`
	Personalized        bool   `json:"personalized"`
	AutoRenew           bool   `json:"auto_renew"`
	HasVariations       bool   `json:"has_variations"`
	TitleCharacterCount int    `json:"title_character_count"`
	TagsCount           int    `json:"tags_count"`
	WhoMade             string `json:"who_made"`
}

// ProductHistory holds three parallel twelve month series.
type ProductHistory struct {
	Sales     []MonthlyPoint `json:"sales"`
	Views     []MonthlyPoint `json:"views"`
	Favorites []MonthlyPoint `json:"favorites"`
}

// ProductAnalysis is the result of a product query. ProductConcept echoes
// the input and is the identity key of a favorite product.
type ProductAnalysis struct {
	ProductConcept      string `json:"product_concept"`
	TitleSuggestion     string `json:"title_suggestion"`
	DescriptionFeedback string `json:"description_feedback"`
	PricingSuggestion   string `json:"pricing_suggestion"`

	MonthlySales    string  `json:"monthly_sales"`
	MonthlyRevenue  string  `json:"monthly_revenue"`
	TotalSales      float64 `json:"total_sales"`
	ListingAge      string  `json:"listing_age"`
	Reviews         float64 `json:"reviews"`
	Views           float64 `json:"views"`
	Favorites       float64 `json:"favorites"`
	MonthlyReviews  string  `json:"monthly_reviews"`
	ConversionRate  string  `json:"conversion_rate"`
	Category        string  `json:"category"`
	VisibilityScore string  `json:"visibility_score"`
	ReviewRatio     string  `json:"review_ratio"`

	TagsAnalysis       []TagScore     `json:"tags_analysis"`
	ListingDetails     ListingDetails `json:"listing_details"`
	HistoricalData     ProductHistory `json:"historical_data"`
	VisibilityAnalysis string         `json:"visibility_analysis"`
}
