package prompt

import "marketlens/internal/types"

var months = [types.SeriesLength]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

func monthly(values ...float64) []types.MonthlyPoint {
	out := make([]types.MonthlyPoint, len(values))
	for i, v := range values {
		out[i] = types.MonthlyPoint{Month: months[i%len(months)], Value: v}
	}
	return out
}

// Example returns the sample object shown to the model for q. Shop and
// product examples echo the input; keyword and rank examples are fixed.
// The values also serve as the offline canned responses.
func Example(q types.Query) any {
	switch q.Kind {
	case types.KeywordQueryKind:
		return KeywordExample()
	case types.ShopQueryKind:
		return ShopExample(q.ShopName)
	case types.ProductQueryKind:
		return ProductExample(q.Product)
	case types.RankQueryKind:
		return RankExample()
	}
	return nil
}

func KeywordExample() types.KeywordAnalysis {
	return types.KeywordAnalysis{
		Competition:              types.LevelHigh,
		SearchVolume:             types.LevelHigh,
		BuyerIntent:              "Commercial",
		CompetitionScore:         78,
		EstimatedMonthlySearches: 12500,
		HistoricalData:           monthly(60, 65, 70, 75, 80, 85, 70, 65, 80, 90, 100, 95),
		NicheSuggestions:         []string{"minimalist gold jewelry", "bridesmaid gift sets"},
		LongTailKeywords:         []string{"dainty initial necklace gold", "personalized birthstone necklace for mom"},
		SuggestedTags: []string{
			"initial necklace", "gold necklace", "dainty jewelry", "personalized gift", "gift for her",
			"letter necklace", "minimalist", "bridesmaid gift", "birthday gift", "layering necklace",
			"mom gift", "custom jewelry", "anniversary gift",
		},
		ProductIdeas: []string{"engraved bar necklace", "birth flower pendant"},
	}
}

func ShopExample(shopName string) types.ShopAnalysis {
	return types.ShopAnalysis{
		ShopName:              shopName,
		Niche:                 "Handmade ceramic home decor with a muted, earthy palette",
		EstimatedMonthlySales: "50-100 sales",
		TopKeywords:           []string{"ceramic vase", "handmade mug", "minimalist planter"},
		Strengths:             []string{"Consistent product photography", "Strong repeat-buyer reviews"},
		AreasForImprovement:   []string{"Use all 13 tags on every listing", "Add seasonal gift bundles before Q4"},
	}
}

func ProductExample(concept string) types.ProductAnalysis {
	return types.ProductAnalysis{
		ProductConcept:      concept,
		TitleSuggestion:     "Custom Star Map Print, Night Sky by Date, Personalized Anniversary Gift for Him",
		DescriptionFeedback: "Lead with the personalization options and add size and paper details in the first lines.",
		PricingSuggestion:   "$25-$35",
		MonthlySales:        "30-50",
		MonthlyRevenue:      "$900 - $1,500",
		TotalSales:          320,
		ListingAge:          "7 months",
		Reviews:             65,
		Views:               2500,
		Favorites:           210,
		MonthlyReviews:      "5-8",
		ConversionRate:      "2.1%",
		Category:            "Home & Living > Home Decor",
		VisibilityScore:     "92/100",
		ReviewRatio:         "20%",
		TagsAnalysis: []types.TagScore{
			{Tag: "custom star map", Volume: "High", Competition: "Medium", Score: 85},
			{Tag: "night sky print", Volume: "High", Competition: "High", Score: 75},
			{Tag: "anniversary gift", Volume: "High", Competition: "High", Score: 72},
			{Tag: "constellation map", Volume: "Medium", Competition: "Medium", Score: 68},
		},
		ListingDetails: types.ListingDetails{
			WhenMade:            "Made to order",
			ListingType:         "Physical",
			Customizable:        true,
			Personalized:        true,
			AutoRenew:           true,
			HasVariations:       true,
			TitleCharacterCount: 135,
			TagsCount:           13,
			WhoMade:             "I did",
		},
		HistoricalData: types.ProductHistory{
			Sales:     monthly(20, 22, 25, 30, 28, 35, 32, 38, 40, 45, 55, 60),
			Views:     monthly(1500, 1600, 1700, 1800, 1900, 2100, 2000, 2200, 2400, 2800, 3200, 3500),
			Favorites: monthly(15, 18, 20, 25, 30, 35, 32, 40, 45, 50, 60, 70),
		},
		VisibilityAnalysis: "Likely ranks on the first two pages for its primary keywords and benefits from gift guide placement.",
	}
}

func RankExample() types.RankAnalysis {
	return types.RankAnalysis{
		EstimatedRank:   "Page 1, spots 10-20",
		RankExplanation: "The title and description match the keyword closely, but several established listings hold the top spots.",
		ImprovementSuggestions: []string{
			"Move the exact keyword to the start of the title.",
			"Use the keyword and two close variants as tags.",
			"Add a lifestyle photo as the first image to lift click-through.",
		},
	}
}
