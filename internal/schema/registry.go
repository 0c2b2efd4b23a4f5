package schema

import (
	"fmt"

	"marketlens/internal/types"
)

const (
	KeywordName = "keyword_analysis"
	ShopName    = "shop_analysis"
	ProductName = "product_analysis"
	RankName    = "rank_analysis"
)

// monthlySeries is twelve {month, value} points, oldest first.
func monthlySeries() *Node {
	return ArrayOf(Object(
		Req("month", String().Describe("Abbreviated month name, e.g. Jan")),
		Req("value", Number()),
	)).Exactly(types.SeriesLength)
}

func stringList(desc string) *Node {
	return ArrayOf(String()).Describe(desc)
}

func level(desc string) *Node {
	return String().WithEnum(types.Levels...).Describe(desc)
}

var keywordSchema = New(KeywordName, types.KeywordQueryKind, Object(
	Req("competition", level("Overall competition on Etsy")),
	Req("search_volume", level("Relative search volume")),
	Req("buyer_intent", String().WithEnum(types.BuyerIntents...).Describe("Dominant purchase intent of searchers")),
	Req("competition_score", Integer().Between(0, 100).Describe("0 means no competition, 100 saturated")),
	Req("estimated_monthly_searches", Integer().AtLeast(0)),
	Req("historical_data", monthlySeries().Describe("Search interest for the last 12 months")),
	Req("niche_suggestions", stringList("Related niches worth exploring")),
	Req("long_tail_keywords", stringList("Longer, more specific variations")),
	Req("suggested_tags", stringList("Listing tags, at most 20 characters each")),
	Req("product_ideas", stringList("Concrete product ideas for the keyword")),
))

var shopSchema = New(ShopName, types.ShopQueryKind, Object(
	Req("shop_name", String()),
	Req("niche", String()),
	Req("estimated_monthly_sales", String().Describe("Range, e.g. 150-300 sales")),
	Req("top_keywords", stringList("Keywords the shop ranks for")),
	Req("strengths", stringList("")),
	Req("areas_for_improvement", stringList("")),
))

var productSchema = New(ProductName, types.ProductQueryKind, Object(
	Req("product_concept", String().Describe("The product concept exactly as given")),
	Req("title_suggestion", String().Describe("SEO optimized listing title")),
	Req("description_feedback", String()),
	Req("pricing_suggestion", String().Describe("Price range, e.g. $25-$35")),
	Req("monthly_sales", String()),
	Req("monthly_revenue", String()),
	Req("total_sales", Number().AtLeast(0)),
	Req("listing_age", String()),
	Req("reviews", Number().AtLeast(0)),
	Req("views", Number().AtLeast(0)),
	Req("favorites", Number().AtLeast(0)),
	Req("monthly_reviews", String()),
	Req("conversion_rate", String()),
	Req("category", String()),
	Req("visibility_score", String().Describe("Score out of 100, e.g. 92/100")),
	Req("review_ratio", String()),
	Req("tags_analysis", ArrayOf(Object(
		Req("tag", String()),
		Req("volume", level("")),
		Req("competition", level("")),
		Req("score", Number().Between(0, 100)),
	))),
	Req("listing_details", Object(
		Req("when_made", String()),
		Req("listing_type", String()),
		Req("customizable", Boolean()),
		Req("craft_supply", Boolean()),
		Req("personalized", Boolean()),
		Req("auto_renew", Boolean()),
		Req("has_variations", Boolean()),
		Req("title_character_count", Integer().AtLeast(0)),
		Req("tags_count", Integer().AtLeast(0)),
		Req("who_made", String()),
	)),
	Req("historical_data", Object(
		Req("sales", monthlySeries()),
		Req("views", monthlySeries()),
		Req("favorites", monthlySeries()),
	)),
	Req("visibility_analysis", String()),
))

var rankSchema = New(RankName, types.RankQueryKind, Object(
	Req("estimated_rank", String().Describe("Page and position estimate, e.g. Page 1, position 5-10")),
	Req("rank_explanation", String()),
	Req("improvement_suggestions", stringList("Actionable changes to climb the results")),
))

var registry = map[types.QueryKind]*Schema{
	types.KeywordQueryKind: keywordSchema,
	types.ShopQueryKind:    shopSchema,
	types.ProductQueryKind: productSchema,
	types.RankQueryKind:    rankSchema,
}

// For returns the contract for a query kind.
func For(kind types.QueryKind) (*Schema, error) {
	s, ok := registry[kind]
	if !ok {
		return nil, fmt.Errorf("schema: no contract for query kind %d", int(kind))
	}
	return s, nil
}

// MustFor is For for kinds known at compile time.
func MustFor(kind types.QueryKind) *Schema {
	s, err := For(kind)
	if err != nil {
		panic(err)
	}
	return s
}

// ByName looks a contract up by its name.
func ByName(name string) (*Schema, bool) {
	for _, s := range registry {
		if s.name == name {
			return s, true
		}
	}
	return nil, false
}

// All returns every registered contract in query kind order.
func All() []*Schema {
	out := make([]*Schema, 0, len(types.QueryKinds))
	for _, k := range types.QueryKinds {
		out = append(out, registry[k])
	}
	return out
}
