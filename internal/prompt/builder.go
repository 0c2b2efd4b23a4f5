// Package prompt turns analysis queries into the text prompts sent to the
// model. Prompts are pure functions of their input.
package prompt

import (
	"fmt"

	"marketlens/internal/schema"
	"marketlens/internal/types"
)

const outputFormat = "Respond with ONLY the raw JSON object. Do not wrap it in markdown fences such as ```json and do not add any text before or after it."

const noLiveData = "You cannot access live Etsy data. Produce a realistic, hypothetical analysis."

// Build renders the prompt for q. Invalid queries return an error wrapping
// types.ErrEmptyInput.
func Build(q types.Query) (string, error) {
	if err := q.Validate(); err != nil {
		return "", err
	}
	switch q.Kind {
	case types.KeywordQueryKind:
		return Keyword(q.Keyword)
	case types.ShopQueryKind:
		return Shop(q.ShopName)
	case types.ProductQueryKind:
		return Product(q.Product)
	case types.RankQueryKind:
		return Rank(q.Keyword, q.Product)
	}
	return "", fmt.Errorf("prompt: unsupported query kind %v", q.Kind)
}

func Keyword(keyword string) (string, error) {
	return Template{
		Role:    "You are an expert Etsy SEO and market research analyst.",
		Task:    fmt.Sprintf("Analyze the following keyword for a seller on Etsy: \"%s\".", keyword),
		Schema:  schema.MustFor(types.KeywordQueryKind),
		Example: KeywordExample(),
		Guidance: []string{
			"Base the analysis on typical e-commerce and Etsy trends.",
			"historical_data covers the last 12 months in chronological order and shows realistic fluctuation such as seasonal peaks.",
			"competition_score runs from 0 (no competition) to 100 (saturated).",
			"Suggest up to 13 tags; Etsy limits each tag to 20 characters.",
		},
		OutputFormat: outputFormat,
	}.Render()
}

func Shop(shopName string) (string, error) {
	return Template{
		Role: "You are an expert Etsy business analyst.",
		Task: fmt.Sprintf("Analyze the hypothetical Etsy shop named: \"%s\".", shopName),
		Limitations: []string{
			noLiveData,
			"Base the analysis on what the shop name suggests about its niche.",
		},
		Schema:  schema.MustFor(types.ShopQueryKind),
		Example: ShopExample(shopName),
		Guidance: []string{
			"shop_name repeats the shop name exactly as given.",
			"estimated_monthly_sales is a range, e.g. 50-100 sales.",
		},
		OutputFormat: outputFormat,
	}.Render()
}

func Product(description string) (string, error) {
	return Template{
		Role: "You are an expert Etsy listing optimizer and data analyst.",
		Task: fmt.Sprintf("Analyze the following Etsy product concept: \"%s\".", description),
		Limitations: []string{
			noLiveData,
			"Even if a URL is provided you cannot open it; derive the product concept from the text alone.",
		},
		Schema:  schema.MustFor(types.ProductQueryKind),
		Example: ProductExample(description),
		Guidance: []string{
			"product_concept repeats the product concept exactly as given.",
			"Describe a successful listing of this type in a moderately competitive niche.",
			"Each historical_data series covers the last 12 months in chronological order.",
			"tags_analysis scores run from 0 to 100.",
		},
		OutputFormat: outputFormat,
	}.Render()
}

func Rank(keyword, description string) (string, error) {
	return Template{
		Role: "You are an expert Etsy SEO and search ranking analyst.",
		Task: fmt.Sprintf("Estimate the search ranking potential of an Etsy product for a target keyword.\nProduct Description: \"%s\"\nTarget Keyword: \"%s\"", description, keyword),
		Limitations: []string{
			noLiveData,
			"Assume the product has good photos, a complete shop profile and positive reviews.",
		},
		Schema:  schema.MustFor(types.RankQueryKind),
		Example: RankExample(),
		Guidance: []string{
			"estimated_rank names a page and position range, e.g. Page 1, Top 10 or Page 3, spots 20-30.",
			"rank_explanation weighs keyword relevance, competition and likely listing quality.",
			"Give at least three actionable improvement suggestions.",
		},
		OutputFormat: outputFormat,
	}.Render()
}
