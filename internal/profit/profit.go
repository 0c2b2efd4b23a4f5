// Package profit estimates per-order profit for an Etsy listing.
package profit

import "math"

// Inputs are money amounts in the shop currency and fees in percent.
type Inputs struct {
	SalePrice          float64 `json:"sale_price"`
	ShippingCharge     float64 `json:"shipping_charge"`
	ItemCost           float64 `json:"item_cost"`
	ShippingCost       float64 `json:"shipping_cost"`
	TransactionFeePct  float64 `json:"transaction_fee_pct"`
	ProcessingFeePct   float64 `json:"processing_fee_pct"`
	ProcessingFeeFixed float64 `json:"processing_fee_fixed"`
	OffsiteAds         bool    `json:"offsite_ads"`
	OffsiteAdsFeePct   float64 `json:"offsite_ads_fee_pct"`
	ListingFee         float64 `json:"listing_fee"`
}

type Breakdown struct {
	Revenue        float64 `json:"revenue"`
	ListingFee     float64 `json:"listing_fee"`
	TransactionFee float64 `json:"transaction_fee"`
	ProcessingFee  float64 `json:"processing_fee"`
	OffsiteAdsFee  float64 `json:"offsite_ads_fee"`
	TotalFees      float64 `json:"total_fees"`
	TotalCost      float64 `json:"total_cost"`
	Profit         float64 `json:"profit"`
	MarginPct      float64 `json:"margin_pct"`
}

// DefaultInputs mirrors Etsy's standard US fee schedule.
func DefaultInputs() Inputs {
	return Inputs{
		SalePrice:          25,
		ShippingCharge:     5,
		ItemCost:           5,
		ShippingCost:       5,
		TransactionFeePct:  6.5,
		ProcessingFeePct:   3,
		ProcessingFeeFixed: 0.25,
		OffsiteAdsFeePct:   12,
		ListingFee:         0.20,
	}
}

// Calculate applies every percentage fee to revenue (sale price plus
// shipping charge). Margin is 0 when revenue is 0.
func Calculate(in Inputs) Breakdown {
	revenue := in.SalePrice + in.ShippingCharge
	b := Breakdown{
		Revenue:        round2(revenue),
		ListingFee:     round2(in.ListingFee),
		TransactionFee: round2(revenue * in.TransactionFeePct / 100),
		ProcessingFee:  round2(revenue*in.ProcessingFeePct/100 + in.ProcessingFeeFixed),
	}
	if in.OffsiteAds {
		b.OffsiteAdsFee = round2(revenue * in.OffsiteAdsFeePct / 100)
	}
	b.TotalFees = round2(b.ListingFee + b.TransactionFee + b.ProcessingFee + b.OffsiteAdsFee)
	b.TotalCost = round2(in.ItemCost + in.ShippingCost + b.TotalFees)
	b.Profit = round2(revenue - in.ItemCost - in.ShippingCost - b.TotalFees)
	if revenue != 0 {
		b.MarginPct = round2(b.Profit / revenue * 100)
	}
	return b
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
