package main

import (
	"github.com/spf13/cobra"

	"marketlens/internal/profit"
)

func profitCmd() *cobra.Command {
	in := profit.DefaultInputs()
	cmd := &cobra.Command{
		Use:   "profit",
		Short: "Estimate per-order profit after Etsy fees",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printJSON(cmd, profit.Calculate(in))
		},
	}
	f := cmd.Flags()
	f.Float64Var(&in.SalePrice, "price", in.SalePrice, "sale price")
	f.Float64Var(&in.ShippingCharge, "shipping-charge", in.ShippingCharge, "shipping charged to the buyer")
	f.Float64Var(&in.ItemCost, "item-cost", in.ItemCost, "cost to make the item")
	f.Float64Var(&in.ShippingCost, "shipping-cost", in.ShippingCost, "actual shipping cost")
	f.Float64Var(&in.TransactionFeePct, "transaction-fee", in.TransactionFeePct, "transaction fee percent")
	f.Float64Var(&in.ProcessingFeePct, "processing-fee", in.ProcessingFeePct, "payment processing fee percent")
	f.Float64Var(&in.ProcessingFeeFixed, "processing-fixed", in.ProcessingFeeFixed, "fixed payment processing fee")
	f.BoolVar(&in.OffsiteAds, "offsite-ads", in.OffsiteAds, "order came through offsite ads")
	f.Float64Var(&in.OffsiteAdsFeePct, "offsite-ads-fee", in.OffsiteAdsFeePct, "offsite ads fee percent")
	f.Float64Var(&in.ListingFee, "listing-fee", in.ListingFee, "listing fee")
	return cmd
}
