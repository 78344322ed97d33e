// Package feecalc computes marketplace seller fees for the fee calculator
// page. Rates follow each marketplace's published fee schedule.
package feecalc

import (
	"fmt"
	"strings"
)

const (
	processingFeePercent = 0.029
	processingFeeFixed   = 0.30
)

// Marketplaces the calculator supports.
var Marketplaces = []string{"stockx", "ebay", "depop", "mercari", "offerup", "poshmark"}

// Calculate returns the total fee for selling at salePrice on the given
// marketplace. Unknown marketplaces are rejected.
func Calculate(salePrice float64, marketplace string) (float64, error) {
	if salePrice < 0 {
		return 0, fmt.Errorf("sale price must not be negative")
	}
	switch strings.ToLower(marketplace) {
	case "stockx":
		return 0.095*salePrice + processingFee(salePrice), nil
	case "ebay":
		return 0.10*salePrice + 0.35, nil // includes insertion fee
	case "depop":
		return 0.10*salePrice + processingFee(salePrice), nil
	case "mercari":
		return 0.10*salePrice + processingFee(salePrice), nil
	case "offerup":
		return 0.129 * salePrice, nil
	case "poshmark":
		if salePrice < 15 {
			return 2.95, nil
		}
		return 0.20 * salePrice, nil
	default:
		return 0, fmt.Errorf("unsupported marketplace: %s", marketplace)
	}
}

func processingFee(salePrice float64) float64 {
	return processingFeePercent*salePrice + processingFeeFixed
}
