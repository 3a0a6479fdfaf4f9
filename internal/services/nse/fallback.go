package nse

import drepo "BreadthPulse/internal/domain/repository"

// Fallback returns a fixed large-cap universe used when the constituent
// archive cannot be reached.
func Fallback() []drepo.Listing {
	return []drepo.Listing{
		{Symbol: "RELIANCE", Sector: "Oil & Gas"},
		{Symbol: "TCS", Sector: "IT"},
		{Symbol: "HDFCBANK", Sector: "Banks"},
		{Symbol: "INFY", Sector: "IT"},
		{Symbol: "HINDUNILVR", Sector: "FMCG"},
		{Symbol: "ICICIBANK", Sector: "Banks"},
		{Symbol: "KOTAKBANK", Sector: "Banks"},
		{Symbol: "SBIN", Sector: "Banks"},
		{Symbol: "BHARTIARTL", Sector: "Telecom"},
		{Symbol: "BAJFINANCE", Sector: "Finance"},
		{Symbol: "ITC", Sector: "FMCG"},
		{Symbol: "ASIANPAINT", Sector: "Paints"},
		{Symbol: "MARUTI", Sector: "Auto"},
		{Symbol: "AXISBANK", Sector: "Banks"},
		{Symbol: "LT", Sector: "Construction"},
		{Symbol: "TITAN", Sector: "Consumer Goods"},
		{Symbol: "SUNPHARMA", Sector: "Pharma"},
		{Symbol: "ULTRACEMCO", Sector: "Cement"},
	}
}
