package catalog

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Baseline reference data. Values are snapshots used until the first live
// quote arrives and whenever upstream providers are unavailable.

var bistEquities = []Instrument{
	equity("ASELS", "Aselsan Elektronik", "Defense", "45.80", "2.3", "8200000", "41200000000", Rise, 78, "Very Positive"),
	equity("TUPRS", "Tüpraş", "Energy", "189.50", "1.8", "5100000", "127300000000", Rise, 72, "Positive"),
	equity("THYAO", "Türk Hava Yolları", "Airlines", "312.25", "-0.5", "12300000", "215700000000", Watch, 65, "Neutral"),
	equity("EREGL", "Ereğli Demir Çelik", "Steel", "56.40", "3.2", "15800000", "89400000000", Rise, 81, "Very Positive"),
	equity("AKBNK", "Akbank", "Banking", "67.85", "1.5", "22400000", "176400000000", Rise, 76, "Positive"),
	equity("GARAN", "Garanti Bankası", "Banking", "124.30", "0.3", "18700000", "312500000000", Watch, 68, "Neutral"),
	equity("SAHOL", "Sabancı Holding", "Holding", "89.60", "2.1", "9300000", "223800000000", Rise, 74, "Positive"),
	equity("KCHOL", "Koç Holding", "Holding", "198.75", "2.8", "7100000", "496300000000", Rise, 79, "Very Positive"),
	equity("TCELL", "Turkcell", "Telecom", "98.45", "-0.8", "11200000", "217600000000", Watch, 62, "Neutral"),
	equity("PETKM", "Petkim", "Chemicals", "23.15", "-1.9", "6800000", "23100000000", Risky, 45, "Negative"),
	equity("ARCLK", "Arçelik", "Electronics", "134.20", "0.5", "4900000", "98400000000", Watch, 66, "Neutral"),
	equity("BIMAS", "BIM Birleşik Mağazalar", "Retail", "456.50", "3.7", "3200000", "278200000000", Rise, 83, "Very Positive"),
	equity("ISCTR", "İş Bankası", "Banking", "14.85", "1.9", "28500000", "148500000000", Rise, 77, "Positive"),
	equity("SISE", "Şişe Cam", "Glass", "78.30", "0.2", "6700000", "58700000000", Watch, 64, "Neutral"),
	equity("TOASO", "Tofaş Oto", "Automotive", "215.40", "2.5", "4300000", "107700000000", Rise, 75, "Positive"),
	equity("ENKAI", "Enka İnşaat", "Construction", "67.20", "-0.3", "5800000", "47300000000", Watch, 61, "Neutral"),
	equity("KOZAL", "Koza Altın", "Mining", "34.90", "-2.1", "7200000", "35700000000", Risky, 48, "Negative"),
	equity("FROTO", "Ford Otosan", "Automotive", "685.50", "3.1", "2800000", "342800000000", Rise, 80, "Very Positive"),
	equity("TAVHL", "TAV Havalimanları", "Transportation", "198.20", "0.7", "3900000", "49600000000", Watch, 67, "Neutral"),
	equity("SODA", "Soda Sanayii", "Chemicals", "12.45", "-1.6", "4100000", "14900000000", Risky, 42, "Negative"),
}

var cryptoAssets = []Instrument{
	coin("BTC", "Bitcoin", "Store of Value", "95234.56", "5.2", "45200000000", "1870000000000", Rise, 78, "Bullish"),
	coin("ETH", "Ethereum", "Smart Contracts", "3456.78", "3.8", "23100000000", "415600000000", Rise, 72, "Bullish"),
	coin("BNB", "Binance Coin", "Exchange Token", "612.34", "-1.2", "2100000000", "94300000000", Watch, 58, "Neutral"),
	coin("SOL", "Solana", "Smart Contracts", "198.45", "8.5", "4500000000", "91200000000", Rise, 82, "Very Bullish"),
	coin("XRP", "Ripple", "Payments", "2.34", "-2.1", "8900000000", "132800000000", Risky, 45, "Bearish"),
	coin("ADA", "Cardano", "Smart Contracts", "1.02", "1.5", "1800000000", "35700000000", Watch, 62, "Neutral"),
	coin("AVAX", "Avalanche", "Smart Contracts", "43.21", "4.3", "892000000", "17200000000", Rise, 68, "Bullish"),
	coin("DOT", "Polkadot", "Interoperability", "7.89", "-0.8", "456000000", "11300000000", Watch, 55, "Neutral"),
	coin("MATIC", "Polygon", "Scaling", "0.98", "6.7", "678000000", "9800000000", Rise, 75, "Bullish"),
	coin("LINK", "Chainlink", "Oracles", "23.45", "2.9", "1200000000", "14500000000", Watch, 64, "Neutral"),
	coin("UNI", "Uniswap", "DeFi", "12.67", "-3.4", "345000000", "7600000000", Risky, 48, "Bearish"),
	coin("ATOM", "Cosmos", "Interoperability", "9.87", "1.2", "234000000", "3800000000", Watch, 60, "Neutral"),
}

func equity(symbol, name, sector, price, change, volume, marketCap string, p Prediction, confidence int, sentiment string) Instrument {
	return entry(Equity, symbol, name, sector, price, change, volume, marketCap, p, confidence, sentiment)
}

func coin(symbol, name, sector, price, change, volume, marketCap string, p Prediction, confidence int, sentiment string) Instrument {
	return entry(Crypto, symbol, name, sector, price, change, volume, marketCap, p, confidence, sentiment)
}

func entry(c Category, symbol, name, sector, price, change, volume, marketCap string, p Prediction, confidence int, sentiment string) Instrument {
	return Instrument{
		Symbol:     symbol,
		Name:       name,
		Category:   c,
		Sector:     sector,
		Price:      decimal.RequireFromString(price),
		Change:     decimal.RequireFromString(change),
		Volume:     decimal.RequireFromString(volume),
		MarketCap:  decimal.RequireFromString(marketCap),
		Prediction: p,
		Confidence: confidence,
		Sentiment:  sentiment,
	}
}

// Default returns the built-in catalog: BIST equities followed by crypto assets.
func Default() *Catalog {
	entries := make([]Instrument, 0, len(bistEquities)+len(cryptoAssets))
	entries = append(entries, bistEquities...)
	entries = append(entries, cryptoAssets...)
	c, err := New(entries)
	if err != nil {
		panic(fmt.Sprintf("built-in catalog is invalid: %v", err))
	}
	return c
}
