package networth

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// RuleTable drives symbol resolution: a declarative map from broker
// identifiers to market-data symbols. It replaces what used to be a large
// branching match, so new listings are data changes, not code changes.
type RuleTable struct {
	// Renames maps a broker ticker to a market symbol regardless of the
	// listing currency: index tickers and corporate renames.
	Renames map[string]string `yaml:"renames"`

	// Currencies holds one rule per non-USD listing currency. A currency or
	// ticker absent from the table resolves to the unresolved marker.
	Currencies map[string]CurrencyRule `yaml:"currencies"`
}

// CurrencyRule describes how instruments listed in one currency map to
// market-data symbols and to USD.
type CurrencyRule struct {
	// Pair is the FX symbol quoting one major unit of the currency in USD,
	// e.g. "EURUSD=X".
	Pair string `yaml:"pair"`

	// Unit is the number of quoted price units per major currency unit:
	// 100 for pence (GBX). Zero means 1.
	Unit float64 `yaml:"unit,omitempty"`

	// Tickers maps the broker ticker to the market symbol with its exchange
	// suffix, e.g. "MC" -> "MC.PA".
	Tickers map[string]string `yaml:"tickers"`
}

// DefaultRules returns the built-in rule table covering the listings seen in
// real statement exports so far.
func DefaultRules() RuleTable {
	return RuleTable{
		Renames: map[string]string{
			// index tickers
			"SPX500":  "^GSPC",
			"NSDQ100": "^NDX",
			"DJ30":    "^DJI",
			"UK100":   "^FTSE",
			"GER40":   "^GDAXI",
			"FRA40":   "^FCHI",
			"JPN225":  "^N225",
			// corporate renames
			"FB": "META",
			"SQ": "XYZ",
		},
		Currencies: map[string]CurrencyRule{
			"EUR": {
				Pair: "EURUSD=X",
				Tickers: map[string]string{
					"MC":    "MC.PA",
					"AIR":   "AIR.PA",
					"OR":    "OR.PA",
					"BNP":   "BNP.PA",
					"TTE":   "TTE.PA",
					"ENEL":  "ENEL.MI",
					"ENI":   "ENI.MI",
					"ISP":   "ISP.MI",
					"RACE":  "RACE.MI",
					"SAP":   "SAP.DE",
					"BMW":   "BMW.DE",
					"SIE":   "SIE.DE",
					"ADS":   "ADS.DE",
					"ASML":  "ASML.AS",
					"PHIA":  "PHIA.AS",
					"AD":    "AD.AS",
					"ITX":   "ITX.MC",
					"IBE":   "IBE.MC",
				},
			},
			"GBX": {
				Pair: "GBPUSD=X",
				Unit: 100, // prices quoted in pence
				Tickers: map[string]string{
					"RR.l":   "RR.L",
					"BP.l":   "BP.L",
					"BARC.l": "BARC.L",
					"LLOY.l": "LLOY.L",
					"VOD.l":  "VOD.L",
					"HSBA.l": "HSBA.L",
					"AZN.l":  "AZN.L",
					"SHEL.l": "SHEL.L",
				},
			},
			"CHF": {
				Pair: "CHFUSD=X",
				Tickers: map[string]string{
					"NESN": "NESN.SW",
					"NOVN": "NOVN.SW",
					"ROG":  "ROG.SW",
					"UBSG": "UBSG.SW",
				},
			},
			"DKK": {
				Pair: "DKKUSD=X",
				Tickers: map[string]string{
					"NOVO-B":   "NOVO-B.CO",
					"MAERSK-B": "MAERSK-B.CO",
				},
			},
			"SEK": {
				Pair: "SEKUSD=X",
				Tickers: map[string]string{
					"VOLV-B": "VOLV-B.ST",
					"ERIC-B": "ERIC-B.ST",
				},
			},
			"NOK": {
				Pair: "NOKUSD=X",
				Tickers: map[string]string{
					"EQNR": "EQNR.OL",
					"DNB":  "DNB.OL",
				},
			},
		},
	}
}

// LoadRules reads a YAML rule table.
func LoadRules(r io.Reader) (RuleTable, error) {
	var t RuleTable
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil {
		return RuleTable{}, fmt.Errorf("cannot decode rule table: %w", err)
	}
	return t, nil
}

// LoadRulesFile reads a YAML rule table from a file.
func LoadRulesFile(path string) (RuleTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return RuleTable{}, fmt.Errorf("cannot open rule table %q: %w", path, err)
	}
	defer f.Close()
	t, err := LoadRules(f)
	if err != nil {
		return RuleTable{}, fmt.Errorf("in %q: %w", path, err)
	}
	return t, nil
}

// Merge overlays o on top of t and returns the result: o's entries win,
// t's entries survive where o is silent. Use it to extend DefaultRules with
// a user file.
func (t RuleTable) Merge(o RuleTable) RuleTable {
	out := RuleTable{
		Renames:    make(map[string]string, len(t.Renames)+len(o.Renames)),
		Currencies: make(map[string]CurrencyRule, len(t.Currencies)+len(o.Currencies)),
	}
	for k, v := range t.Renames {
		out.Renames[k] = v
	}
	for k, v := range o.Renames {
		out.Renames[k] = v
	}
	for cur, rule := range t.Currencies {
		out.Currencies[cur] = rule.clone()
	}
	for cur, rule := range o.Currencies {
		base, ok := out.Currencies[cur]
		if !ok {
			out.Currencies[cur] = rule.clone()
			continue
		}
		if rule.Pair != "" {
			base.Pair = rule.Pair
		}
		if rule.Unit != 0 {
			base.Unit = rule.Unit
		}
		for k, v := range rule.Tickers {
			base.Tickers[k] = v
		}
		out.Currencies[cur] = base
	}
	return out
}

func (r CurrencyRule) clone() CurrencyRule {
	tickers := make(map[string]string, len(r.Tickers))
	for k, v := range r.Tickers {
		tickers[k] = v
	}
	return CurrencyRule{Pair: r.Pair, Unit: r.Unit, Tickers: tickers}
}
