// Package networth reconstructs the day by day net worth of a brokerage
// account from its statement export.
//
// The statement carries two ledgers: "Closed Positions" (realized trades) and
// "Account Activity" (deposits, opens, closes, splits). The engine replays
// the activity into daily cumulative positions, resolves the broker's
// instrument identifiers to market-data symbols, fetches USD close prices,
// and combines everything into one daily evolution of per-instrument values,
// realized profit, deposits and totals.
//
// The reconstruction is best effort: instruments that cannot be resolved or
// priced are logged and excluded, never fatal. Only a structurally broken
// statement aborts a run.
package networth
