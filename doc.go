// Package taxbook computes, for every UK tax year, the assets held, the
// income and expenses, and the income tax of a single owner, from a
// chronological ledger of transactions between accounts.
//
// The core functionalities include:
//   - Ledger: transactions between declared accounts, read from JSONL files
//     and scanned in date order.
//   - Market data: price histories to value priced assets, and interest
//     rates for savings and bonds.
//   - Tax years: the thresholds and rates of each year, read from YAML.
//   - Reports: an AssetReport, an IncomeReport and a TaxReport per year,
//     grouped in a ReportSet. Each year opens with the closing positions of
//     the previous one in a ReportSetChain.
//
// Reports keep their figures in buckets, ordered by kind (Detail, Summary,
// Total, Static), then rank, then name.
//
// This package serves as the foundational logic for the `tb` command-line
// tool.
package taxbook
