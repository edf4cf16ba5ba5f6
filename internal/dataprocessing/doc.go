// Package dataprocessing implements the shelter intake/outcome cleaning
// pipeline. It takes the raw CSV export and produces the cleaned table the
// dashboard reads.
//
// # Architecture
//
// The pipeline is a fixed linear composition of stages, each a total
// function from input table to output table:
//
//	CSV File → Loader → Normalizer → Type Coercer → Feature Deriver → Validator → Dataset
//
// 1. Loader: reads the CSV into a RawTable, no transformation logic
// 2. Normalizer: snake_case headers, trimmed/title-cased text, typo fixes,
// "Unknown" default fill
// 3. Type Coercer: date parsing and tri-state boolean coercion into
// typed AnimalRecords
// 4. Feature Deriver: age at intake, age category, sex split, stay
// duration, outcome group
// 5. Validator: nulls out-of-range derived values, never drops rows
//
// # Usage
//
//	p := dataprocessing.NewPipeline(logger)
//	ds, err := p.Run(ctx, "animal-shelter-intakes-and-outcomes.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Error Handling
//
// A missing expected column is fatal at load time. Everything after the
// schema check recovers locally: a value that fails to parse becomes a
// missing value and the row is kept. The pipeline is idempotent; running
// it twice over the same input yields an identical table.
package dataprocessing
