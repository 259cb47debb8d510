// Package batch provides the batch analytics core for QualSteam process
// logs: loading and validating the sensor table, segmenting it by batch
// identifier, and summarizing each batch's stable phase.
//
// # Architecture
//
// The package has two components, consumed in sequence:
//
// 1. Loader: reads a CSV or XLSX sensor log into a typed, validated table
// 2. Engine: derives batch identifiers, time windows and per-variable stats
//
// # Usage
//
// Load a table once per session:
//
//	loader := batch.NewLoader(logger)
//	table, err := loader.Load("data/df_stable_only.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Summarize a selected batch:
//
//	engine := batch.NewEngine(logger)
//	summary, err := engine.Summarize(ctx, table, "12")
//
// # Error Handling
//
// The loader and engine return sentinel errors (ErrSourceNotFound,
// ErrSchemaInvalid, ErrTimestampUnparseable, ErrBatchNotFound,
// ErrUnknownVariable) that callers match with errors.Is. Undefined
// statistics are signaled through VariableStats.SampleCount and NaN values
// rather than errors, so "no data" (N=0) and "degenerate" (N=1) cases stay
// distinguishable.
//
// # Concurrency
//
// The table is immutable after load and the engine is stateless, so
// concurrent summarization of different batches requires no locking.
package batch
