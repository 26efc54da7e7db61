// Package pipeline streams FASTA records through an Extractor on a pool of
// workers and hands the reports back in input order.
//
// The only contract to implement is Extractor (Extract).
// This keeps the pipeline swappable and testable.
package pipeline
