// Package writers turns extraction reports into serialized outputs.
//
// Design:
//   - Writers own all presentation knowledge (FASTA headers, GFF3 attributes,
//     coordinate base) and the per-record log lines.
//   - Engine stays domain-only; Pipeline stays orchestration-only.
//   - Output files are created up front by Create so a refused or unwritable
//     destination fails before any input is read.
package writers
