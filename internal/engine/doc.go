// Package engine turns primer pairs into hypervariable regions for one
// sequence record. It never imports app, writers, cli, or pipeline; keep it
// domain-only.
//
// Extract reports explicit outcomes per (record, pair); logging and output are
// left to the caller.
package engine
