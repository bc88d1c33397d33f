// Package diagnostic provides structured errors, warnings and notes
// collected while binding a schema to a worksheet or inferring a schema
// from one.
//
// Key capabilities:
//   - Optional nodes pruned because the worksheet lacks them
//   - Blank header cells tolerated during validation
//   - Gaps and renamed duplicates found by schema inference
package diagnostic
