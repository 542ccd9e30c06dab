// Package harness checks sorting backends against the properties every
// correct engine must have, plus those a stable, panic-safe one adds.
//
// # Checks
//
// Each check is a named function run once per backend. Checks sort
// generated patterns over a range of sizes and compare the output with the
// standard library, or drive the engine with adversarial comparators:
//   - comparators that panic at a random comparison
//   - comparators that count how often each element was compared
//   - comparators that violate strict total order in ten different ways
//
// A check that needs a property the backend does not advertise returns an
// error wrapping ErrSkipped.
//
// # Environment
//
// ApplyEnv reads the variables the CLI and tests honour:
//   - SEED: decimal seed for every pattern
//   - ONLY_CHECK_BASIC_EXCEPTION_SAFETY: do not require that a comparator
//     panic leaves every original element in place
//   - WRITE_LARGE_FAILURE: dump large mismatches as artifacts
//   - SORTCHECK_ARTIFACT_DIR: where artifacts are written
package harness
