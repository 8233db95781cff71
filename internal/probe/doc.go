// Package probe inspects the delimiter layout of a corpus sample so the
// planner can pick a tokenizer policy.
//
// Types:
//   - Layout: token and gap statistics for the bytes examined.
//
// Functions:
//   - Inspect(buf) → Layout
//     Walks one complete buffer.
//   - Sample(fs, paths, limit, head) → Layout
//     Reads the first head bytes of up to limit files and merges their layouts.
//   - (Layout).SingleByteSafe() → bool
//     True when every observed gap after a token is exactly one byte.
package probe
