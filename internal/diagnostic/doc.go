// Package diagnostic provides structured errors, warnings, and
// "why this did not map" explanations for the object mapper.
//
// Key capabilities:
//   - Failed mappings with the causing error (no resolver, missing or cyclic dependency)
//   - Rejected scalar coercions
//   - Unmatched source keys with "did you mean" suggestions
package diagnostic
