// Package match relates source keys to struct member names: it normalizes
// identifiers across naming conventions and ranks the members an unmatched
// key most likely meant.
package match
