// Package generator produces random passwords that satisfy a composition Policy.
//
// In ASCII mode the minimum digit, special and uppercase counts are emitted first,
// the remainder is filled from the printable ASCII range and the result is shuffled.
// In Unicode mode the minimums are ignored and every character is a random Unicode
// scalar value outside the control ranges.
package generator
