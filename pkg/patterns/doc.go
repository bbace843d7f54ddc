// Package patterns compiles rule pattern sources once and memoizes the result.
//
// A source is compiled as an ECMAScript-flavoured regular expression. When
// compilation fails the source is remembered as a fallback and matched as a
// plain substring for the rest of the process lifetime; an invalid pattern is
// never reported as an error. Entries are keyed by the literal source string
// and never evicted, so two rules with identical pattern text share one
// compiled matcher.
package patterns
