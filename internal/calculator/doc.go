// Package calculator is the loading optimisation engine. It aggregates package
// volume and weight, suggests the container from an ordered catalog that the
// packages fill most tightly, and measures how full a chosen container would
// be. Every function is pure and safe for concurrent use.
package calculator
