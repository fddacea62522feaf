// Package application wires the container catalog, the calculator, the
// in-memory plan storage and the HTTP router into a ready-to-start server.
// The main package is left with flag parsing and shutdown handling.
package application
