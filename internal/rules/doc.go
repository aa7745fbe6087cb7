// Package rules holds the built-in lint catalogue: the checkers, their
// fixers and the static table binding them to diagnostic codes.
package rules
