// Package history keeps the short most-recently-focused list behind the
// "jump back" shortcut. The store never holds more than Capacity entries and
// Cycle is its own inverse, so toggling twice returns to where it started.
package history
