// Package mock provides test doubles for redline interfaces.
package mock

import "github.com/fwojciec/redline"

// Compile-time interface verification.
var _ redline.Differ = (*Differ)(nil)

// Differ is a mock implementation of redline.Differ.
type Differ struct {
	ComputeFn func(oldText, newText string) []redline.Change
}

func (d *Differ) Compute(oldText, newText string) []redline.Change {
	return d.ComputeFn(oldText, newText)
}
