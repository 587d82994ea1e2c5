// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// FormatError reports a page-mapping cell or table that cannot be parsed.
// Any FormatError is fatal: the run aborts rather than producing a
// partial packet set.
type FormatError struct {
	Input  string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("malformed page mapping %q: %s", e.Input, e.Reason)
}

// BoundsError reports a mapped mark-scheme page outside the mark-scheme
// document.
type BoundsError struct {
	Question string
	Page     int
	Count    int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("%s: mark scheme page %d out of range (document has %d pages)", e.Question, e.Page, e.Count)
}

// DiscoveryError reports a missing input file in the standard inputs tree.
type DiscoveryError struct {
	Kind string
	Dir  string
}

func (e *DiscoveryError) Error() string {
	return fmt.Sprintf("no %s found in %s", e.Kind, e.Dir)
}
