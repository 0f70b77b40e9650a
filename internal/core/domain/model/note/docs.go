// Package note implements the sticky-note entity of the scheduling board
// domain. A note carries free text, a color tag, and a pin flag, and may be
// attached to at most one of: a cell (resource + date), an order, or a run.
package note
