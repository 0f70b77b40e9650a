// Package run implements the delivery run entity of the scheduling board
// domain. A run is an ordered group of committed orders representing one
// truck's planned stop sequence for a date. Which cell a run sits in is
// owned by the board aggregate; the entity owns the member sequence.
package run
