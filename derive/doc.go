// Package derive mines numeric bounds and units out of captured comment text
// and turns them into metadata directives.
//
// It is the second stage of idldoc and runs over the output of
// [annotate.Scanner.Scan]. For every documentation directive it searches the
// comment text behind it for three optional tokens, in any order:
//
//	maxInclusive=<number>  minInclusive=<number>  units=<words>
//
// and inserts one line right after the directive, at the same indentation:
//
//	@doc("maxInclusive=500 minInclusive=0 units=meters")
//	@range(min=0, max=500) @unit("meters")
//
// Both bounds produce @range, a single bound produces @max or @min. Units run
// until the next "key=" token or the end of the text, so they may contain
// spaces. A "/" is part of the unit, so "units=m/s" yields @unit("m/s"). Units
// equal to a sentinel ("N/A" and "None" by default) are ignored.
package derive
