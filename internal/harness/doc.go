// Package harness runs scenario files against the generator.
//
// # Scenario Format
//
//	name: pointmass_ceiling
//	description: "Point mass with a position ceiling"
//	problem: ../problems/pointmass.cue
//	expect:
//	  layout:
//	    steps: 2
//	    trajectory_size: 4
//	    inequalities: 1
//	  contains:
//	    - "ci = Q(2) - 5;"
//	  not_contains:
//	    - "AE = (["
//
// The problem path is resolved relative to the scenario file. Layout keys
// are the JSON names of nlp.Layout's integer fields; only listed keys are
// checked. A scenario may instead expect generation to fail:
//
//	expect:
//	  error: "schema violation"
//
// # Golden Files
//
// RunWithGolden compares the generated program text against
// testdata/golden/<name>.golden. Regenerate with:
//
//	go test ./internal/harness -update
package harness
