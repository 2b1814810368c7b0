// Package config compiles CUE problem files into generator configuration.
//
// A problem file declares one top-level problem struct:
//
//	problem: {
//		name:    "slip"
//		app:     "slip"
//		horizon: 4
//		steps:   15
//		outputs: ["cms", "ds", "qs", "qg"]
//		options: [
//			{key: "Algorithm", value: "sqp"},
//			{key: "MaxIter", value: 400},
//		]
//		settings: {
//			len_rest: 2.5
//		}
//	}
//
// horizon defaults to 10 and outputs default to Qf, fval, exitFlag and
// output. settings is handed to the application unchanged.
//
// CompileProblem reports the first structural error as a *CompileError.
// Validate then returns every semantic problem at once.
package config
