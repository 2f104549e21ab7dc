// Package testutil provides fixtures for meshgo tests.
//
// This package is intended for use in tests and benchmarks only.
//
// # Two Squares
//
// The canonical fixture is two unit squares sharing the edge (1,0)-(1,1):
//
//	f := testutil.TwoSquaresFactory(t, meshgo.WithTriangulator(testutil.TwoSquaresTriangulator()))
//	sys, err := f.Create(ctx)
//
// TwoSquaresOutput is the exact triangulation the built-in engine and the
// stub agree on, so reconstruction can be tested without the engine.
//
// # Random Point Sets
//
//	rng := testutil.NewRNG(seed)
//	pts := rng.Points(100, 0, 10)
package testutil
