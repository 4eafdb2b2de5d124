// SPDX-License-Identifier: EPL-2.0

// Package engine is a small pull-based audio graph.
//
// A Context owns the output format and a Backend. Nodes connected to the
// Context are mixed by Render, which the backend drives through Read:
//
//	ctx, _ := engine.NewContext(engine.DefaultConfig(), &otobackend.Backend{})
//	src, _ := engine.NewBufferSource(ctx, buf)
//	an := engine.NewAnalyser(ctx, src)
//	gain := engine.NewGain(an)
//	_ = ctx.Connect(gain)
//	_ = src.Start(0)
//
// Parameters (PlaybackRate, Gain) are atomics and can be changed from any
// goroutine while audio renders. With NullBackend nothing pulls, and the
// caller renders by hand, which keeps tests deterministic.
package engine
