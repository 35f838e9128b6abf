// Package proc runs CSP processes: sequential bodies composed in
// parallel or in sequence, each mapped to its own goroutine.
//
// A Process is anything with a Run method; Func adapts a plain function.
// Par runs its processes concurrently and joins on the completion of all
// of them; Seq runs them one after another. Both are themselves
// Processes, so networks compose:
//
//	proc.Par(
//	    proc.Func(generate),
//	    proc.Seq(proc.Func(warmup), proc.Func(serve)),
//	    proc.Func(collect),
//	).Run()
//
// The package never schedules channel operations, it only starts and
// joins process bodies; processes synchronize exclusively through their
// channel ends. Shutdown of a running network is cooperative, by
// poisoning its channels, not by killing goroutines.
//
// Manager supervises named, long-lived processes with start/stop/wait
// lifecycle, structured logging, and lifecycle metrics.
package proc
