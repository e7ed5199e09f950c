// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/nimbusdb/perfmon"
	"github.com/nimbusdb/perfmon/session"
)

func main() {
	var (
		numTrans int
		global   bool
		samples  int
		interval time.Duration
		substr   string
	)

	root := &cobra.Command{
		Use:   "pmstat",
		Short: "Performance telemetry snapshot tool",
		Long: `pmstat attaches a client session to an in-process performance
telemetry engine, samples it at a fixed interval, and prints the delta
since the previous sample as human-readable text.

This binary exists to exercise the session lifecycle end to end; a real
deployment wires an *perfmon.Engine already populated by server
producers instead of constructing an empty one.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(numTrans, global, samples, interval, substr)
		},
	}

	root.Flags().IntVar(&numTrans, "num-trans", 8, "number of transaction slots to allocate")
	root.Flags().BoolVar(&global, "global", false, "watch system-wide stats instead of one transaction")
	root.Flags().IntVarP(&samples, "samples", "s", 5, "number of samples to print (0 = run until Ctrl-C)")
	root.Flags().DurationVarP(&interval, "interval", "i", time.Second, "sampling interval")
	root.Flags().StringVar(&substr, "filter", "", "only print statistics whose name contains this substring")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(numTrans int, global bool, samples int, interval time.Duration, substr string) error {
	eng, err := perfmon.NewEngine(perfmon.WithNumTrans(numTrans))
	if err != nil {
		return fmt.Errorf("initialize engine: %w", err)
	}
	defer eng.Finalize()

	thread := perfmon.NewThreadEntry(1)
	sess, err := session.New(eng, thread, global)
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer sess.Stop()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for i := 0; samples == 0 || i < samples; i++ {
		<-ticker.C
		if err := sess.DiffPrint(os.Stdout, substr); err != nil {
			return fmt.Errorf("diff_print: %w", err)
		}
		if err := sess.Reset(); err != nil {
			return fmt.Errorf("reset: %w", err)
		}
	}
	return nil
}
