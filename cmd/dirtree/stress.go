package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/arkdir/dirtree/pkg/dirtree"
)

var (
	stressWorkers  int
	stressDuration time.Duration
	stressConcur   int64
)

var stressCmd = &cobra.Command{
	Use:   "stress",
	Short: "Fuzz concurrent list/create/remove/move against one tree until interrupted or --duration elapses",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(context.Background())
		if stressDuration > 0 {
			var durationCancel context.CancelFunc
			ctx, durationCancel = context.WithTimeout(ctx, stressDuration)
			defer durationCancel()
		}

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt)
		go func() {
			<-sigCh
			cancel()
		}()
		defer cancel()

		t := dirtree.New(dirtree.WithLogger(log))
		defer t.Close()

		// Pre-populate a small forest so movers and removers have
		// somewhere to act from the first tick.
		for _, p := range []string{"/a/", "/b/", "/a/x/", "/b/y/"} {
			_ = t.Create(p)
		}

		sem := semaphore.NewWeighted(stressConcur)
		group, gctx := errgroup.WithContext(ctx)

		var ops, errs int64
		for i := 0; i < stressWorkers; i++ {
			worker := i
			group.Go(func() error {
				rnd := rand.New(rand.NewSource(int64(worker) + time.Now().UnixNano()))
				for {
					select {
					case <-gctx.Done():
						return nil
					default:
					}
					if err := sem.Acquire(gctx, 1); err != nil {
						return nil
					}
					runOne(t, rnd)
					sem.Release(1)
					atomic.AddInt64(&ops, 1)
				}
			})
		}

		if err := group.Wait(); err != nil && err != context.Canceled {
			errs++
		}

		fmt.Printf("ran ~%d operations across %d workers (errs=%d)\n", ops, stressWorkers, errs)
		return nil
	},
}

func runOne(t *dirtree.Tree, rnd *rand.Rand) {
	paths := []string{"/a/", "/b/", "/a/x/", "/b/y/", "/a/x/q/", "/b/y/q/"}
	p := paths[rnd.Intn(len(paths))]
	switch rnd.Intn(4) {
	case 0:
		_, _ = t.List(p)
	case 1:
		_ = t.Create(p + "leaf/")
	case 2:
		_ = t.Remove(p + "leaf/")
	case 3:
		other := paths[rnd.Intn(len(paths))]
		_ = t.Move(p, other)
	}
}

func init() {
	stressCmd.Flags().IntVar(&stressWorkers, "workers", 8, "number of goroutines issuing operations concurrently")
	stressCmd.Flags().DurationVar(&stressDuration, "duration", 2*time.Second, "how long to run before stopping (0 = until interrupted)")
	stressCmd.Flags().Int64Var(&stressConcur, "concurrency", 8, "max in-flight operations")
}
