package utils

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ParallelFactor controls the max level of parallelization. This might be useful
// to set in tests where too much parallelism actually slows tests down in
// aggregate.
var ParallelFactor = runtime.GOMAXPROCS(0)

func init() {
	if ParallelFactor <= 0 {
		ParallelFactor = 1
	}
}

// GroupWorkFunc handles the half-open range [from, to) of one group.
type GroupWorkFunc func(ctx context.Context, groupNum, from, to int) error

// GroupWorkParallel splits totalSize items into at most numGroups contiguous groups and
// runs them concurrently. The last group absorbs the remainder. The first error cancels
// the context handed to the remaining groups.
func GroupWorkParallel(ctx context.Context, totalSize, numGroups int, groupWork GroupWorkFunc) error {
	if totalSize <= 0 {
		return ctx.Err()
	}
	if numGroups <= 0 {
		numGroups = ParallelFactor
	}
	if numGroups > totalSize {
		numGroups = totalSize
	}
	groupSize := totalSize / numGroups

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(numGroups)
	for groupNum := 0; groupNum < numGroups; groupNum++ {
		from := groupSize * groupNum
		to := from + groupSize
		if groupNum == numGroups-1 {
			to = totalSize
		}
		groupNum := groupNum
		group.Go(func() error {
			return groupWork(groupCtx, groupNum, from, to)
		})
	}
	return group.Wait()
}
