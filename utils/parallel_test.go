package utils

import (
	"context"
	"errors"
	"sync"
	"testing"

	"go.viam.com/test"
)

func TestGroupWorkParallelCoversRange(t *testing.T) {
	for _, tc := range []struct {
		total, groups, expectedGroups int
	}{
		{10, 3, 3},
		{3, 8, 3},
		{7, 1, 1},
		{5, 0, min(5, ParallelFactor)},
	} {
		var mu sync.Mutex
		seen := make([]int, tc.total)
		groups := map[int]bool{}
		err := GroupWorkParallel(context.Background(), tc.total, tc.groups, func(ctx context.Context, groupNum, from, to int) error {
			mu.Lock()
			defer mu.Unlock()
			groups[groupNum] = true
			for i := from; i < to; i++ {
				seen[i]++
			}
			return nil
		})
		test.That(t, err, test.ShouldBeNil)
		test.That(t, len(groups), test.ShouldEqual, tc.expectedGroups)
		for _, count := range seen {
			test.That(t, count, test.ShouldEqual, 1)
		}
	}
}

func TestGroupWorkParallelError(t *testing.T) {
	boom := errors.New("boom")
	err := GroupWorkParallel(context.Background(), 4, 4, func(ctx context.Context, groupNum, from, to int) error {
		if groupNum == 2 {
			return boom
		}
		return nil
	})
	test.That(t, err, test.ShouldEqual, boom)
}

func TestGroupWorkParallelEmpty(t *testing.T) {
	called := false
	err := GroupWorkParallel(context.Background(), 0, 4, func(ctx context.Context, groupNum, from, to int) error {
		called = true
		return nil
	})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, called, test.ShouldBeFalse)
}

func TestMimeTypeFromPath(t *testing.T) {
	test.That(t, MimeTypeFromPath("image.JPG"), test.ShouldEqual, MimeTypeJPEG)
	test.That(t, MimeTypeFromPath("/tmp/a.qoi"), test.ShouldEqual, MimeTypeQOI)
	test.That(t, MimeTypeFromPath("notes.txt"), test.ShouldEqual, "")
}
