package jobs

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSingleJob_RunsAndReportsLast(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)
	job := NewSingleJob(func(p int) (int, error) {
		return p * 2, nil
	}, func(p, r int, err error) {
		wg.Done()
	})

	job.Request(21)
	wg.Wait()

	result, ok := job.Last(21)
	require.True(t, ok)
	require.Equal(t, 42, result)
}

func TestSingleJob_SupersessionDropsStaleResult(t *testing.T) {
	release := make(chan struct{})
	var doneCount int
	var mu sync.Mutex
	done := make(chan struct{}, 2)

	job := NewSingleJob(func(p int) (int, error) {
		if p == 1 {
			<-release // hold the first request in flight
		}
		return p, nil
	}, func(p, r int, err error) {
		mu.Lock()
		doneCount++
		mu.Unlock()
		done <- struct{}{}
	})

	job.Request(1) // goes inflight, blocks on release
	time.Sleep(20 * time.Millisecond)
	job.Request(2) // queued as pending replacement while 1 is inflight

	close(release)

	<-done // only request 2 reports; the stale result of 1 is dropped

	_, ok := job.Last(2)
	require.True(t, ok)
	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, 1, doneCount)
}
