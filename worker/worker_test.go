package worker

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBaseJobSkipsOverlappingRounds(t *testing.T) {
	var (
		rounds  int
		release = make(chan struct{})
		started = make(chan struct{})
	)

	job := &BaseJob{Cron: NewCron("Asia/Shanghai")}
	job.OnWork = func() error {
		rounds++
		if rounds == 1 {
			close(started)
			<-release
		}
		return ErrEOF
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		job.Run()
	}()

	<-started
	job.Run()
	close(release)
	wg.Wait()

	assert.Equal(t, 1, rounds)

	job.Run()
	assert.Equal(t, 2, rounds)
}

func TestBaseJobSurvivesErrors(t *testing.T) {
	job := &BaseJob{Cron: NewCron("nowhere")}
	calls := 0
	job.OnWork = func() error {
		calls++
		return errors.New("boom")
	}

	job.Run()
	job.Run()
	assert.Equal(t, 2, calls)
	assert.Nil(t, job.Start())
	assert.Nil(t, job.Stop())
}
