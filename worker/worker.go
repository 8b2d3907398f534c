package worker

import (
	"errors"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// ErrEOF nothing left to do in this round
var ErrEOF = errors.New("EOF")

// IJob cron driven job
type IJob interface {
	Start() error
	Run()
	Stop() error
}

type OnWork func() error

type BaseJob struct {
	Cron    *cron.Cron
	OnWork  OnWork
	running int32
}

// NewCron cron in location, unknown locations fall back to UTC
func NewCron(location string) *cron.Cron {
	l, err := time.LoadLocation(location)
	if err != nil {
		l = time.UTC
	}

	return cron.New(cron.WithLocation(l))
}

func (job *BaseJob) Start() error {
	job.Cron.Start()
	return nil
}

func (job *BaseJob) Stop() error {
	<-job.Cron.Stop().Done()
	return nil
}

// Run skip the round if the previous one is still running
func (job *BaseJob) Run() {
	if !atomic.CompareAndSwapInt32(&job.running, 0, 1) {
		return
	}
	defer atomic.StoreInt32(&job.running, 0)

	if err := job.OnWork(); err != nil && !errors.Is(err, ErrEOF) {
		logrus.WithError(err).Debugln("job round failed")
	}
}
