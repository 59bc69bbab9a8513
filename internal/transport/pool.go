// Package transport wires the differ to NATS: a worker pool drains
// snapshot messages concurrently, feeds them through a lob.Parser, and
// republishes the resulting tick-by-tick events.
package transport

import (
	"github.com/rs/zerolog"
	tomb "gopkg.in/tomb.v2"
)

// taskChanSize bounds how many pending jobs the pool will buffer before
// a producer blocks, matching the teacher's TASK_CHAN_SIZE convention.
const taskChanSize = 100

// WorkerFunction processes one task; returning a non-nil error is
// fatal and brings down the owning tomb.
type WorkerFunction func(t *tomb.Tomb, task any) error

// Pool is a fixed-size worker pool supervised by a tomb.Tomb, adapted
// from the teacher's internal worker pool to drive arbitrary task
// payloads (here, raw NATS messages) rather than net.Conn values.
type Pool struct {
	n     int
	tasks chan any
	log   zerolog.Logger
}

// NewPool constructs a Pool with n workers and a bounded task queue.
func NewPool(n int, log zerolog.Logger) Pool {
	return Pool{
		n:     n,
		tasks: make(chan any, taskChanSize),
		log:   log,
	}
}

// AddTask enqueues a task for a free worker to pick up.
func (p *Pool) AddTask(task any) {
	p.tasks <- task
}

// Setup spins up the pool's workers under t, restarting the count of
// live goroutines as they exit so the pool stays at capacity until t
// starts dying.
func (p *Pool) Setup(t *tomb.Tomb, work WorkerFunction) {
	p.log.Info().Int("workers", p.n).Msg("starting worker pool")
	active := 0
	for {
		select {
		case <-t.Dying():
			return
		default:
			if active < p.n {
				t.Go(func() error {
					err := p.worker(t, work)
					active--
					return err
				})
				active++
			}
		}
	}
}

func (p *Pool) worker(t *tomb.Tomb, work WorkerFunction) error {
	select {
	case <-t.Dying():
		return nil
	case task := <-p.tasks:
		if err := work(t, task); err != nil {
			p.log.Error().Err(err).Msg("worker exiting")
			return err
		}
	}
	return nil
}
