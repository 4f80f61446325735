package scanner

import (
	"fmt"
	"runtime/debug"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/ilexum-group/browserscan/internal/utils"
)

// Task is a unit of work submitted to the pool.
type Task func()

// Pool runs tasks on a fixed set of goroutines fed by a bounded queue.
type Pool struct {
	queue     chan Task
	wg        sync.WaitGroup
	accepting atomic.Bool
	closeOnce sync.Once
}

// NewPool creates a pool with workers goroutines and a task queue of queueSize.
func NewPool(workers, queueSize int) *Pool {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}

	p := &Pool{queue: make(chan Task, queueSize)}
	p.accepting.Store(true)

	for i := 0; i < workers; i++ {
		go p.worker()
	}

	utils.LogDebug("Worker pool started", map[string]string{
		"workers":    strconv.Itoa(workers),
		"queue_size": strconv.Itoa(queueSize),
	})
	return p
}

// Submit enqueues a task. Returns false if the pool is stopped or the queue is full.
// wg.Add is called here (before enqueue) to prevent a race with Drain.
func (p *Pool) Submit(task Task) bool {
	if !p.accepting.Load() {
		return false
	}

	p.wg.Add(1)
	select {
	case p.queue <- task:
		return true
	default:
		p.wg.Done() // undo the Add since task was not enqueued
		return false
	}
}

// SubmitOrRun enqueues task, or runs it on the calling goroutine when the
// queue is full or the pool is stopped. Either way Drain waits for it.
func (p *Pool) SubmitOrRun(task Task) {
	if p.Submit(task) {
		return
	}
	p.wg.Add(1)
	p.runTask(task)
}

// StopAccepting prevents new tasks from being queued.
func (p *Pool) StopAccepting() {
	p.accepting.Store(false)
}

// Drain stops accepting tasks, waits for every queued and running task and
// lets the workers exit.
func (p *Pool) Drain() {
	p.StopAccepting()
	p.wg.Wait()
	p.closeOnce.Do(func() {
		close(p.queue)
	})
}

func (p *Pool) worker() {
	for task := range p.queue {
		p.runTask(task)
	}
}

// runTask executes a single task with panic recovery. wg.Done matches the
// wg.Add made when the task was accepted.
func (p *Pool) runTask(task Task) {
	defer p.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			utils.LogError("Task panicked", map[string]string{
				"panic": fmt.Sprint(r),
				"stack": string(debug.Stack()),
			})
		}
	}()
	task()
}
