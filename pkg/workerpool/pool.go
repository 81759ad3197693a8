// Package workerpool ограничение числа параллельных задач на семафоре
package workerpool

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Pool не более limit задач одновременно
type Pool struct {
	sem *semaphore.Weighted
	wg  sync.WaitGroup
}

// New создает пул; limit < 1 трактуется как 1
func New(limit int) *Pool {
	if limit < 1 {
		limit = 1
	}
	return &Pool{sem: semaphore.NewWeighted(int64(limit))}
}

// Go запускает fn, блокируясь, пока все слоты заняты
// Возвращает ctx.Err(), если контекст отменён во время ожидания слота
func (p *Pool) Go(ctx context.Context, fn func()) error {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer p.sem.Release(1)
		fn()
	}()
	return nil
}

// Wait ждёт завершения всех запущенных задач
func (p *Pool) Wait() {
	p.wg.Wait()
}
