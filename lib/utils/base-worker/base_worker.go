package baseworker

import (
	"context"
	log "github.com/sirupsen/logrus"
	"recruit-portal/lib/metrics"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"
)

type BaseImpl struct {
	WorkerName    string
	firstRunDelay time.Duration
	runInterval   time.Duration

	running atomic.Bool
	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
}

func NewInstance(WorkerName string, firstRunDelay, runInterval time.Duration) *BaseImpl {
	return &BaseImpl{
		WorkerName:    WorkerName,
		firstRunDelay: firstRunDelay,
		runInterval:   runInterval,
	}
}

func (i *BaseImpl) GetLogger() *log.Entry {
	logger := log.
		WithField("worker_name", i.WorkerName)
	return logger
}

// Start запускает задачу в отдельной горутине, повторный вызов до Stop ничего не делает
func (i *BaseImpl) Start(ctx context.Context, jobFunc func(ctx context.Context)) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.cancel != nil {
		return
	}
	runCtx, cancel := context.WithCancel(ctx)
	i.cancel = cancel
	i.done = make(chan struct{})
	go func(done chan struct{}) {
		defer close(done)
		i.Run(runCtx, jobFunc)
	}(i.done)
}

// Stop останавливает задачу и ждет завершения текущего запуска
func (i *BaseImpl) Stop() {
	i.mu.Lock()
	cancel, done := i.cancel, i.done
	i.cancel, i.done = nil, nil
	i.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (i *BaseImpl) Run(ctx context.Context, jobFunc func(ctx context.Context)) {
	period := i.firstRunDelay
	logger := i.GetLogger()
	timer := time.NewTimer(period)
	defer timer.Stop()
	for {
		select {
		// проверяем не завершён ли ещё контекст и выходим, если завершён
		case <-ctx.Done():
			logger.Info("Задача остановлена")
			return
		case <-timer.C:
			i.TryRun(ctx, jobFunc)
		}
		period = i.runInterval
		timer.Reset(period)
	}
}

// TryRun выполняет задачу, если предыдущий запуск уже завершен; false - запуск пропущен
func (i *BaseImpl) TryRun(ctx context.Context, jobFunc func(ctx context.Context)) bool {
	if !i.running.CompareAndSwap(false, true) {
		i.GetLogger().Warn("Предыдущий запуск задачи еще выполняется, пропускаем")
		metrics.PollTicksSkippedTotal.WithLabelValues(i.WorkerName).Inc()
		return false
	}
	defer i.running.Store(false)
	defer func() {
		if r := recover(); r != nil {
			i.GetLogger().
				WithField("panic_stack", string(debug.Stack())).
				Errorf("panic: (%v)", r)
		}
	}()
	logger := i.GetLogger()
	logger.Debug("Задача запущена")
	jobFunc(ctx)
	logger.Debug("Задача выполнена")
	return true
}

func (i *BaseImpl) IsRunning() bool {
	return i.running.Load()
}
