package saga

import (
	"context"
	"sync"
	"time"

	"example.com/fulfillment-system/pkg/logger"
)

// Task — одна периодическая задача планировщика.
type Task struct {
	Name string
	Tick func(ctx context.Context)
}

// Scheduler запускает задачи саги на независимых фиксированных интервалах:
// семь задач (poller + шесть шагов), каждая в своей горутине. Интервал —
// fixed delay: следующий тик задачи не начинается, пока не вернулась функция
// предыдущего (сама функция внутри раздаёт работу асинхронно и возвращается
// не дожидаясь её завершения).
type Scheduler struct {
	interval time.Duration
	tasks    []Task
	wg       sync.WaitGroup
}

// NewScheduler создаёт планировщик с общим интервалом для всех задач.
func NewScheduler(interval time.Duration, tasks ...Task) *Scheduler {
	return &Scheduler{
		interval: interval,
		tasks:    tasks,
	}
}

// Run запускает все задачи и блокируется до отмены контекста.
// Отмена останавливает планирование новых тиков; запущенная асинхронная
// работа пытается завершиться или бросается — потерянные сообщения
// восстановятся при рестарте за счёт at-least-once доставки.
func (s *Scheduler) Run(ctx context.Context) {
	logger.Info().
		Int("tasks", len(s.tasks)).
		Dur("interval", s.interval).
		Msg("Запуск планировщика саги")

	for _, task := range s.tasks {
		s.wg.Add(1)
		go s.runTask(ctx, task)
	}

	s.wg.Wait()
	logger.Info().Msg("Планировщик саги остановлен")
}

// runTask крутит одну задачу до отмены контекста.
func (s *Scheduler) runTask(ctx context.Context, task Task) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	logger.Debug().Str("task", task.Name).Msg("Задача запущена")

	for {
		select {
		case <-ctx.Done():
			logger.Debug().Str("task", task.Name).Msg("Задача остановлена")
			return
		case <-ticker.C:
			task.Tick(ctx)
		}
	}
}
