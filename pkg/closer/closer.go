// Package closer управляет упорядоченным освобождением ресурсов приложения
// при завершении работы.
package closer

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// Func — сигнатура функции закрытия ресурса.
type Func func(ctx context.Context) error

// Closer накапливает функции закрытия и запускает их в порядке LIFO.
type Closer struct {
	mu            sync.Mutex
	once          sync.Once
	funcs         []Func
	names         []string
	forcedTimeout time.Duration
}

// NewCloser создает новый экземпляр Closer.
// forcedTimeout — время, отводимое на принудительное закрытие оставшихся
// ресурсов после отмены контекста в Close.
func NewCloser(forcedTimeout time.Duration) *Closer {
	const defaultForcedTimeout = 2 * time.Second

	if forcedTimeout <= 0 {
		forcedTimeout = defaultForcedTimeout
	}

	return &Closer{forcedTimeout: forcedTimeout}
}

// Add регистрирует функцию закрытия под человекочитаемым именем.
func (c *Closer) Add(name string, f Func) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.funcs = append(c.funcs, f)
	c.names = append(c.names, name)
}

// Close запускает зарегистрированные функции в обратном порядке регистрации.
// Если контекст отменяется раньше, оставшиеся функции закрываются принудительно
// с собственным таймаутом. Повторные вызовы Close не имеют эффекта.
func (c *Closer) Close(ctx context.Context) error {
	var err error
	c.once.Do(func() {
		c.mu.Lock()
		funcs, names := c.funcs, c.names
		c.mu.Unlock()

		var errs []string
		for i := len(funcs) - 1; i >= 0; i-- {
			done := make(chan error, 1)
			go func(f Func) { done <- f(ctx) }(funcs[i])

			select {
			case ferr := <-done:
				if ferr != nil {
					errs = append(errs, fmt.Sprintf("%s: %v", names[i], ferr))
				}
			case <-ctx.Done():
				errs = append(errs, c.forcedClose(funcs[:i+1], names[:i+1])...)
				err = fmt.Errorf("shutdown interrupted:\n%s", strings.Join(errs, "\n"))
				return
			}
		}

		if len(errs) > 0 {
			err = fmt.Errorf("shutdown finished with error(s):\n%s", strings.Join(errs, "\n"))
		}
	})

	return err
}

// forcedClose параллельно запускает оставшиеся функции закрытия.
func (c *Closer) forcedClose(funcs []Func, names []string) []string {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []string
	)

	ctx, cancel := context.WithTimeout(context.Background(), c.forcedTimeout)
	defer cancel()

	for i, f := range funcs {
		wg.Add(1)
		go func(f Func, name string) {
			defer wg.Done()
			if ferr := f(ctx); ferr != nil {
				mu.Lock()
				errs = append(errs, fmt.Sprintf("[forced] %s: %v", name, ferr))
				mu.Unlock()
			}
		}(f, names[i])
	}

	wg.Wait()
	return errs
}
