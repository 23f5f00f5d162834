package closer

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/simoilconte/Bensine/platform/logger"
)

type Logger interface {
	Info(ctx context.Context, msg string, fields ...logger.Field)
	Error(ctx context.Context, msg string, fields ...logger.Field)
}

type namedFn struct {
	name string
	fn   func(context.Context) error
}

type closer struct {
	mu     sync.Mutex
	once   sync.Once
	funcs  []namedFn
	logger Logger
}

var global = New()

func New() *closer {
	return &closer{logger: logger.NoopLogger{}}
}

func AddNamed(name string, fn func(context.Context) error) { global.AddNamed(name, fn) }

func SetLogger(l Logger) { global.SetLogger(l) }

func CloseAll(ctx context.Context) error { return global.CloseAll(ctx) }

func (c *closer) SetLogger(l Logger) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.logger = l
}

func (c *closer) AddNamed(name string, fn func(context.Context) error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.funcs = append(c.funcs, namedFn{name: name, fn: fn})
}

// CloseAll runs the registered functions once, last registered first.
func (c *closer) CloseAll(ctx context.Context) error {
	var result error

	c.once.Do(func() {
		c.mu.Lock()
		funcs := c.funcs
		c.funcs = nil
		log := c.logger
		c.mu.Unlock()

		var errs []error
		for i := len(funcs) - 1; i >= 0; i-- {
			f := funcs[i]

			if err := ctx.Err(); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", f.name, err))
				continue
			}

			log.Info(ctx, "🧹 closing", logger.String("resource", f.name))
			if err := f.fn(ctx); err != nil {
				log.Error(ctx, "❌ close failed", logger.String("resource", f.name), logger.ErrorF(err))
				errs = append(errs, fmt.Errorf("%s: %w", f.name, err))
				continue
			}
			log.Info(ctx, "✅ closed", logger.String("resource", f.name))
		}

		result = errors.Join(errs...)
	})

	return result
}
