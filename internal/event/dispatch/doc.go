// Package dispatch runs event handlers for the bus.
//
// Handlers are executed synchronously in the caller's goroutine. The
// Executor recovers from panics so a misbehaving view or orchestration
// handler cannot take down the emitting component, and reports every
// outcome as a Result.
//
//	exec := dispatch.NewExecutor(dispatch.WithNow(clk.Now))
//	result := exec.Execute(ctx, func(ctx context.Context) error {
//	    return handler.Handle(ctx, evt)
//	})
//	if result.Panicked {
//	    logger.Error("handler panic", zap.Any("value", result.PanicValue))
//	}
package dispatch
