package goroutine

import (
	"context"
	"runtime/debug"

	"github.com/sirupsen/logrus"

	"github.com/staffhub/staffing-backend/internal/logger"
)

// SafeGo запускает fn в отдельной горутине и перехватывает panic.
// Падение фоновой задачи (очередь уведомлений, отложенные операции)
// не должно ронять весь процесс.
func SafeGo(fn func()) {
	go func() {
		defer logPanic()
		fn()
	}()
}

// SafeGoWithContext — вариант SafeGo для задач, которым нужен контекст
// с отменой.
func SafeGoWithContext(ctx context.Context, fn func(context.Context)) {
	go func() {
		defer logPanic()
		fn(ctx)
	}()
}

// logPanic пишет перехваченную panic со стеком в общий логгер.
func logPanic() {
	r := recover()
	if r == nil {
		return
	}
	logger.Log.WithFields(logrus.Fields{
		"panic": r,
		"stack": string(debug.Stack()),
	}).Error("goroutine: panic в фоновой задаче")
}
