package tasks

import (
	"context"
	"fmt"
)

type Service interface {
	__Run(ctx context.Context) error
}

type Worker struct{}

func (w *Worker) __Run(ctx context.Context) error {
	logStart()
	return helper(ctx)
}

func helper(ctx context.Context) error {
	fmt.Println("running")
	return nil
}

func logStart() {
	fmt.Println("start")
}

var __notAFunction = func() {}

func __migrate() error {
	inner := func() {}
	inner()
	return nil
}

func ____twice() {}
