package utils

import (
	"context"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

const shutdownTimeout = 15 * time.Second

// ShutdownManager runs registered cleanup tasks once the process receives
// SIGINT or SIGTERM. Tasks run in reverse registration order, so resources
// opened first are released last.
type ShutdownManager struct {
	cancelFunc    context.CancelFunc
	shutdownTasks []func(context.Context) error
	mu            sync.Mutex
	once          sync.Once
	done          chan struct{}
}

func NewShutdownManager(ctx context.Context) (context.Context, *ShutdownManager) {
	ctx, cancel := context.WithCancel(ctx)
	manager := &ShutdownManager{
		cancelFunc: cancel,
		done:       make(chan struct{}),
	}
	return ctx, manager
}

func (sm *ShutdownManager) Register(task func(context.Context) error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.shutdownTasks = append(sm.shutdownTasks, task)
}

// StartListening waits for a termination signal in the background.
func (sm *ShutdownManager) StartListening() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Printf("[SHUTDOWN] Received signal: %v", sig)
		sm.Shutdown()
	}()
}

// Shutdown cancels the base context and runs every task within the shutdown
// deadline. Calls after the first are no-ops.
func (sm *ShutdownManager) Shutdown() {
	sm.once.Do(sm.shutdown)
}

func (sm *ShutdownManager) shutdown() {
	sm.cancelFunc()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	sm.mu.Lock()
	tasks := sm.shutdownTasks
	sm.shutdownTasks = nil
	sm.mu.Unlock()

	for i := len(tasks) - 1; i >= 0; i-- {
		if err := tasks[i](ctx); err != nil {
			log.Printf("[SHUTDOWN] Error during shutdown: %v", err)
		}
	}

	log.Println("[SHUTDOWN] Graceful shutdown complete")
	close(sm.done)
}

// Done is closed after Shutdown has run all tasks.
func (sm *ShutdownManager) Done() <-chan struct{} {
	return sm.done
}
