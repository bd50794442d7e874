package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/useraccounts/user-service/internal/core/domain"
)

type recordingProcessor struct {
	mu     sync.Mutex
	events []domain.ActivityEvent
	err    error
}

func (p *recordingProcessor) Process(_ context.Context, event domain.ActivityEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingProcessor) snapshot() []domain.ActivityEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.ActivityEvent(nil), p.events...)
}

func TestDispatcher_PreservesPerSubjectOrder(t *testing.T) {
	proc := &recordingProcessor{}
	d := NewDispatcher(3, proc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)

	types := []domain.ActivityType{
		domain.ActivityUserCreated,
		domain.ActivityLoginSuccess,
		domain.ActivityUserUpdated,
		domain.ActivityUserDeleted,
	}
	for _, typ := range types {
		d.Record(domain.ActivityEvent{Type: typ, Username: "lm9"})
	}

	require.Eventually(t, func() bool { return len(proc.snapshot()) == len(types) }, time.Second, 5*time.Millisecond)
	cancel()
	d.Wait()

	got := proc.snapshot()
	for i, typ := range types {
		assert.Equal(t, typ, got[i].Type)
	}
}

func TestDispatcher_DropsWhenQueueFull(t *testing.T) {
	proc := &recordingProcessor{}
	d := NewDispatcher(1, proc, zerolog.Nop())

	for i := 0; i < channelBuffer+5; i++ {
		d.Record(domain.ActivityEvent{Type: domain.ActivityLoginFailure, Username: "jd"})
	}
	assert.Len(t, d.workers[0], channelBuffer)

	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)
	require.Eventually(t, func() bool { return len(proc.snapshot()) == channelBuffer }, time.Second, 5*time.Millisecond)
	cancel()
	d.Wait()

	assert.Len(t, proc.snapshot(), channelBuffer)
}

func TestDispatcher_DrainsOnShutdown(t *testing.T) {
	proc := &recordingProcessor{}
	d := NewDispatcher(2, proc, zerolog.Nop())

	d.Record(domain.ActivityEvent{Type: domain.ActivityUserCreated, UserID: "u1"})
	d.Record(domain.ActivityEvent{Type: domain.ActivityUserDeleted, UserID: "u2"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d.Start(ctx)
	d.Wait()

	assert.Len(t, proc.snapshot(), 2)
}

// gatedProcessor blocks its first call until release is closed.
type gatedProcessor struct {
	recordingProcessor
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (p *gatedProcessor) Process(ctx context.Context, event domain.ActivityEvent) error {
	p.once.Do(func() {
		close(p.started)
		<-p.release
	})
	return p.recordingProcessor.Process(ctx, event)
}

func TestDispatcher_ProcessesEventsRecordedBeforeStop(t *testing.T) {
	proc := &gatedProcessor{started: make(chan struct{}), release: make(chan struct{})}
	d := NewDispatcher(1, proc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)

	d.Record(domain.ActivityEvent{Type: domain.ActivityLoginSuccess, Username: "lm9"})
	<-proc.started
	d.Record(domain.ActivityEvent{Type: domain.ActivityUserUpdated, Username: "lm9"})
	d.Record(domain.ActivityEvent{Type: domain.ActivityUserDeleted, Username: "jd"})

	cancel()
	close(proc.release)
	d.Wait()

	got := proc.snapshot()
	require.Len(t, got, 3)
	assert.Equal(t, domain.ActivityLoginSuccess, got[0].Type)
}

func TestDispatcher_ProcessErrorDoesNotStopWorker(t *testing.T) {
	proc := &recordingProcessor{err: errors.New("store down")}
	d := NewDispatcher(1, proc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)

	d.Record(domain.ActivityEvent{Type: domain.ActivityUserCreated, Username: "a"})
	d.Record(domain.ActivityEvent{Type: domain.ActivityUserCreated, Username: "b"})

	require.Eventually(t, func() bool { return len(proc.snapshot()) == 2 }, time.Second, 5*time.Millisecond)
	cancel()
	d.Wait()
}

func TestShardIndex_Deterministic(t *testing.T) {
	d := NewDispatcher(8, &recordingProcessor{}, zerolog.Nop())

	first := d.shardIndex("lm9")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, d.shardIndex("lm9"))
	}
	assert.GreaterOrEqual(t, first, 0)
	assert.Less(t, first, 8)
}

func TestNewDispatcher_DefaultWorkers(t *testing.T) {
	d := NewDispatcher(0, &recordingProcessor{}, zerolog.Nop())
	assert.Len(t, d.workers, defaultWorkers)
}
