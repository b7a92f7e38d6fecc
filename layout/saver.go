package layout

import (
	"context"
	"errors"
	"github.com/datastax/page-data-blocks/host"
	"github.com/datastax/page-data-blocks/log"
	"go.uber.org/atomic"
	"sync"
	"time"
)

// DefaultSaveDelay is how long the saver waits for further edits before writing.
const DefaultSaveDelay = time.Second

var ErrSaverClosed = errors.New("saver is closed")

// Saver coalesces record updates: it holds at most one pending write, which every new request
// replaces, and writes it once no request arrived for the configured delay. Outcomes are only
// logged.
type Saver struct {
	table  host.Table
	delay  time.Duration
	logger log.Logger

	mutex      sync.Mutex
	pending    *pendingWrite
	timer      *time.Timer
	generation uint64
	closed     bool

	// serializes writes so an older payload never lands after a newer one
	writeMutex sync.Mutex
	inflight   sync.WaitGroup

	flushed   atomic.Int64
	coalesced atomic.Int64
	rejected  atomic.Int64
	failed    atomic.Int64
}

type pendingWrite struct {
	recordID string
	cells    map[string]string
}

// SaverStats counts the outcome of every scheduled write.
type SaverStats struct {
	Flushed   int64 `json:"flushed"`
	Coalesced int64 `json:"coalesced"`
	Rejected  int64 `json:"rejected"`
	Failed    int64 `json:"failed"`
}

func NewSaver(table host.Table, delay time.Duration, logger log.Logger) *Saver {
	if delay <= 0 {
		delay = DefaultSaveDelay
	}
	return &Saver{
		table:  table,
		delay:  delay,
		logger: logger.With("table", table.Name()),
	}
}

// Schedule replaces the pending write and restarts the delay.
func (s *Saver) Schedule(recordID string, cells map[string]string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.closed {
		return ErrSaverClosed
	}
	if s.pending != nil {
		s.coalesced.Inc()
	}
	if s.timer != nil {
		s.timer.Stop()
	}

	s.pending = &pendingWrite{recordID: recordID, cells: cells}
	s.generation++
	generation := s.generation
	s.timer = time.AfterFunc(s.delay, func() {
		s.fire(generation)
	})
	return nil
}

// Pending reports whether a write is waiting for its delay to expire.
func (s *Saver) Pending() bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.pending != nil
}

// Cancel drops the pending write, if any.
func (s *Saver) Cancel() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.pending != nil {
		s.coalesced.Inc()
	}
	s.clear()
}

// WriteNow drops the pending write and writes cells right away. A write already started by the
// timer finishes first, so it can never land after this one.
func (s *Saver) WriteNow(ctx context.Context, recordID string, cells map[string]string) error {
	s.mutex.Lock()
	if s.closed {
		s.mutex.Unlock()
		return ErrSaverClosed
	}
	if s.pending != nil {
		s.coalesced.Inc()
	}
	s.clear()
	s.inflight.Add(1)
	s.mutex.Unlock()

	defer s.inflight.Done()
	return s.write(ctx, &pendingWrite{recordID: recordID, cells: cells})
}

// Flush writes the pending payload immediately.
func (s *Saver) Flush(ctx context.Context) error {
	s.mutex.Lock()
	write := s.pending
	s.clear()
	s.mutex.Unlock()

	if write == nil {
		return nil
	}
	return s.write(ctx, write)
}

// Close flushes the pending payload and refuses further requests.
func (s *Saver) Close(ctx context.Context) error {
	s.mutex.Lock()
	s.closed = true
	s.mutex.Unlock()

	err := s.Flush(ctx)
	s.inflight.Wait()
	return err
}

func (s *Saver) Stats() SaverStats {
	return SaverStats{
		Flushed:   s.flushed.Load(),
		Coalesced: s.coalesced.Load(),
		Rejected:  s.rejected.Load(),
		Failed:    s.failed.Load(),
	}
}

// clear must be called with mutex held.
func (s *Saver) clear() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.pending = nil
	s.generation++
}

func (s *Saver) fire(generation uint64) {
	s.mutex.Lock()
	if generation != s.generation || s.pending == nil {
		s.mutex.Unlock()
		return
	}
	write := s.pending
	s.pending = nil
	s.timer = nil
	s.inflight.Add(1)
	s.mutex.Unlock()

	defer s.inflight.Done()
	_ = s.write(context.Background(), write)
}

func (s *Saver) write(ctx context.Context, write *pendingWrite) error {
	s.writeMutex.Lock()
	defer s.writeMutex.Unlock()

	if !s.table.CanUpdateRecords() {
		s.rejected.Inc()
		s.logger.Error("no permission to update record", "record", write.recordID)
		return host.ErrPermissionDenied
	}

	if err := s.table.UpdateRecord(ctx, write.recordID, write.cells); err != nil {
		s.failed.Inc()
		s.logger.Error("failed to save record", "record", write.recordID, "error", err)
		return err
	}

	s.flushed.Inc()
	s.logger.Info("record saved", "record", write.recordID)
	return nil
}
