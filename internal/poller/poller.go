// Package poller drives the periodic refresh of session state.
//
// The scheduler is a two-state machine: Idle while no valid server
// configuration is present, Polling otherwise. While polling, every tick
// fetches the session list and status map concurrently, reconciles them,
// and publishes the result; when a session is selected, its messages and
// todo list are fetched concurrently as well.
//
// Background fetch failures are swallowed: the view simply does not
// advance. Every fetch carries the store generation captured before it
// started, so responses that outlive a selection switch, credential change,
// or teardown are discarded instead of overwriting fresher state.
package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/gervaso-assistant/ocremote/internal/client"
	"github.com/gervaso-assistant/ocremote/internal/config"
	"github.com/gervaso-assistant/ocremote/internal/observability"
	"github.com/gervaso-assistant/ocremote/internal/view"
)

// Fetcher is the slice of the API client the scheduler needs.
type Fetcher interface {
	ListSessions(ctx context.Context) ([]client.RawSession, error)
	ListStatuses(ctx context.Context) (map[string]client.SessionStatus, error)
	LoadMessages(ctx context.Context, sessionID, directory string) ([]client.MessageEnvelope, error)
	LoadTodo(ctx context.Context, sessionID string) ([]client.TodoItem, error)
}

// NewFetcher builds a Fetcher for a server. Production wiring passes
// client.New; tests substitute fakes.
type NewFetcher func(server config.ServerConfig) Fetcher

// Scheduler owns the poll timer and the fetch fan-out.
type Scheduler struct {
	store      *view.Store
	interval   time.Duration
	logger     *slog.Logger
	newFetcher NewFetcher

	// Loop state (guarded by mu). cancel is non-nil exactly while polling.
	mu      sync.Mutex
	fetcher Fetcher
	cancel  context.CancelFunc
	kick    chan struct{}
	wg      sync.WaitGroup
}

// New creates an idle scheduler.
func New(store *view.Store, interval time.Duration, logger *slog.Logger, newFetcher NewFetcher) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Scheduler{
		store:      store,
		interval:   interval,
		logger:     logger,
		newFetcher: newFetcher,
	}
}

// SetServer transitions the scheduler to match the server configuration:
// a valid config (re)starts polling with fresh credentials, an invalid one
// stops it. Either way the store generation advances, so in-flight fetches
// from the previous configuration cannot publish.
func (s *Scheduler) SetServer(server config.ServerConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()
	s.store.Invalidate()

	if !server.Valid() {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.fetcher = s.newFetcher(server)
	s.kick = make(chan struct{}, 1)

	s.wg.Add(1)
	go s.run(ctx, s.fetcher, s.kick)
}

// Stop halts polling and discards in-flight publishes.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	s.stopLocked()
	s.store.Invalidate()
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *Scheduler) stopLocked() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// Running reports whether the scheduler is in the polling state.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cancel != nil
}

// Select switches the selected session and triggers an immediate refresh
// so its detail loads without waiting for the next tick.
func (s *Scheduler) Select(sessionID string) {
	s.store.Select(sessionID)
	s.Refresh()
}

// ClearSelection drops the selection and its detail.
func (s *Scheduler) ClearSelection() {
	s.store.ClearSelection()
}

// Refresh requests an immediate poll. User actions call this after they
// complete so their effect becomes visible right away. No-op while idle.
func (s *Scheduler) Refresh() {
	s.mu.Lock()
	kick := s.kick
	running := s.cancel != nil
	s.mu.Unlock()

	if !running {
		return
	}

	select {
	case kick <- struct{}{}:
	default:
	}
}

// run is the poll loop. A kick resets the timer, so at most one timer is
// ever pending.
func (s *Scheduler) run(ctx context.Context, fetcher Fetcher, kick <-chan struct{}) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.tick(ctx, fetcher)

	for {
		select {
		case <-ctx.Done():
			return
		case <-kick:
			ticker.Reset(s.interval)
			s.tick(ctx, fetcher)
		case <-ticker.C:
			s.tick(ctx, fetcher)
		}
	}
}

// tick performs one poll: list+status concurrently, then, when a session
// is selected, message+todo concurrently. Failures leave state untouched.
func (s *Scheduler) tick(parentCtx context.Context, fetcher Fetcher) {
	ctx, span := observability.Tracer("ocremote.poller").Start(parentCtx, "poll.tick")
	defer span.End()

	gen := s.store.Generation()

	var (
		wg       sync.WaitGroup
		sessions []client.RawSession
		statuses map[string]client.SessionStatus
		sessErr  error
		statErr  error
	)

	wg.Add(2)

	go func() {
		defer wg.Done()
		sessions, sessErr = fetcher.ListSessions(ctx)
	}()

	go func() {
		defer wg.Done()
		statuses, statErr = fetcher.ListStatuses(ctx)
	}()

	wg.Wait()

	if sessErr != nil || statErr != nil {
		s.logger.Debug("background poll failed",
			slog.Any("sessions_error", sessErr),
			slog.Any("statuses_error", statErr),
		)

		return
	}

	views := view.Reconcile(sessions, statuses)
	s.store.ReplaceSessions(gen, views)

	selected := s.store.Selected()
	if selected == "" {
		return
	}

	span.SetAttributes(attribute.String("session.id", selected))

	s.fetchDetail(ctx, fetcher, selected, directoryOf(views, selected))
}

// fetchDetail loads the selected session's messages and todos and
// publishes them under the generation current at fetch start.
func (s *Scheduler) fetchDetail(parentCtx context.Context, fetcher Fetcher, sessionID, directory string) {
	ctx, span := observability.Tracer("ocremote.poller").Start(parentCtx, "poll.detail",
		trace.WithAttributes(attribute.String("session.id", sessionID)),
	)
	defer span.End()

	gen := s.store.Generation()

	var (
		wg       sync.WaitGroup
		messages []client.MessageEnvelope
		todos    []client.TodoItem
		msgErr   error
		todoErr  error
	)

	wg.Add(2)

	go func() {
		defer wg.Done()
		messages, msgErr = fetcher.LoadMessages(ctx, sessionID, directory)
	}()

	go func() {
		defer wg.Done()
		todos, todoErr = fetcher.LoadTodo(ctx, sessionID)
	}()

	wg.Wait()

	if msgErr != nil || todoErr != nil {
		s.logger.Debug("detail poll failed",
			slog.String("session_id", sessionID),
			slog.Any("messages_error", msgErr),
			slog.Any("todo_error", todoErr),
		)

		return
	}

	s.store.ReplaceDetail(gen, sessionID, messages, todos)
}

func directoryOf(views []view.SessionView, id string) string {
	for _, v := range views {
		if v.ID == id {
			return v.Directory
		}
	}

	return ""
}
