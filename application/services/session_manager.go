package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/zaheyak/Content-Studio-sub000/application/ports"
	"github.com/zaheyak/Content-Studio-sub000/domain/config"
	"github.com/zaheyak/Content-Studio-sub000/domain/content"
	"github.com/zaheyak/Content-Studio-sub000/domain/core/valueobjects"
	"github.com/zaheyak/Content-Studio-sub000/domain/editor"
	domainservices "github.com/zaheyak/Content-Studio-sub000/domain/services"
	pkgerrors "github.com/zaheyak/Content-Studio-sub000/pkg/errors"
	"github.com/zaheyak/Content-Studio-sub000/pkg/observability"
)

// SaveState is the outcome of the most recent save of a session
type SaveState string

const (
	SaveIdle   SaveState = "idle"
	SaveSaving SaveState = "saving"
	SaveSaved  SaveState = "saved"
	SaveFailed SaveState = "failed"
)

// SaveStatus is reported with every session view
type SaveStatus struct {
	State     SaveState `json:"state"`
	Error     string    `json:"error,omitempty"`
	Attempts  int       `json:"attempts"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// ViewportView is the viewport as reported to clients
type ViewportView struct {
	PanX float64 `json:"panX"`
	PanY float64 `json:"panY"`
	Zoom float64 `json:"zoom"`
}

// SessionView is a consistent snapshot of one editor session
type SessionView struct {
	ID              string          `json:"id"`
	LessonID        string          `json:"lessonId"`
	Editor          editor.Snapshot `json:"editor"`
	Viewport        ViewportView    `json:"viewport"`
	Save            SaveStatus      `json:"save"`
	Method          content.Method  `json:"method"`
	NodeCount       int             `json:"nodeCount"`
	ConnectionCount int             `json:"connectionCount"`
}

// RenderView is the drawing list of a session together with its state
type RenderView struct {
	Session SessionView          `json:"session"`
	Scene   domainservices.Scene `json:"scene"`
}

// EditorSession is one open editor. All access goes through its mutex, which
// is the single logical thread the controller requires.
type EditorSession struct {
	id       string
	lessonID valueobjects.LessonID

	mu         sync.Mutex
	controller *editor.Controller
	method     content.Method
	save       SaveStatus
	saveSeq    int
	lastSave   *content.MindMapData
	lastMethod content.Method
	lastActive time.Time
	closed     bool
}

// ID returns the session id
func (s *EditorSession) ID() string {
	return s.id
}

// LessonID returns the lesson being edited
func (s *EditorSession) LessonID() valueobjects.LessonID {
	return s.lessonID
}

func (s *EditorSession) view() SessionView {
	vp := s.controller.Viewport()
	g := s.controller.Graph()
	return SessionView{
		ID:       s.id,
		LessonID: s.lessonID.String(),
		Editor:   s.controller.Snapshot(),
		Viewport: ViewportView{
			PanX: vp.Pan().X(),
			PanY: vp.Pan().Y(),
			Zoom: vp.Zoom(),
		},
		Save:            s.save,
		Method:          s.method,
		NodeCount:       g.NodeCount(),
		ConnectionCount: g.ConnectionCount(),
	}
}

// SessionManager owns the open editor sessions. Saves and generations run in
// the background and never block input to a session.
type SessionManager struct {
	cfg         *config.DomainConfig
	persistence *PersistenceService
	generation  *GenerationService
	renderer    *domainservices.Renderer
	metrics     *observability.Collector
	logger      *zap.Logger

	mu       sync.RWMutex
	sessions map[string]*EditorSession

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	now    func() time.Time
}

// NewSessionManager creates a session manager
func NewSessionManager(
	cfg *config.DomainConfig,
	persistence *PersistenceService,
	generation *GenerationService,
	metrics *observability.Collector,
	logger *zap.Logger,
) *SessionManager {
	ctx, cancel := context.WithCancel(context.Background())
	return &SessionManager{
		cfg:         cfg,
		persistence: persistence,
		generation:  generation,
		renderer:    domainservices.NewRenderer(cfg),
		metrics:     metrics,
		logger:      logger,
		sessions:    make(map[string]*EditorSession),
		ctx:         ctx,
		cancel:      cancel,
		now:         time.Now,
	}
}

// Open starts an editor for a lesson. The stored mind map is loaded if there
// is one, otherwise the editor starts empty. The viewport starts at identity.
func (m *SessionManager) Open(ctx context.Context, lessonID valueobjects.LessonID) (SessionView, error) {
	graph, err := m.persistence.Load(ctx, lessonID)
	if err != nil {
		return SessionView{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cfg.MaxSessions > 0 && len(m.sessions) >= m.cfg.MaxSessions {
		m.evictIdleLocked()
		if len(m.sessions) >= m.cfg.MaxSessions {
			return SessionView{}, pkgerrors.NewUnavailableError("editor sessions").
				WithDetail("maxSessions", m.cfg.MaxSessions)
		}
	}

	session := &EditorSession{
		id:         uuid.New().String(),
		lessonID:   lessonID,
		controller: editor.NewController(m.cfg, nil),
		method:     content.MethodManual,
		save:       SaveStatus{State: SaveIdle},
		lastActive: m.now(),
	}
	session.controller.Load(graph)
	session.controller.Graph().PullEvents()
	m.sessions[session.id] = session
	m.setActiveGauge()

	m.logger.Info("Editor session opened",
		zap.String("sessionID", session.id),
		zap.String("lessonID", lessonID.String()),
		zap.Int("nodes", graph.NodeCount()),
	)
	return session.view(), nil
}

// Get returns a session by id
func (m *SessionManager) Get(id string) (*EditorSession, error) {
	m.mu.RLock()
	session, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, pkgerrors.ErrSessionNotFound.New().WithDetail("sessionID", id)
	}
	return session, nil
}

// View returns the current state of a session
func (m *SessionManager) View(id string) (SessionView, error) {
	var view SessionView
	err := m.with(id, func(s *EditorSession) error {
		view = s.view()
		return nil
	})
	return view, err
}

// ApplyInputs feeds a batch of inputs to the session's controller in order
func (m *SessionManager) ApplyInputs(id string, inputs []editor.Input) (SessionView, error) {
	var view SessionView
	err := m.with(id, func(s *EditorSession) error {
		for _, in := range inputs {
			s.controller.Dispatch(in)
		}
		s.controller.Graph().PullEvents()
		view = s.view()
		return nil
	})
	if err == nil && m.metrics != nil {
		m.metrics.InputsApplied.Add(float64(len(inputs)))
	}
	return view, err
}

// Render returns the drawing list for the session's graph and viewport
func (m *SessionManager) Render(id string) (RenderView, error) {
	var out RenderView
	err := m.with(id, func(s *EditorSession) error {
		out = RenderView{
			Session: s.view(),
			Scene:   m.renderer.Render(s.controller.Graph(), s.controller.Viewport()),
		}
		return nil
	})
	return out, err
}

// Generate starts a background generation for the session. It fails with
// ErrGenerationInProgress while a previous request is still outstanding.
// Manual editing continues meanwhile and is overwritten by the result.
func (m *SessionManager) Generate(id string, req ports.GenerationRequest) (SessionView, error) {
	var view SessionView
	err := m.with(id, func(s *EditorSession) error {
		if !s.controller.BeginGeneration() {
			return pkgerrors.ErrGenerationInProgress.New().WithDetail("sessionID", id)
		}
		view = s.view()
		return nil
	})
	if err != nil {
		return SessionView{}, err
	}

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		result := m.generation.Generate(m.ctx, req)

		err := m.with(id, func(s *EditorSession) error {
			s.controller.CompleteGeneration(result.Graph)
			s.controller.Graph().PullEvents()
			s.method = result.Method
			return nil
		})
		if err != nil {
			m.logger.Info("Dropping generation result for closed session", zap.String("sessionID", id))
			return
		}
		m.logger.Info("Generation applied",
			zap.String("sessionID", id),
			zap.String("method", string(result.Method)),
			zap.Int("nodes", result.Graph.NodeCount()),
		)
	}()

	return view, nil
}

// Save snapshots the session's graph and stores it in the background. The
// outcome shows up in the session's save status.
func (m *SessionManager) Save(id string) (SessionView, error) {
	var (
		view     SessionView
		lessonID valueobjects.LessonID
		data     content.MindMapData
		method   content.Method
		seq      int
	)
	err := m.with(id, func(s *EditorSession) error {
		data = m.persistence.Serializer().Serialize(s.controller.Graph())
		method = s.method
		s.lastSave, s.lastMethod = &data, method
		seq = m.markSaving(s)
		lessonID = s.lessonID
		view = s.view()
		return nil
	})
	if err != nil {
		return SessionView{}, err
	}

	m.submit(id, seq, lessonID, data, method)
	return view, nil
}

// RetrySave re-submits the payload of the last save. Only a failed save can
// be retried.
func (m *SessionManager) RetrySave(id string) (SessionView, error) {
	var (
		view     SessionView
		lessonID valueobjects.LessonID
		data     content.MindMapData
		method   content.Method
		seq      int
	)
	err := m.with(id, func(s *EditorSession) error {
		if s.save.State != SaveFailed || s.lastSave == nil {
			return pkgerrors.ErrNothingToRetry.New().
				WithDetail("sessionID", id).
				WithDetail("saveState", string(s.save.State))
		}
		data, method = *s.lastSave, s.lastMethod
		seq = m.markSaving(s)
		lessonID = s.lessonID
		view = s.view()
		return nil
	})
	if err != nil {
		return SessionView{}, err
	}

	m.submit(id, seq, lessonID, data, method)
	return view, nil
}

// Close ends a session. Background work for it finishes but its result is dropped.
func (m *SessionManager) Close(id string) error {
	m.mu.Lock()
	session, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	m.setActiveGauge()
	m.mu.Unlock()

	if !ok {
		return pkgerrors.ErrSessionNotFound.New().WithDetail("sessionID", id)
	}

	session.mu.Lock()
	session.closed = true
	session.mu.Unlock()

	m.logger.Info("Editor session closed", zap.String("sessionID", id))
	return nil
}

// Count returns the number of open sessions
func (m *SessionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// EvictIdle closes sessions that saw no activity for the idle timeout
func (m *SessionManager) EvictIdle() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.evictIdleLocked()
}

// Run evicts idle sessions periodically until ctx is done
func (m *SessionManager) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.EvictIdle(); n > 0 {
				m.logger.Info("Evicted idle editor sessions", zap.Int("count", n))
			}
		}
	}
}

// Wait blocks until background saves and generations have finished
func (m *SessionManager) Wait() {
	m.wg.Wait()
}

// Shutdown cancels outstanding generations and waits for background work
func (m *SessionManager) Shutdown() {
	m.cancel()
	m.wg.Wait()
}

func (m *SessionManager) with(id string, fn func(s *EditorSession) error) error {
	session, err := m.Get(id)
	if err != nil {
		return err
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	if session.closed {
		return pkgerrors.ErrSessionNotFound.New().WithDetail("sessionID", id)
	}
	session.lastActive = m.now()
	return fn(session)
}

func (m *SessionManager) markSaving(s *EditorSession) int {
	s.saveSeq++
	s.save = SaveStatus{
		State:     SaveSaving,
		Attempts:  s.save.Attempts + 1,
		UpdatedAt: m.now(),
	}
	return s.saveSeq
}

// submit stores data in the background. Only the latest save of a session
// updates its status.
func (m *SessionManager) submit(id string, seq int, lessonID valueobjects.LessonID, data content.MindMapData, method content.Method) {
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		saveErr := m.persistence.Save(m.ctx, lessonID, data, method)

		_ = m.with(id, func(s *EditorSession) error {
			if s.saveSeq != seq {
				return nil
			}
			status := SaveStatus{State: SaveSaved, Attempts: s.save.Attempts, UpdatedAt: m.now()}
			if saveErr != nil {
				status.State = SaveFailed
				status.Error = saveErr.Error()
			} else {
				status.Attempts = 0
			}
			s.save = status
			return nil
		})
	}()
}

func (m *SessionManager) evictIdleLocked() int {
	if m.cfg.SessionIdleTimeout <= 0 {
		return 0
	}
	cutoff := m.now().Add(-m.cfg.SessionIdleTimeout)
	evicted := 0
	for id, s := range m.sessions {
		s.mu.Lock()
		idle := s.lastActive.Before(cutoff)
		if idle {
			s.closed = true
		}
		s.mu.Unlock()
		if idle {
			delete(m.sessions, id)
			evicted++
		}
	}
	m.setActiveGauge()
	return evicted
}

func (m *SessionManager) setActiveGauge() {
	if m.metrics != nil {
		m.metrics.ActiveSessions.Set(float64(len(m.sessions)))
	}
}
