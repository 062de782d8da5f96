// Package dashboard is the browser shell over the order view models: a
// searchable list with a create/edit form at / and a status board at /board.
package dashboard

import (
	"context"
	"errors"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/adapters/memory"
	"github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/application"
	"github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/ports"
)

// Server serves the dashboard pages for any number of browser sessions.
type Server struct {
	gateway  ports.Gateway
	sessions ports.SessionStore[*Session]
	viewOpts []application.ViewOption
	logger   *slog.Logger
	pages    map[string]*template.Template

	// sessionTTL applies to the default store only.
	sessionTTL time.Duration
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger shared by handlers and view models.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithViewOptions passes options to every view model the server creates.
func WithViewOptions(opts ...application.ViewOption) Option {
	return func(s *Server) {
		s.viewOpts = append(s.viewOpts, opts...)
	}
}

// WithSessionTTL expires sessions idle for longer than ttl in the default store.
func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Server) {
		s.sessionTTL = ttl
	}
}

// WithSessionStore replaces the default in-memory session store.
func WithSessionStore(store ports.SessionStore[*Session]) Option {
	return func(s *Server) {
		s.sessions = store
	}
}

func NewServer(gateway ports.Gateway, opts ...Option) (*Server, error) {
	if gateway == nil {
		return nil, errors.New("dashboard requires an order gateway")
	}
	s := &Server{
		gateway: gateway,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.sessions == nil {
		s.sessions = memory.NewSessionStore[*Session](s.sessionTTL)
	}
	s.viewOpts = append([]application.ViewOption{application.WithLogger(s.logger)}, s.viewOpts...)
	pages, err := parsePages()
	if err != nil {
		return nil, err
	}
	s.pages = pages
	return s, nil
}

// Router returns the gin engine serving every dashboard route.
func (s *Server) Router(middleware ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware...)

	router.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	ui := router.Group("/", s.sessionMiddleware())
	ui.GET("/", s.listPage)
	ui.POST("/orders", s.submitOrder)
	ui.POST("/orders/cancel", s.cancelEdit)
	ui.POST("/orders/:id/edit", s.editOrder)
	ui.GET("/orders/:id/delete", s.confirmDelete)
	ui.POST("/orders/:id/delete", s.deleteOrder)
	ui.POST("/search/clear", s.clearSearch)
	ui.GET("/board", s.boardPage)
	ui.POST("/board/:id/:action", s.applyTransition)
	return router
}

type listPage struct {
	page
	List application.ListSnapshot
}

type boardPage struct {
	page
	Board application.Board
}

type confirmPage struct {
	page
	Prompt  string
	OrderID int64
	Order   *domain.Order
}

func (s *Server) listPage(c *gin.Context) {
	sess := lockSession(c)
	defer sess.mu.Unlock()
	ctx := c.Request.Context()

	if sess.listMutated {
		sess.listMutated = false
	} else {
		_ = sess.List.Load(ctx)
	}
	if q, ok := c.GetQuery("q"); ok {
		sess.List.Search(q)
	}
	snap := sess.List.Snapshot()
	sess.List.DismissBanner()
	s.render(c, "list", listPage{
		page: page{Title: "Orders", Active: "list", Error: snap.Error, Success: snap.Success},
		List: snap,
	})
}

func (s *Server) submitOrder(c *gin.Context) {
	sess := lockSession(c)
	defer sess.mu.Unlock()
	ctx := c.Request.Context()

	if err := s.applyForm(c, sess.List); err == nil {
		if err := sess.List.Submit(ctx); err != nil {
			s.logger.LogAttrs(ctx, slog.LevelDebug, "order form rejected", slog.String("error", err.Error()))
		}
	}
	sess.listMutated = true
	c.Redirect(http.StatusSeeOther, "/")
}

// applyForm copies the posted fields into the form, stopping at the first unparsable one.
func (s *Server) applyForm(c *gin.Context, view *application.ListView) error {
	for _, field := range application.FormFields {
		if err := view.SetField(field, c.PostForm(field)); err != nil {
			s.logger.LogAttrs(c.Request.Context(), slog.LevelDebug, "order form field rejected",
				slog.String("field", field), slog.String("error", err.Error()))
			return err
		}
	}
	return nil
}

func (s *Server) cancelEdit(c *gin.Context) {
	sess := lockSession(c)
	defer sess.mu.Unlock()

	sess.List.CancelEdit()
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) editOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	sess := lockSession(c)
	defer sess.mu.Unlock()
	ctx := c.Request.Context()

	if err := sess.List.EditByID(id); errors.Is(err, ports.ErrNotFound) {
		// The page may be older than the session's collection.
		if loadErr := sess.List.Load(ctx); loadErr == nil {
			err = sess.List.EditByID(id)
		}
		if err != nil {
			c.Redirect(http.StatusSeeOther, "/")
			return
		}
	}
	sess.listMutated = true
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) confirmDelete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	sess := lockSession(c)
	defer sess.mu.Unlock()

	data := confirmPage{
		page:    page{Title: "Delete order", Active: "list"},
		Prompt:  application.DeleteConfirmPrompt,
		OrderID: id,
	}
	if order, found := sess.List.Find(id); found {
		data.Order = &order
	}
	s.render(c, "confirm", data)
}

func (s *Server) deleteOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	sess := lockSession(c)
	defer sess.mu.Unlock()

	confirmed := application.ConfirmFunc(func(context.Context, string) bool {
		return c.PostForm("confirm") == "yes"
	})
	deleted, err := sess.List.Delete(c.Request.Context(), id, confirmed)
	if deleted || err != nil {
		sess.listMutated = true
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) clearSearch(c *gin.Context) {
	sess := lockSession(c)
	defer sess.mu.Unlock()

	sess.List.ClearSearch()
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) boardPage(c *gin.Context) {
	sess := lockSession(c)
	defer sess.mu.Unlock()

	if sess.boardMutated {
		sess.boardMutated = false
	} else {
		_ = sess.Board.Load(c.Request.Context())
	}
	board := sess.Board.Board()
	sess.Board.DismissBanner()
	s.render(c, "board", boardPage{
		page:  page{Title: "Board", Active: "board", Error: board.Error},
		Board: board,
	})
}

func (s *Server) applyTransition(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	sess := lockSession(c)
	defer sess.mu.Unlock()
	ctx := c.Request.Context()

	action := domain.Action(c.Param("action"))
	if err := sess.Board.Apply(ctx, id, action); err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "board transition rejected",
			slog.Int64("order.id", id), slog.String("action", string(action)), slog.String("error", err.Error()))
	}
	sess.boardMutated = true
	c.Redirect(http.StatusSeeOther, "/board")
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.String(http.StatusBadRequest, "invalid order id")
		return 0, false
	}
	return id, true
}

// PurgeSessions drops idle sessions when the store supports expiry.
func (s *Server) PurgeSessions(ctx context.Context) (int, error) {
	expiring, ok := s.sessions.(ports.ExpiringSessionStore[*Session])
	if !ok {
		return 0, nil
	}
	return expiring.PurgeExpired(ctx)
}

// RunSessionJanitor purges idle sessions every interval until ctx is done.
func (s *Server) RunSessionJanitor(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return nil
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			removed, err := s.PurgeSessions(ctx)
			if err != nil {
				s.logger.LogAttrs(ctx, slog.LevelWarn, "failed to purge sessions", slog.String("error", err.Error()))
				continue
			}
			if removed > 0 {
				s.logger.LogAttrs(ctx, slog.LevelInfo, "purged idle sessions", slog.Int("sessions.removed", removed))
			}
		}
	}
}
