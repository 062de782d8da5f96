package dashboard

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/application"
)

// SessionCookie names the cookie carrying the browser session id.
const SessionCookie = "order_dash_session"

const sessionKey = "dashboard.session"

// Session holds one browser's view models. Handlers hold mu for the whole
// request so events of one session never interleave.
type Session struct {
	mu    sync.Mutex
	List  *application.ListView
	Board *application.BoardView

	// listMutated/boardMutated mark that a POST already reloaded the view,
	// so the following GET renders its banner without another round trip.
	listMutated  bool
	boardMutated bool
}

func (s *Server) newSession() *Session {
	return &Session{
		List:  application.NewListView(s.gateway, s.viewOpts...),
		Board: application.NewBoardView(s.gateway, s.viewOpts...),
	}
}

// sessionMiddleware attaches the caller's session, creating one when the cookie
// is absent, malformed, or unknown to the store.
func (s *Server) sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if raw, err := c.Cookie(SessionCookie); err == nil {
			if id, err := uuid.Parse(raw); err == nil {
				if sess, ok := s.sessions.Load(ctx, id.String()); ok {
					c.Set(sessionKey, sess)
					c.Next()
					return
				}
			}
		}
		id, sess, err := s.createSession(ctx)
		if err != nil {
			s.logger.LogAttrs(ctx, slog.LevelError, "failed to create session", slog.String("error", err.Error()))
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(SessionCookie, id, 0, "/", "", false, true)
		c.Set(sessionKey, sess)
		c.Next()
	}
}

func (s *Server) createSession(ctx context.Context) (string, *Session, error) {
	id := uuid.NewString()
	sess := s.newSession()
	if err := s.sessions.Save(ctx, id, sess); err != nil {
		return "", nil, err
	}
	return id, sess, nil
}

// lockSession returns the request's session locked; callers must Unlock.
func lockSession(c *gin.Context) *Session {
	sess := c.MustGet(sessionKey).(*Session)
	sess.mu.Lock()
	return sess
}
