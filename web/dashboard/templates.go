package dashboard

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var pageNames = []string{"list", "board", "confirm"}

var funcs = template.FuncMap{
	"price": func(p float64) string { return strconv.FormatFloat(p, 'f', -1, 64) },
}

// parsePages builds one template set per page, each sharing the layout.
func parsePages() (map[string]*template.Template, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.tmpl", "templates/"+name+".tmpl")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		pages[name] = t
	}
	return pages, nil
}

type page struct {
	Title   string
	Active  string
	Error   string
	Success string
}

func (s *Server) render(c *gin.Context, name string, data any) {
	t, ok := s.pages[name]
	if !ok {
		c.String(http.StatusInternalServerError, "unknown page %q", name)
		return
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		s.logger.LogAttrs(c.Request.Context(), slog.LevelError, "failed to render page",
			slog.String("page", name), slog.String("error", err.Error()))
		c.String(http.StatusInternalServerError, "failed to render page")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}
