package handler

import (
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/aula-api/pkg/errors"
	"github.com/noah-isme/aula-api/pkg/response"
)

const spaEntry = "index.html"

// StaticHandler serves the single-page frontend from a directory on disk.
type StaticHandler struct {
	root string
}

// NewStaticHandler constructs StaticHandler rooted at dir.
func NewStaticHandler(dir string) *StaticHandler {
	return &StaticHandler{root: dir}
}

// Serve answers every request no API route matched. Existing files are sent
// as-is; anything else receives the SPA entry document with status 200 so the
// client-side router can take over.
func (h *StaticHandler) Serve(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		response.Error(c, appErrors.ErrNotFound)
		return
	}

	// Clean against "/" so the result never escapes root.
	rel := path.Clean("/" + c.Request.URL.Path)
	if rel != "/" && h.serveFile(c, filepath.Join(h.root, filepath.FromSlash(rel))) {
		return
	}
	if h.serveFile(c, filepath.Join(h.root, spaEntry)) {
		return
	}
	response.Error(c, appErrors.ErrNotFound)
}

func (h *StaticHandler) serveFile(c *gin.Context, name string) bool {
	f, err := os.Open(name)
	if err != nil {
		return false
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		return false
	}
	c.Status(http.StatusOK)
	http.ServeContent(c.Writer, c.Request, info.Name(), info.ModTime(), f)
	return true
}
