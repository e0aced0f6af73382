// ABOUTME: Static UI bundle serving with single-page-app fallback
// ABOUTME: Unknown non-API GET paths receive index.html so client routing works

package api

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// spaHandler serves files from dir, falling back to dir/index.html.
func spaHandler(dir string) gin.HandlerFunc {
	root := http.Dir(dir)
	index := filepath.Join(dir, "index.html")

	return func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			notFound(c)
			return
		}
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			notFound(c)
			return
		}

		if f, err := root.Open(c.Request.URL.Path); err == nil {
			info, statErr := f.Stat()
			_ = f.Close()
			if statErr == nil && !info.IsDir() {
				c.FileFromFS(c.Request.URL.Path, root)
				return
			}
		}
		c.File(index)
	}
}

func notFound(c *gin.Context) {
	fail(c, http.StatusNotFound, "Not found")
}
