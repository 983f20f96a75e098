package gfformio

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-formbridge/pkg/apidoc"
	"github.com/goliatone/go-formbridge/pkg/endpoint"
)

// Mux is the minimal interface required to register a net/http handler.
// It is satisfied by *http.ServeMux.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// MountPath returns the full mount path for the bridge route under basePath.
func MountPath(basePath string, fns ...OptionFn) string {
	opts := NewOptions(fns...)
	return mountPath(basePath, opts.RoutePath)
}

// RegisterRoutes registers the bridge under basePath on mux and returns the
// registered patterns.
func RegisterRoutes(mux Mux, basePath string, svc *endpoint.Service, fns ...OptionFn) ([]string, error) {
	return RegisterRoutesWithOptions(mux, basePath, svc, NewOptions(fns...))
}

// RegisterRoutesWithOptions registers the bridge using a pre-built Options
// value. The bare route is registered too so a request without an id is
// answered with a missing id record instead of a mux 404.
func RegisterRoutesWithOptions(mux Mux, basePath string, svc *endpoint.Service, opts Options) ([]string, error) {
	if mux == nil {
		return nil, fmt.Errorf("gfformio: missing mux")
	}
	opts = NewOptions(func(o *Options) { *o = opts })
	mount := mountPath(basePath, opts.RoutePath)
	handler := HandlerWithOptions(svc, opts)

	patterns := []string{mount, mount + "/{id}"}
	for _, pattern := range patterns {
		mux.Handle(pattern, handler)
	}
	if opts.ServeAPIDoc {
		docPattern := mount + "/openapi.json"
		mux.Handle(docPattern, APIDocHandler(mount))
		patterns = append(patterns, docPattern)
	}
	return patterns, nil
}

// APIDocHandler serves the OpenAPI description of the bridge mounted at
// mount.
func APIDocHandler(mount string) http.Handler {
	doc := apidoc.Document(mount)
	encoded, err := json.Marshal(doc)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		if err != nil {
			writeEnvelope(w, http.StatusInternalServerError, endpoint.ErrorRecord{Message: http.StatusText(http.StatusInternalServerError)})
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodHead {
			return
		}
		_, _ = w.Write(encoded)
	})
}

func mountPath(basePath, routePath string) string {
	basePath = strings.TrimSpace(basePath)
	routePath = strings.TrimSpace(routePath)

	if routePath == "" {
		routePath = "/"
	}
	if !strings.HasPrefix(routePath, "/") {
		routePath = "/" + routePath
	}
	routePath = strings.TrimRight(routePath, "/")

	if basePath == "" || basePath == "/" {
		return routePath
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	basePath = strings.TrimRight(basePath, "/")
	return basePath + routePath
}
