package server

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	perrors "github.com/stakpak/paks-og/pkg/errors"
	"github.com/stakpak/paks-og/pkg/pipeline"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

// handleImage serves GET /api/og/{owner}/{name}/png. Route params arrive
// percent-encoded (see escapedRoutePath) and are decoded once here.
//
// Invalid path segments get a 400 with the validation message. Any failure
// after validation is a 500 with an empty body; registry failures never
// reach here because the pipeline falls back to defaults.
func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	owner, err := url.PathUnescape(chi.URLParam(r, "owner"))
	if err != nil {
		http.Error(w, "invalid owner encoding", http.StatusBadRequest)
		return
	}
	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil {
		http.Error(w, "invalid name encoding", http.StatusBadRequest)
		return
	}

	res, err := s.renderer.Execute(r.Context(), pipeline.Options{
		Owner:  owner,
		Name:   name,
		Format: pipeline.FormatPNG,
		Width:  s.width,
	})
	if err != nil {
		status := perrors.HTTPStatus(err)
		if status == http.StatusBadRequest {
			http.Error(w, perrors.UserMessage(err), status)
			return
		}
		s.logger.Error("card generation failed",
			"owner", owner,
			"name", name,
			"code", perrors.GetCode(err),
			"err", err,
			"request_id", middleware.GetReqID(r.Context()))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	h := w.Header()
	h.Set("Content-Type", res.ContentType)
	h.Set("Content-Length", strconv.Itoa(len(res.Artifact)))
	h.Set("Cache-Control", CacheControl)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifact)
}
