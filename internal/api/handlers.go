package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/dockpane/pkg/dock"
	perrors "github.com/matzehuels/dockpane/pkg/errors"
	"github.com/matzehuels/dockpane/pkg/persist"
	"github.com/matzehuels/dockpane/pkg/render/nodelink"
	"github.com/matzehuels/dockpane/pkg/render/wireframe"
)

type putResponse struct {
	Name     string `json:"name"`
	Revision string `json:"revision"`
	Records  int    `json:"records"`
}

func (s *Server) handleGetLayout(w http.ResponseWriter, r *http.Request) {
	snap, err := s.layouts.Load(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// handlePutLayout accepts a snapshot only if it rebuilds into a consistent
// family. What gets stored is the rebuilt family, saved afresh.
func (s *Server) handlePutLayout(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := perrors.ValidateLayoutName(name); err != nil {
		s.writeError(w, r, err)
		return
	}

	var snap persist.Snapshot
	body := http.MaxBytesReader(w, r.Body, maxBody)
	if err := json.NewDecoder(body).Decode(&snap); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			s.writeError(w, r, perrors.New(perrors.ErrCodeInvalidInput, "snapshot larger than %d bytes", maxBody))
			return
		}
		s.writeError(w, r, perrors.Wrap(perrors.ErrCodeInvalidInput, err, "decode snapshot"))
		return
	}

	f, err := s.rebuild(&snap)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	saved := persist.Save(f)
	if err := s.layouts.Save(r.Context(), name, saved); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, putResponse{Name: name, Revision: saved.Revision, Records: len(saved.Records)})
}

func (s *Server) handleDeleteLayout(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	ok, err := s.layouts.Exists(r.Context(), name)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if !ok {
		s.writeError(w, r, perrors.Wrap(perrors.ErrCodeLayoutNotFound, persist.ErrNotFound, "layout %q", name))
		return
	}
	if err := s.layouts.Delete(r.Context(), name); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDOT(w http.ResponseWriter, r *http.Request) {
	f, ok := s.loadFamily(w, r)
	if !ok {
		return
	}
	dot := nodelink.ToDOT(f, nodelink.Options{Detailed: r.URL.Query().Get("detailed") != ""})
	w.Header().Set("Content-Type", "text/vnd.graphviz; charset=utf-8")
	io.WriteString(w, dot)
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	f, ok := s.loadFamily(w, r)
	if !ok {
		return
	}

	var svg []byte
	switch view := r.URL.Query().Get("view"); view {
	case "", "tree":
		dot := nodelink.ToDOT(f, nodelink.Options{Detailed: true})
		out, err := nodelink.RenderSVG(r.Context(), dot)
		if err != nil {
			s.writeError(w, r, perrors.Wrap(perrors.ErrCodeInternal, err, "render tree"))
			return
		}
		svg = out
	case "wireframe":
		svg = wireframe.RenderSVG(f, wireframe.WithTabs())
	default:
		s.writeError(w, r, perrors.New(perrors.ErrCodeUnsupported, "unknown view %q", view))
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write(svg)
}

// loadFamily reads the named layout and rebuilds it, writing the error
// response itself on failure.
func (s *Server) loadFamily(w http.ResponseWriter, r *http.Request) (*dock.Family, bool) {
	snap, err := s.layouts.Load(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, r, err)
		return nil, false
	}
	f, err := s.rebuild(snap)
	if err != nil {
		s.writeError(w, r, err)
		return nil, false
	}
	return f, true
}

// rebuild loads snap into a scratch family and checks its invariants.
func (s *Server) rebuild(snap *persist.Snapshot) (*dock.Family, error) {
	if err := perrors.ValidateBounds(snap.Bounds.Width(), snap.Bounds.Height()); err != nil {
		return nil, err
	}
	f := dock.New(snap.Bounds,
		dock.WithLogger(s.logger),
		dock.WithSplitterWidth(s.splitterWidth),
		dock.WithCaptionHeight(s.captionHeight),
	)
	if err := persist.Load(f, snap, nil); err != nil {
		if perrors.GetCode(err) == "" {
			err = perrors.Wrap(perrors.ErrCodeInvalidLayout, err, "load snapshot")
		}
		return nil, err
	}
	if err := f.VerifyDockers(); err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidLayout, err, "inconsistent layout")
	}
	return f, nil
}
