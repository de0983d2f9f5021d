package api

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rotisserie/eris"

	"github.com/sells-group/urbangrowth/internal/export"
	"github.com/sells-group/urbangrowth/internal/timeline"
	"github.com/sells-group/urbangrowth/internal/trend"
)

// SessionResponse describes the session state.
type SessionResponse struct {
	ID      string `json:"id"`
	Year    int    `json:"year"`
	Hovered string `json:"hovered,omitempty"`
}

// YearsResponse lists the series and the slider.
type YearsResponse struct {
	Years   []int               `json:"years"`
	Current int                 `json:"current"`
	Slider  timeline.SliderSpec `json:"slider"`
}

// YearRequest is the body of PUT /api/year.
type YearRequest struct {
	Year *int `json:"year"`
}

// HoverResponse is returned by POST .../hover.
type HoverResponse struct {
	Hovered string       `json:"hovered"`
	Panel   *trend.Panel `json:"panel,omitempty"`
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) session(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, SessionResponse{ID: s.ctl.SessionID(), Year: s.ctl.Year(), Hovered: s.ctl.Hovered()})
}

func (s *Server) years(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	years := s.ctl.Snapshot().Years()
	writeJSON(w, http.StatusOK, YearsResponse{
		Years:   years,
		Current: s.ctl.Year(),
		Slider:  timeline.Slider(years, s.ctl.Year()),
	})
}

func (s *Server) frame(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.ctl.Frame())
}

func (s *Server) setYear(w http.ResponseWriter, r *http.Request) {
	var req YearRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, eris.Wrap(err, "api: invalid request body"))
		return
	}
	if req.Year == nil {
		writeError(w, http.StatusBadRequest, eris.New("api: year is required"))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	fr, err := s.ctl.SetYear(*req.Year)
	if err != nil {
		s.writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, fr)
}

func (s *Server) symbols(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	fr := s.ctl.Frame()
	s.mu.Unlock()

	data, err := export.MarshalFrameGeoJSON(fr)
	if err != nil {
		s.writeSessionError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	_, _ = w.Write(data)
}

func (s *Server) legends(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, export.LegendsOf(s.ctl.Snapshot(), s.ctl.Year()))
}

func (s *Server) cacheStats(w http.ResponseWriter, _ *http.Request) {
	if s.cache == nil {
		writeJSON(w, http.StatusOK, trend.CacheStats{})
		return
	}
	writeJSON(w, http.StatusOK, s.cache.Stats())
}

func (s *Server) hover(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.ctl.Hover(id)
	if err != nil {
		s.writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, HoverResponse{Hovered: id, Panel: p})
}

func (s *Server) leave(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ctl.Leave(chi.URLParam(r, "id")); err != nil {
		s.writeSessionError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) trendJSON(w http.ResponseWriter, r *http.Request) {
	s.serveTrend(w, r, "json", "application/json", func(p trend.Panel) ([]byte, error) {
		return json.Marshal(p)
	})
}

func (s *Server) trendSVG(w http.ResponseWriter, r *http.Request) {
	s.serveTrend(w, r, "svg", "image/svg+xml", func(p trend.Panel) ([]byte, error) {
		return p.SVG(), nil
	})
}

func (s *Server) trendPNG(w http.ResponseWriter, r *http.Request) {
	s.serveTrend(w, r, "png", "image/png", func(p trend.Panel) ([]byte, error) {
		var buf bytes.Buffer
		if err := p.WritePlot(&buf, "png"); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	})
}

// serveTrend renders a feature's trend chart through the panel cache. The
// chart depends only on the feature, so it is shared across years.
func (s *Server) serveTrend(w http.ResponseWriter, r *http.Request, format, contentType string, render func(trend.Panel) ([]byte, error)) {
	id := chi.URLParam(r, "id")
	key := trend.PanelKey{FeatureID: id, Format: format, Config: s.opts.Trend}
	if s.cache != nil {
		if cached, ok := s.cache.Get(key); ok {
			w.Header().Set("Content-Type", contentType)
			w.Header().Set("X-Cache", "hit")
			_, _ = w.Write(cached)
			return
		}
	}

	snap := s.ctl.Snapshot()
	f, ok := snap.Features.Get(id)
	if !ok {
		s.writeSessionError(w, eris.Wrapf(timeline.ErrUnknownFeature, "api: trend %q", id))
		return
	}
	p, err := trend.Build(f, snap.Years(), s.opts.Trend)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	data, err := render(p)
	if err != nil {
		s.writeSessionError(w, err)
		return
	}

	if s.cache != nil {
		s.cache.Put(key, data)
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("X-Cache", "miss")
	_, _ = w.Write(data)
}
