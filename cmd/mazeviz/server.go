package main

import (
	_ "embed"
	"image/png"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"github.com/matryer/way"
	log "github.com/sirupsen/logrus"

	"github.com/pdrpinto/mazesearch"
	"github.com/pdrpinto/mazesearch/internal/config"
	"github.com/pdrpinto/mazesearch/internal/render"
	"github.com/pdrpinto/mazesearch/internal/round"
)

const (
	URI_INDEX = "/"
	URI_WS    = "/ws"
	URI_SHOT  = "/maze/:seed"
)

//go:embed static/index.html
var indexHTML []byte

type Server struct {
	router   *way.Router
	cfg      config.Config
	logger   *log.Logger
	upgrader *websocket.Upgrader
	// now is the clock rounds are ticked with.
	now func() time.Time
}

func NewServer(cfg config.Config, logger *log.Logger) *Server {
	s := &Server{
		cfg:    cfg,
		logger: logger,
		upgrader: &websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1 << 14,
		},
		now: time.Now,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router = way.NewRouter()
	s.router.HandleFunc("GET", URI_INDEX, s.handleIndex)
	s.router.HandleFunc("GET", URI_WS, s.handleSocket)
	s.router.HandleFunc("GET", URI_SHOT, s.handleShot)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(indexHTML)
}

// handleSocket plays rounds over one websocket until the client leaves.
// Each connection owns its round; the client only ever sends clicks.
func (s *Server) handleSocket(w http.ResponseWriter, r *http.Request) {
	con, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warnf("websocket upgrade: %v", err)
		return
	}
	defer con.Close()

	rnd, err := round.New(s.cfg, round.WithLogger(s.logger))
	if err != nil {
		s.logger.Errorf("new round: %v", err)
		return
	}

	clicks := make(chan struct{}, 1)
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			var msg clientMessage
			if err := con.ReadJSON(&msg); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					s.logger.Infof("websocket read: %v", err)
				}
				return
			}
			if msg.Type != clientClick {
				continue
			}
			select {
			case clicks <- struct{}{}:
			default:
			}
		}
	}()

	ticker := time.NewTicker(s.cfg.FrameInterval())
	defer ticker.Stop()
	s.logger.WithField("remote", r.RemoteAddr).Info("viewer connected")
	for {
		select {
		case <-gone:
			s.logger.WithField("remote", r.RemoteAddr).Info("viewer left")
			return
		case <-clicks:
			rnd.Trigger()
		case <-ticker.C:
			frame, err := rnd.Tick(s.now())
			if err != nil {
				s.logger.Errorf("tick: %v", err)
				return
			}
			if err := con.WriteJSON(newFrameMessage(frame)); err != nil {
				s.logger.Infof("websocket write: %v", err)
				return
			}
		}
	}
}

// handleShot renders both searches over the maze grown from the seed in the
// path, using the configured dimensions and generator.
func (s *Server) handleShot(w http.ResponseWriter, r *http.Request) {
	seed, err := strconv.ParseInt(way.Param(r.Context(), "seed"), 10, 64)
	if err != nil {
		http.Error(w, "seed must be an integer", http.StatusBadRequest)
		return
	}
	m, err := mazesearch.Generate(s.cfg.Cols, s.cfg.Rows,
		mazesearch.WithSeed(seed), mazesearch.WithGenerator(s.cfg.Generator))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	start, goal := m.Corners()
	cmp, err := mazesearch.Compare(r.Context(), m, start, goal)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	img, err := render.Comparison(cmp, s.cfg.CellSize)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	if err := png.Encode(w, img); err != nil {
		s.logger.Warnf("encode png: %v", err)
	}
}
