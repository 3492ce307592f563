package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net"
	"net/http"

	"github.com/coder/websocket"
	"go.uber.org/zap"

	"github.com/qduelist/qduel/internal/game"
	qnet "github.com/qduelist/qduel/internal/net"
)

//go:embed static
var staticFiles embed.FS

// CardInfo is the JSON representation of a card for the /api/cards endpoint.
type CardInfo struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Kind        string        `json:"kind"`
	BaseDamage  int           `json:"baseDamage,omitempty"`
	Biasable    bool          `json:"biasable,omitempty"`
	Collapsed   string        `json:"collapsed,omitempty"`
	Outcomes    []OutcomeInfo `json:"outcomes"`
}

// OutcomeInfo describes one measurable outcome of a card.
type OutcomeInfo struct {
	Label  string `json:"label,omitempty"`
	Effect string `json:"effect"`
}

// Server is the qduel web UI server.
type Server struct {
	poolFile string
	logger   *zap.Logger
	mux      *http.ServeMux
}

// NewServer creates a new web server. An empty poolFile serves the
// built-in pool.
func NewServer(poolFile string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		poolFile: poolFile,
		logger:   logger,
		mux:      http.NewServeMux(),
	}
	s.setupRoutes()
	return s
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) setupRoutes() {
	staticFS, _ := fs.Sub(staticFiles, "static")

	// Serve index.html at root
	s.mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		f, err := staticFS.Open("index.html")
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		defer f.Close()
		io.Copy(w, f.(io.Reader))
	})

	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	s.mux.HandleFunc("GET /api/cards", s.handleCards)
	s.mux.HandleFunc("GET /api/pools", s.handlePools)

	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
}

func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	cards := make([]CardInfo, 0, len(game.CardRegistry))
	for _, name := range game.CardNames() {
		c := game.LookupCard(name)
		ci := CardInfo{
			Name:        c.Name,
			Description: c.Description,
			Kind:        c.Kind.String(),
			BaseDamage:  c.BaseDamage,
			Biasable:    c.Biasable,
			Collapsed:   c.PreCollapsed,
		}
		if c.Kind == game.CardDeterministic {
			ci.Outcomes = []OutcomeInfo{{Effect: c.Effect.Describe()}}
		} else {
			for _, label := range c.Labels {
				ci.Outcomes = append(ci.Outcomes, OutcomeInfo{
					Label:  label,
					Effect: c.Outcomes[label].Describe(),
				})
			}
		}
		cards = append(cards, ci)
	}
	writeJSON(w, cards)
}

func (s *Server) handlePools(w http.ResponseWriter, r *http.Request) {
	pools, err := loadPools(s.poolFile)
	if err != nil {
		s.logger.Error("load pools", zap.String("path", s.poolFile), zap.Error(err))
		http.Error(w, "could not read pools file", http.StatusInternalServerError)
		return
	}
	writeJSON(w, poolInfos(pools))
}

// connectMessage is the first frame the browser sends on /ws.
type connectMessage struct {
	Type       string `json:"type"`
	Addr       string `json:"addr"`
	PoolNumber int    `json:"pool_number"`
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	wsConn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Allow connections from any origin
	})
	if err != nil {
		s.logger.Warn("websocket accept", zap.Error(err))
		return
	}
	defer wsConn.CloseNow()

	ctx := r.Context()

	_, connectData, err := wsConn.Read(ctx)
	if err != nil {
		s.logger.Warn("websocket read connect", zap.Error(err))
		return
	}

	var connectMsg connectMessage
	if err := json.Unmarshal(connectData, &connectMsg); err != nil || connectMsg.Type != "connect" {
		wsConn.Close(websocket.StatusPolicyViolation, "expected connect message")
		return
	}
	logger := s.logger.With(zap.String("addr", connectMsg.Addr), zap.Int("pool", connectMsg.PoolNumber))

	var d net.Dialer
	tcpConn, err := d.DialContext(ctx, "tcp", connectMsg.Addr)
	if err != nil {
		errMsg, _ := json.Marshal(map[string]string{
			"type":   "error",
			"result": fmt.Sprintf("Could not connect to game server at %s: %v", connectMsg.Addr, err),
		})
		wsConn.Write(ctx, websocket.MessageText, errMsg)
		wsConn.Close(websocket.StatusNormalClosure, "connection failed")
		return
	}
	defer tcpConn.Close()
	logger.Info("browser joined duel")

	joinMsg, _ := json.Marshal(qnet.ClientMessage{Type: "join", PoolNumber: connectMsg.PoolNumber})
	joinMsg = append(joinMsg, '\n')
	if _, err := tcpConn.Write(joinMsg); err != nil {
		logger.Warn("tcp write join", zap.Error(err))
		return
	}

	done := make(chan struct{})

	// TCP → WebSocket (server messages to browser)
	go func() {
		defer close(done)
		dec := json.NewDecoder(tcpConn)
		for {
			var msg json.RawMessage
			if err := dec.Decode(&msg); err != nil {
				if !errors.Is(err, io.EOF) && !errors.Is(err, net.ErrClosed) {
					logger.Warn("tcp read", zap.Error(err))
				}
				return
			}
			if err := wsConn.Write(ctx, websocket.MessageText, msg); err != nil {
				logger.Warn("websocket write", zap.Error(err))
				return
			}
		}
	}()

	// WebSocket → TCP (browser responses to server)
	go func() {
		for {
			_, data, err := wsConn.Read(ctx)
			if err != nil {
				tcpConn.Close()
				return
			}
			data = append(data, '\n')
			if _, err := tcpConn.Write(data); err != nil {
				logger.Warn("tcp write", zap.Error(err))
				return
			}
		}
	}()

	<-done
	logger.Info("browser session ended")
	wsConn.Close(websocket.StatusNormalClosure, "game ended")
}

// ListenAndServe starts the HTTP server and shuts it down when ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.mux}
	go func() {
		<-ctx.Done()
		srv.Close()
	}()
	s.logger.Info("web UI listening", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func percent(f float64) string {
	return fmt.Sprintf("%.0f%%", f*100)
}
