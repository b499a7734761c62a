// Package web serves a live view of device data frames over HTTP:
// a JSON snapshot endpoint and a websocket stream for browsers.
package web

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/golang/glog"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/edgelink/iobridge/pkg/proto"
)

// Server fans incoming data frames out to websocket subscribers and
// keeps the latest frame for the snapshot endpoint.
type Server struct {
	Addr string

	upgrader websocket.Upgrader

	lock sync.RWMutex
	last *proto.DataFrame
	subs map[chan []byte]struct{}
}

// NewServer creates a Server listening on addr.
func NewServer(addr string) *Server {
	return &Server{
		Addr: addr,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		subs: make(map[chan []byte]struct{}),
	}
}

type frameDoc struct {
	Time   time.Time `json:"time"`
	DIP    byte      `json:"dip"`
	LED    byte      `json:"led"`
	Analog [8]uint16 `json:"analog"`
}

func encodeFrame(f *proto.DataFrame) []byte {
	doc := &frameDoc{Time: time.Now(), DIP: f.DIP, LED: f.LED, Analog: f.Analog}
	b, _ := json.Marshal(doc)
	return b
}

// Publish records a frame and notifies websocket subscribers. Slow
// subscribers skip frames rather than blocking the publisher.
func (s *Server) Publish(f *proto.DataFrame) {
	payload := encodeFrame(f)
	s.lock.Lock()
	s.last = f
	for ch := range s.subs {
		select {
		case ch <- payload:
		default:
		}
	}
	s.lock.Unlock()
}

// Router builds the HTTP routes.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Handle("/api/state", http.HandlerFunc(s.handleState)).Methods("GET", "HEAD")
	r.Handle("/ws", http.HandlerFunc(s.handleWS)).Methods("GET")
	r.Handle("/", http.HandlerFunc(s.handleHome)).Methods("GET", "HEAD")
	return r
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	s.lock.RLock()
	last := s.last
	s.lock.RUnlock()
	if last == nil {
		http.Error(w, "no frame received yet", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(encodeFrame(last))
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		glog.Warningf("websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	ch := make(chan []byte, 4)
	s.lock.Lock()
	s.subs[ch] = struct{}{}
	s.lock.Unlock()
	defer func() {
		s.lock.Lock()
		delete(s.subs, ch)
		s.lock.Unlock()
	}()

	// drain client messages to detect close
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case payload := <-ch:
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

const homePage = `<!DOCTYPE html>
<html><head><title>iobridge</title></head>
<body><h3>iobridge live frames</h3><pre id="out">waiting...</pre>
<script>
var ws = new WebSocket((location.protocol=="https:"?"wss://":"ws://")+location.host+"/ws");
ws.onmessage = function(ev){document.getElementById("out").textContent = ev.data;};
</script></body></html>
`

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(homePage))
}

// Run serves HTTP until ctx is done. It implements run.Runnable.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.Addr,
		Handler:      s.Router(),
		ReadTimeout:  4 * time.Second,
		WriteTimeout: 0, // websocket writes are long-lived
	}
	go func() {
		<-ctx.Done()
		srv.Close()
	}()
	glog.Infof("web monitor on http://%s", s.Addr)
	err := srv.ListenAndServe()
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}
