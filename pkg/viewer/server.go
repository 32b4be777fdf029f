// Package viewer serves rendered screens to web browsers.
package viewer

import (
	"context"
	"net"
	"net/http"
	"sync"

	"github.com/golang/glog"
	"golang.org/x/net/websocket"

	"github.com/robotalks/camview/pkg/display"
	fx "github.com/robotalks/camview/pkg/framework"
)

type screen [display.BitmapLength]byte

type client struct {
	ch chan *screen
}

func (c *client) push(s *screen) {
	select {
	case c.ch <- s:
		return
	default:
	}
	// a slow client only gets the latest screen
	select {
	case <-c.ch:
	default:
	}
	select {
	case c.ch <- s:
	default:
	}
}

// Server streams screens over websocket.
type Server struct {
	Addr string

	lock    sync.Mutex
	clients map[*client]struct{}
	latest  *screen
}

// NewServer creates a Server listening on addr.
func NewServer(addr string) *Server {
	return &Server{Addr: addr, clients: make(map[*client]struct{})}
}

// ShowScreen implements camview.Sink.
func (s *Server) ShowScreen(b *display.Bitmap) {
	scr := screen(b.Pix)
	s.lock.Lock()
	defer s.lock.Unlock()
	s.latest = &scr
	for c := range s.clients {
		c.push(&scr)
	}
}

// Clients returns the number of connected clients.
func (s *Server) Clients() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.clients)
}

// Handler creates the http.Handler of the viewer.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.serveIndex)
	mux.Handle("/ws", websocket.Handler(s.serveWS))
	return mux
}

func (s *Server) serveIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(indexHTML))
}

func (s *Server) addClient() *client {
	c := &client{ch: make(chan *screen, 1)}
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.clients == nil {
		s.clients = make(map[*client]struct{})
	}
	s.clients[c] = struct{}{}
	if s.latest != nil {
		c.push(s.latest)
	}
	return c
}

func (s *Server) removeClient(c *client) {
	s.lock.Lock()
	delete(s.clients, c)
	s.lock.Unlock()
}

func (s *Server) serveWS(conn *websocket.Conn) {
	defer conn.Close()
	c := s.addClient()
	defer s.removeClient(c)
	glog.V(1).Infof("viewer %s connected", conn.Request().RemoteAddr)

	closedCh := make(chan struct{})
	go func() {
		defer close(closedCh)
		var msg []byte
		for {
			if err := websocket.Message.Receive(conn, &msg); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-closedCh:
			glog.V(1).Infof("viewer %s disconnected", conn.Request().RemoteAddr)
			return
		case scr := <-c.ch:
			if err := websocket.Message.Send(conn, scr[:]); err != nil {
				glog.V(1).Infof("viewer %s send error: %v", conn.Request().RemoteAddr, err)
				return
			}
		}
	}
}

// Run implements Runnable.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	glog.Infof("viewer listening on http://%s/", ln.Addr())
	srv := &http.Server{Handler: s.Handler()}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	select {
	case <-ctx.Done():
		srv.Close()
		return ctx.Err()
	case err = <-errCh:
		return err
	}
}

// AddToLoop implements LoopAdder.
func (s *Server) AddToLoop(loop *fx.Loop) {
	loop.AddRunnable(fx.NamedRun("viewer", s))
}
