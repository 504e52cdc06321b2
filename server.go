package astifilter

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"net/http"
	"sync/atomic"

	"github.com/asticode/go-astikit"
	"github.com/asticode/go-astiws"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// Server exposes the parser over HTTP and pushes parse events to
// websocket clients
type Server struct {
	eh         *EventHandler
	l          astikit.SeverityLogger
	nbFailures uint64
	nbParses   uint64
	p          *Parser
	ws         *astiws.Manager
}

// ServerOptions represents server options
type ServerOptions struct {
	EventHandler *EventHandler
	Logger       astikit.StdLogger
	Parser       *Parser
}

// NewServer creates a new server
func NewServer(o ServerOptions) (s *Server) {
	s = &Server{
		eh: o.EventHandler,
		l:  astikit.AdaptStdLogger(o.Logger),
		p:  o.Parser,
		ws: astiws.NewManager(astiws.ManagerConfiguration{MaxMessageSize: 8192}, o.Logger),
	}
	if s.eh == nil {
		s.eh = NewEventHandler()
	}
	if s.p == nil {
		s.p = NewParser(ParserOptions{Logger: o.Logger})
	}
	return
}

// EventHandlerAdapter forwards events to websocket clients
func (s *Server) EventHandlerAdapter(eh *EventHandler) {
	eh.AddForAll(func(e Event) bool {
		// Get payload
		var p interface{}
		switch e.Name {
		case EventNameError:
			p = e.Payload.(error).Error()
		case EventNameGraphParsed:
			p = newServerGraph(e.Payload.(*Graph))
		default:
			p = e.Payload
		}

		// Send
		s.sendWebSocket(e.Name, p)
		return false
	})
}

// Handler returns the server handler
func (s *Server) Handler() http.Handler {
	// Create router
	r := httprouter.New()

	// Add routes
	r.Handler(http.MethodGet, "/ok", s.serveOK())
	r.Handler(http.MethodPost, "/parse", s.serveParse())
	r.Handler(http.MethodGet, "/status", s.serveStatus())
	r.Handler(http.MethodGet, "/websocket", s.serveWebSocket())
	return r
}

func (s *Server) serveOK() http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {})
}

func (s *Server) serveParse() http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		// Read graph description
		b, err := ioutil.ReadAll(r.Body)
		if err != nil {
			s.writeJSONError(rw, http.StatusInternalServerError, fmt.Errorf("astifilter: reading body failed: %w", err))
			return
		}

		// Parse
		g, err := s.p.Parse(string(b))
		if err != nil {
			atomic.AddUint64(&s.nbFailures, 1)
			s.eh.Emit(EventError(err))
			s.writeJSONError(rw, http.StatusUnprocessableEntity, err)
			return
		}

		// Emit
		atomic.AddUint64(&s.nbParses, 1)
		s.eh.Emit(EventGraphParsed(g))

		// Write
		s.writeJSONData(rw, newServerGraph(g))
	})
}

func (s *Server) serveStatus() http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		s.writeJSONData(rw, newServerStatus(atomic.LoadUint64(&s.nbParses), atomic.LoadUint64(&s.nbFailures)))
	})
}

func (s *Server) serveWebSocket() http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		if err := s.ws.ServeHTTP(rw, r, s.adaptWebSocketClient); err != nil {
			var e *websocket.CloseError
			if ok := errors.As(err, &e); !ok ||
				(e.Code != websocket.CloseNoStatusReceived && e.Code != websocket.CloseNormalClosure) {
				s.l.Error(fmt.Errorf("astifilter: handling websocket failed: %w", err))
			}
			return
		}
	})
}

func (s *Server) adaptWebSocketClient(c *astiws.Client) (err error) {
	// Register client
	s.ws.AutoRegisterClient(c)

	// Add listeners
	c.AddListener(astiws.EventNameDisconnect, s.webSocketDisconnected)
	c.AddListener("ping", s.webSocketPing)
	return
}

func (s *Server) webSocketDisconnected(c *astiws.Client, eventName string, payload json.RawMessage) error {
	s.ws.UnregisterClient(c)
	return nil
}

func (s *Server) webSocketPing(c *astiws.Client, eventName string, payload json.RawMessage) error {
	if err := c.ExtendConnection(); err != nil {
		s.l.Error(fmt.Errorf("astifilter: extending ws connection failed: %w", err))
	}
	return nil
}

func (s *Server) sendWebSocket(eventName string, payload interface{}) {
	// Loop through clients
	s.ws.Loop(func(_ interface{}, c *astiws.Client) {
		if err := c.Write(eventName, payload); err != nil {
			s.l.Error(fmt.Errorf("astifilter: writing event %s to websocket client %p failed: %w", eventName, c, err))
			return
		}
	})
}

func (s *Server) writeJSONData(rw http.ResponseWriter, data interface{}) {
	if err := json.NewEncoder(rw).Encode(data); err != nil {
		s.writeJSONError(rw, http.StatusInternalServerError, fmt.Errorf("astifilter: json encoding failed: %w", err))
		return
	}
}

// ServerError represents a server error
type ServerError struct {
	Message string `json:"message"`
}

func (s *Server) writeJSONError(rw http.ResponseWriter, code int, err error) {
	rw.WriteHeader(code)
	s.l.Error(err)
	if err := json.NewEncoder(rw).Encode(ServerError{Message: err.Error()}); err != nil {
		s.l.Error(fmt.Errorf("astifilter: json encoding failed: %w", err))
	}
}

// ServerGraph represents a graph exposed by the server
type ServerGraph struct {
	Filters      []ServerFilter `json:"filters"`
	Inputs       []ServerPad    `json:"inputs"`
	Links        []ServerLink   `json:"links"`
	Outputs      []ServerPad    `json:"outputs"`
	ScaleSwsOpts string         `json:"scale_sws_opts,omitempty"`
}

// ServerFilter represents a filter exposed by the server
type ServerFilter struct {
	Args         string `json:"args,omitempty"`
	Index        int    `json:"index"`
	InstanceName string `json:"instance_name"`
	Name         string `json:"name"`
	NbInputs     int    `json:"nb_inputs"`
	NbOutputs    int    `json:"nb_outputs"`
}

// ServerLink represents a link exposed by the server
type ServerLink struct {
	FromFilter int `json:"from_filter"`
	FromPad    int `json:"from_pad"`
	ToFilter   int `json:"to_filter"`
	ToPad      int `json:"to_pad"`
}

// ServerPad represents an open pad exposed by the server
type ServerPad struct {
	Filter int    `json:"filter"`
	Name   string `json:"name,omitempty"`
	Pad    int    `json:"pad"`
}

func newServerGraph(g *Graph) (sg ServerGraph) {
	sg = ServerGraph{
		Filters:      []ServerFilter{},
		Inputs:       []ServerPad{},
		Links:        []ServerLink{},
		Outputs:      []ServerPad{},
		ScaleSwsOpts: g.ScaleSwsOpts,
	}
	for _, f := range g.Filters {
		sg.Filters = append(sg.Filters, ServerFilter{
			Args:         f.Args,
			Index:        f.Index,
			InstanceName: f.InstanceName,
			Name:         f.Name,
			NbInputs:     f.NbInputs,
			NbOutputs:    f.NbOutputs,
		})
	}
	for _, l := range g.Links {
		sg.Links = append(sg.Links, ServerLink{
			FromFilter: l.FromFilter,
			FromPad:    l.FromPad,
			ToFilter:   l.ToFilter,
			ToPad:      l.ToPad,
		})
	}
	for _, i := range g.Inputs {
		sg.Inputs = append(sg.Inputs, ServerPad{
			Filter: i.Filter,
			Name:   i.Name,
			Pad:    i.Pad,
		})
	}
	for _, o := range g.Outputs {
		sg.Outputs = append(sg.Outputs, ServerPad{
			Filter: o.Filter,
			Name:   o.Name,
			Pad:    o.Pad,
		})
	}
	return
}

// ServerStatus represents the server status
type ServerStatus struct {
	CPU        ServerStatusCPU    `json:"cpu"`
	Memory     ServerStatusMemory `json:"memory"`
	NbFailures uint64             `json:"nb_failures"`
	NbParses   uint64             `json:"nb_parses"`
}

// ServerStatusCPU represents cpu usage of the server process
type ServerStatusCPU struct {
	Global     float64   `json:"global"`
	Individual []float64 `json:"individual"`
}

// ServerStatusMemory represents memory usage of the server process
type ServerStatusMemory struct {
	Total uint64 `json:"total"`
	Used  uint64 `json:"used"`
}

func newServerStatus(nbParses, nbFailures uint64) (st ServerStatus) {
	st = ServerStatus{
		NbFailures: nbFailures,
		NbParses:   nbParses,
	}
	if vs, err := cpu.Percent(0, false); err == nil && len(vs) > 0 {
		st.CPU.Global = vs[0]
	}
	if vs, err := cpu.Percent(0, true); err == nil {
		st.CPU.Individual = vs
	}
	if vv, err := mem.VirtualMemory(); err == nil {
		st.Memory = ServerStatusMemory{
			Total: vv.Total,
			Used:  vv.Used,
		}
	}
	return
}
