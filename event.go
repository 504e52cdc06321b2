package astifilter

import (
	"sort"
	"sync"
)

// Default event names
var (
	EventNameError       = "astifilter.error"
	EventNameGraphParsed = "astifilter.graph.parsed"
)

// Event is an event coming out of the parse service
type Event struct {
	Name    string
	Payload interface{}
}

// EventError returns an error event
func EventError(err error) Event {
	return Event{
		Name:    EventNameError,
		Payload: err,
	}
}

// EventGraphParsed returns a graph parsed event
func EventGraphParsed(g *Graph) Event {
	return Event{
		Name:    EventNameGraphParsed,
		Payload: g,
	}
}

// EventCallback represents an event callback
type EventCallback func(e Event) (deleteListener bool)

// EventHandler represents an event handler
type EventHandler struct {
	// Indexed by event name then by listener idx. We use a
	// map[int]EventCallback so that deletion is as smooth as possible.
	cs  map[string]map[int]EventCallback
	idx int
	m   *sync.Mutex
}

// NewEventHandler creates a new event handler
func NewEventHandler() *EventHandler {
	return &EventHandler{
		cs: make(map[string]map[int]EventCallback),
		m:  &sync.Mutex{},
	}
}

// AddForEventName adds a new callback for a specific event name
func (h *EventHandler) AddForEventName(eventName string, c EventCallback) {
	h.m.Lock()
	defer h.m.Unlock()
	if _, ok := h.cs[eventName]; !ok {
		h.cs[eventName] = make(map[int]EventCallback)
	}
	h.idx++
	h.cs[eventName][h.idx] = c
}

// AddForAll adds a new callback for all events
func (h *EventHandler) AddForAll(c EventCallback) {
	h.AddForEventName("", c)
}

func (h *EventHandler) del(eventName string, idx int) {
	h.m.Lock()
	defer h.m.Unlock()
	if _, ok := h.cs[eventName]; !ok {
		return
	}
	delete(h.cs[eventName], idx)
}

type eventHandlerCallback struct {
	c         EventCallback
	eventName string
	idx       int
}

func (h *EventHandler) callbacks(eventName string) (cs []eventHandlerCallback) {
	// Lock
	h.m.Lock()
	defer h.m.Unlock()

	// Index callbacks
	ics := make(map[int]eventHandlerCallback)
	var idxs []int
	for _, name := range []string{"", eventName} {
		for idx, c := range h.cs[name] {
			ics[idx] = eventHandlerCallback{
				c:         c,
				eventName: name,
				idx:       idx,
			}
			idxs = append(idxs, idx)
		}
	}

	// Sort by addition order
	sort.Ints(idxs)
	for _, idx := range idxs {
		cs = append(cs, ics[idx])
	}
	return
}

// Emit emits an event
func (h *EventHandler) Emit(e Event) {
	for _, c := range h.callbacks(e.Name) {
		if c.c(e) {
			h.del(c.eventName, c.idx)
		}
	}
}
