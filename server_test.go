package astifilter

import (
	"encoding/json"
	"io/ioutil"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer() *Server {
	return NewServer(ServerOptions{Logger: log.New(ioutil.Discard, "", 0)})
}

func TestServerOK(t *testing.T) {
	s := newTestServer()
	rw := httptest.NewRecorder()
	s.Handler().ServeHTTP(rw, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusOK, rw.Code)
}

func TestServerParse(t *testing.T) {
	s := newTestServer()

	// Events are forwarded to the handler
	var parsed int
	s.eh.AddForEventName(EventNameGraphParsed, func(e Event) bool {
		parsed++
		return false
	})

	rw := httptest.NewRecorder()
	s.Handler().ServeHTTP(rw, httptest.NewRequest(http.MethodPost, "/parse", strings.NewReader("[0:v]scale=640:480[a];[a][1:v]overlay=0:0[out]")))
	require.Equal(t, http.StatusOK, rw.Code)

	var g ServerGraph
	require.NoError(t, json.NewDecoder(rw.Body).Decode(&g))
	require.Len(t, g.Filters, 2)
	assert.Equal(t, "Parsed_scale_0", g.Filters[0].InstanceName)
	assert.Equal(t, "overlay", g.Filters[1].Name)
	require.Len(t, g.Links, 1)
	assert.Equal(t, ServerLink{FromFilter: 0, FromPad: 0, ToFilter: 1, ToPad: 0}, g.Links[0])
	assert.Len(t, g.Inputs, 2)
	assert.Len(t, g.Outputs, 1)
	assert.Equal(t, 1, parsed)
}

func TestServerParseError(t *testing.T) {
	s := newTestServer()

	var errs int
	s.eh.AddForEventName(EventNameError, func(e Event) bool {
		errs++
		return false
	})

	rw := httptest.NewRecorder()
	s.Handler().ServeHTTP(rw, httptest.NewRequest(http.MethodPost, "/parse", strings.NewReader("nonexistentfilter123")))
	require.Equal(t, http.StatusUnprocessableEntity, rw.Code)

	var e ServerError
	require.NoError(t, json.NewDecoder(rw.Body).Decode(&e))
	assert.Contains(t, e.Message, "no such filter")
	assert.Equal(t, 1, errs)
}

func TestServerStatus(t *testing.T) {
	s := newTestServer()

	// Parse once so that counters move
	rw := httptest.NewRecorder()
	s.Handler().ServeHTTP(rw, httptest.NewRequest(http.MethodPost, "/parse", strings.NewReader("split[a][b]")))
	require.Equal(t, http.StatusOK, rw.Code)

	rw = httptest.NewRecorder()
	s.Handler().ServeHTTP(rw, httptest.NewRequest(http.MethodGet, "/status", nil))
	require.Equal(t, http.StatusOK, rw.Code)

	var st ServerStatus
	require.NoError(t, json.NewDecoder(rw.Body).Decode(&st))
	assert.Equal(t, uint64(1), st.NbParses)
	assert.Equal(t, uint64(0), st.NbFailures)
}
