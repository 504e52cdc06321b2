package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"os"

	"github.com/asticode/go-astifilter"
	"github.com/asticode/go-astikit"
)

// Flags
var (
	graph     = flag.String("g", "", "the graph description")
	graphPath = flag.String("f", "", "the path to a file containing the graph description")
	output    = flag.String("o", "json", "the one-shot output format (json|c)")
)

func main() {
	// Parse flags
	flag.Parse()

	// Create logger
	l := log.New(log.Writer(), log.Prefix(), log.Flags())

	// Create configuration
	c, err := newConfiguration()
	if err != nil {
		l.Fatal(fmt.Errorf("main: creating configuration failed: %w", err))
	}

	// Create parser
	p := astifilter.NewParser(astifilter.ParserOptions{
		Logger:   l,
		Registry: c.Filter.Registry.StaticRegistry(),
	})

	// Get graph description
	desc := *graph
	if desc == "" && *graphPath != "" {
		var b []byte
		if b, err = ioutil.ReadFile(*graphPath); err != nil {
			l.Fatal(fmt.Errorf("main: reading %s failed: %w", *graphPath, err))
		}
		desc = string(b)
	}

	// One-shot mode
	if desc != "" {
		// Parse
		var g *astifilter.Graph
		if g, err = p.Parse(desc); err != nil {
			l.Fatal(fmt.Errorf("main: parsing graph failed: %w", err))
		}

		// Write
		switch *output {
		case "c":
			fmt.Print(astifilter.GenerateC(g))
		default:
			if err = json.NewEncoder(os.Stdout).Encode(g); err != nil {
				l.Fatal(fmt.Errorf("main: marshaling graph failed: %w", err))
			}
		}
		return
	}

	// Create event handler
	eh := astifilter.NewEventHandler()

	// Create server
	s := astifilter.NewServer(astifilter.ServerOptions{
		EventHandler: eh,
		Logger:       l,
		Parser:       p,
	})
	s.EventHandlerAdapter(eh)

	// Create worker
	w := astikit.NewWorker(astikit.WorkerOptions{Logger: l})

	// Handle signals
	w.HandleSignals()

	// Serve
	astikit.ServeHTTP(w, astikit.ServeHTTPOptions{
		Addr:    c.Filter.Server.Addr,
		Handler: s.Handler(),
	})

	// Wait
	w.Wait()
}
