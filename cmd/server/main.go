package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pagedmem/pagesim/simulator"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins for development
		return true
	},
}

// Client message types
type ClientMessage struct {
	Type    string               `json:"type"`
	Config  *simulator.SimConfig `json:"config,omitempty"`
	Jobs    []simulator.JobSpec  `json:"jobs,omitempty"`
	JobID   int                  `json:"jobID,omitempty"`
	Page    int                  `json:"page,omitempty"`
	Address int                  `json:"address,omitempty"`
}

// Server message types
type ServerMessage struct {
	Type       string                  `json:"type"`
	Running    *bool                   `json:"running,omitempty"`
	Config     *simulator.SimConfig    `json:"config,omitempty"`
	Metrics    *simulator.Metrics      `json:"metrics,omitempty"`
	State      map[string]interface{}  `json:"state,omitempty"`
	Access     *simulator.AccessResult `json:"access,omitempty"`
	Resolution *simulator.Resolution   `json:"resolution,omitempty"`
	Error      string                  `json:"error,omitempty"`
}

// simState manages the simulation state and UI pacing
type simState struct {
	sim     *simulator.Simulator
	running bool
	paused  bool
	mu      sync.Mutex
	stopCh  chan struct{}
}

func newSimState(config simulator.SimConfig) (*simState, error) {
	sim, err := simulator.NewSimulator(config)
	if err != nil {
		return nil, err
	}

	return &simState{
		sim:     sim,
		running: false,
		paused:  false,
		stopCh:  make(chan struct{}),
	}, nil
}

// start begins the simulation (sets running flag)
func (s *simState) start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = true
	s.paused = false
}

// pause pauses the simulation
func (s *simState) pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = true
}

// reset resets the simulation
func (s *simState) reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
	s.paused = false
	return s.sim.Reset()
}

// updateConfig updates the configuration and restarts the run
func (s *simState) updateConfig(config simulator.SimConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
	s.paused = false
	return s.sim.UpdateConfig(config)
}

// loadJobs ingests a job stream
func (s *simState) loadJobs(specs []simulator.JobSpec) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sim.LoadJobs(specs)
}

// access resolves a single page access on behalf of the client
func (s *simState) access(jobID, page int) (simulator.AccessResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sim.HandleAccess(jobID, page)
}

// resolve translates a logical address on behalf of the client
func (s *simState) resolve(jobID, address int) (simulator.Resolution, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sim.ResolveAddress(jobID, address)
}

// isRunning returns true if simulation is running and not paused
func (s *simState) isRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running && !s.paused
}

// getConfig returns the current simulator configuration
func (s *simState) getConfig() simulator.SimConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sim.Config()
}

// step advances the timeline by one event batch (called by UI ticker)
func (s *simState) step() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running && !s.paused {
		if !s.sim.Step() {
			s.running = false
		}
	}
}

// metrics returns current metrics
func (s *simState) metrics() *simulator.Metrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sim.Metrics()
}

// state returns current state
func (s *simState) state() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sim.State()
}

// stop signals the UI loop to stop
func (s *simState) stop() {
	close(s.stopCh)
}

// uiUpdateLoop periodically calls Step() and sends updates to the client.
// This runs in its own goroutine and controls UI pacing.
func uiUpdateLoop(conn *safeConn, state *simState) {
	ticker := time.NewTicker(500 * time.Millisecond) // 2 updates/sec
	defer ticker.Stop()

	for {
		select {
		case <-state.stopCh:
			log.Println("UI update loop stopping")
			return

		case <-ticker.C:
			if state.isRunning() {
				// Advance to the next event timestamp
				state.step()

				// Send metrics update
				metrics := state.metrics()
				updatePrometheusMetrics(metrics)
				metricsMsg := ServerMessage{
					Type:    "metrics",
					Metrics: metrics,
				}
				if err := conn.WriteJSON(metricsMsg); err != nil {
					log.Printf("Error sending metrics: %v", err)
					return
				}

				// Send state update
				stateMsg := ServerMessage{
					Type:  "state",
					State: state.state(),
				}
				if err := conn.WriteJSON(stateMsg); err != nil {
					log.Printf("Error sending state: %v", err)
					return
				}
			}
		}
	}
}

// safeConn wraps a WebSocket connection with a mutex to prevent concurrent writes
type safeConn struct {
	*websocket.Conn
	writeMu sync.Mutex
}

func (sc *safeConn) WriteJSON(v interface{}) error {
	sc.writeMu.Lock()
	defer sc.writeMu.Unlock()
	return sc.Conn.WriteJSON(v)
}

func sendStatus(conn *safeConn, state *simState) {
	running := state.isRunning()
	cfg := state.getConfig()
	statusMsg := ServerMessage{
		Type:    "status",
		Running: &running,
		Config:  &cfg,
	}
	if err := conn.WriteJSON(statusMsg); err != nil {
		log.Printf("Error sending status: %v", err)
	}
}

func sendError(conn *safeConn, err error) {
	if werr := conn.WriteJSON(ServerMessage{Type: "error", Error: err.Error()}); werr != nil {
		log.Printf("Error sending error: %v", werr)
	}
}

func handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Error upgrading connection: %v", err)
		return
	}
	defer conn.Close()

	// Wrap connection with mutex for safe concurrent writes
	safeConn := &safeConn{Conn: conn}

	log.Println("Client connected")

	// Create simulator state with default config
	config := simulator.DefaultConfig()
	state, err := newSimState(config)
	if err != nil {
		log.Printf("Error creating simulator: %v", err)
		return
	}

	// Send initial status
	sendStatus(safeConn, state)

	// Start UI update loop
	go uiUpdateLoop(safeConn, state)

	// Handle messages from client
	for {
		var msg ClientMessage
		err := conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("Error reading message: %v", err)
			}
			break
		}

		log.Printf("Received command: %s", msg.Type)

		switch msg.Type {
		case "start":
			state.start()
			log.Println("Simulator started")
			sendStatus(safeConn, state)

		case "pause":
			state.pause()
			log.Println("Simulator paused")
			sendStatus(safeConn, state)

		case "reset":
			if err := state.reset(); err != nil {
				log.Printf("Error resetting: %v", err)
				sendError(safeConn, err)
				break
			}
			log.Println("Simulator reset")
			sendStatus(safeConn, state)

		case "config_update":
			if msg.Config == nil {
				break
			}
			if err := state.updateConfig(*msg.Config); err != nil {
				log.Printf("Error updating config: %v", err)
				sendError(safeConn, err)
				break
			}
			log.Printf("Config updated: %+v", msg.Config)
			sendStatus(safeConn, state)

		case "load_jobs":
			if err := state.loadJobs(msg.Jobs); err != nil {
				log.Printf("Error loading jobs: %v", err)
				sendError(safeConn, err)
				break
			}
			log.Printf("Loaded %d jobs", len(msg.Jobs))
			safeConn.WriteJSON(ServerMessage{Type: "state", State: state.state()})

		case "access":
			result, err := state.access(msg.JobID, msg.Page)
			if err != nil {
				sendError(safeConn, err)
				break
			}
			safeConn.WriteJSON(ServerMessage{Type: "access", Access: &result})

		case "resolve":
			res, err := state.resolve(msg.JobID, msg.Address)
			if err != nil {
				sendError(safeConn, err)
				break
			}
			safeConn.WriteJSON(ServerMessage{Type: "resolution", Resolution: &res})
		}
	}

	// Clean up
	state.stop()
	log.Println("Client disconnected")
}

func healthzHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "ok")
}

func quitHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Shutdown requested via /quitquitquit")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "Server shutting down...")

	go func() {
		time.Sleep(100 * time.Millisecond)
		log.Println("Server stopped")
		os.Exit(0)
	}()
}

func main() {
	addr := flag.String("addr", ":8080", "HTTP listen address")
	flag.Parse()

	initPrometheusMetrics()

	http.HandleFunc("/ws", handleWebSocket)
	http.HandleFunc("/healthz", healthzHandler)
	http.HandleFunc("/quitquitquit", quitHandler)
	http.Handle("/metrics", promhttp.Handler())

	log.Printf("Server starting on http://localhost%s", *addr)
	log.Printf("WebSocket endpoint: ws://localhost%s/ws", *addr)
	log.Printf("Prometheus endpoint: http://localhost%s/metrics", *addr)
	log.Fatal(http.ListenAndServe(*addr, nil))
}
