package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
	"gitlab.com/gomidi/midi/v2"

	"github.com/jsphweid/tabplay/constants"
	"github.com/jsphweid/tabplay/midiout"
	"github.com/jsphweid/tabplay/model"
	"github.com/jsphweid/tabplay/player"
	"github.com/jsphweid/tabplay/scorefile"
)

var serveHTTPPort int
var serveMidiPort int

var serveScore *model.Score
var serveSink player.Sink

// NewSink creates the MIDI sink the serve command plays through. It is a
// variable so tests can substitute a fake.
var NewSink = func(portNumber int) (player.Sink, error) {
	return midiout.Open(portNumber)
}

var currentRun struct {
	mu     sync.Mutex
	player *player.Player
	id     string
	speed  int
}

// slider-style clients send a burst of speed changes; only the last one in
// a window is applied
var speedDebounce = debounce.New(100 * time.Millisecond)

// InitServe wires the score and sink the serve handlers use. The serve
// command calls it on startup; tests call it directly with a fake sink.
func InitServe(score *model.Score, sink player.Sink) {
	serveScore = score
	serveSink = sink
}

// LoadServeScore loads the score the serve handlers play from.
func LoadServeScore(path string) error {
	score, err := scorefile.Load(path)
	if err != nil {
		return err
	}
	serveScore = score
	return nil
}

func NewServeRouter() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/play", HandlePlay).Methods("POST")
	r.HandleFunc("/stop", HandleStop).Methods("POST")
	r.HandleFunc("/speed", HandleSpeed).Methods("PUT")
	r.HandleFunc("/status", HandleStatus).Methods("GET")
	return r
}

type playRequest struct {
	System      int  `json:"system"`
	Position    int  `json:"position"`
	Speed       int  `json:"speed"`
	NoMetronome bool `json:"noMetronome"`
}

// HandlePlay starts a new playback run, stopping any run in progress, and
// returns the new run's id.
func HandlePlay(w http.ResponseWriter, r *http.Request) {
	var req playRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Speed <= 0 {
		req.Speed = 100
	}

	currentRun.mu.Lock()
	defer currentRun.mu.Unlock()

	if currentRun.player != nil {
		currentRun.player.Stop()
		currentRun.player.Wait()
	}

	p := player.New(serveScore, serveSink, player.Options{
		Speed:       req.Speed,
		NoMetronome: req.NoMetronome,
	})
	currentRun.player = p
	currentRun.id = uuid.NewString()
	currentRun.speed = req.Speed

	p.Play(model.SystemLocation{System: req.System, Position: req.Position})
	writeJSON(w, http.StatusOK, map[string]string{"runId": currentRun.id})
}

func HandleStop(w http.ResponseWriter, r *http.Request) {
	currentRun.mu.Lock()
	p := currentRun.player
	currentRun.mu.Unlock()

	if p != nil {
		p.Stop()
		p.Wait()
	}
	writeJSON(w, http.StatusOK, map[string]bool{"stopped": true})
}

type speedRequest struct {
	Speed int `json:"speed"`
}

// HandleSpeed changes the speed of the current run. Changes are debounced
// so dragging a speed slider does not flood the player.
func HandleSpeed(w http.ResponseWriter, r *http.Request) {
	var req speedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Speed < 1 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid speed"})
		return
	}

	currentRun.mu.Lock()
	currentRun.speed = req.Speed
	p := currentRun.player
	currentRun.mu.Unlock()

	if p != nil {
		speedDebounce(func() {
			p.SetSpeed(req.Speed)
		})
	}
	writeJSON(w, http.StatusOK, map[string]int{"speed": req.Speed})
}

func HandleStatus(w http.ResponseWriter, r *http.Request) {
	currentRun.mu.Lock()
	defer currentRun.mu.Unlock()

	playing := currentRun.player != nil && currentRun.player.Playing()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"playing": playing,
		"runId":   currentRun.id,
		"speed":   currentRun.speed,
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("error encoding response: %v", err)
	}
}

var serveCmd = &cobra.Command{
	Use:   "serve [score file]",
	Short: "Serve an HTTP remote control for playing a score",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		defer midi.CloseDriver()

		if err := LoadServeScore(args[0]); err != nil {
			log.Fatal(err)
		}

		sink, err := NewSink(serveMidiPort)
		if err != nil {
			log.Fatal(err)
		}
		serveSink = sink

		handler := cors.Default().Handler(NewServeRouter())
		addr := fmt.Sprintf(":%v", serveHTTPPort)
		log.Printf("listening on %v", addr)
		log.Fatal(http.ListenAndServe(addr, handler))
	},
}

func init() {
	serveCmd.Flags().IntVar(&serveHTTPPort, "http-port", 8080, "HTTP port to listen on")
	serveCmd.Flags().IntVar(&serveMidiPort, "port", constants.GetPreferredMidiPort(),
		"MIDI output port number")
	rootCmd.AddCommand(serveCmd)
}
