package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// SimulatorConfig holds the simulator configuration
type SimulatorConfig struct {
	ServerURL    string
	SessionID    string
	Latitude     float64
	Longitude    float64
	SendLocation bool
}

// frame mirrors the voice stream's inbound message shape.
type frame struct {
	Type         string        `json:"type"`
	Alternatives []alternative `json:"alternatives,omitempty"`
	Text         string        `json:"text,omitempty"`
	Location     *location     `json:"location,omitempty"`
}

type alternative struct {
	Transcript string  `json:"transcript"`
	Confidence float64 `json:"confidence"`
}

type location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type reply struct {
	Type       string          `json:"type"`
	Resolved   bool            `json:"resolved"`
	Command    json.RawMessage `json:"command"`
	Transcript string          `json:"transcript"`
	Text       string          `json:"text"`
	Error      string          `json:"error"`
}

// Simulator plays the role of the browser: a speech recognizer emitting
// alternative sets plus a geolocation source.
type Simulator struct {
	config *SimulatorConfig
	conn   *websocket.Conn
	log    *zap.Logger

	writeMu  sync.Mutex
	stopChan chan struct{}
	wg       sync.WaitGroup
}

func NewSimulator(config *SimulatorConfig, log *zap.Logger) *Simulator {
	return &Simulator{
		config:   config,
		log:      log,
		stopChan: make(chan struct{}),
	}
}

// Connect dials the voice stream and starts the reply printer.
func (s *Simulator) Connect() error {
	url := fmt.Sprintf("%s?session_id=%s", s.config.ServerURL, s.config.SessionID)

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	s.conn = conn
	s.log.Info("Connected to voice stream",
		zap.String("url", s.config.ServerURL),
		zap.String("session_id", s.config.SessionID),
	)

	s.wg.Add(1)
	go s.readReplies()

	if s.config.SendLocation {
		s.sendFrame(frame{
			Type:     "location",
			Location: &location{Lat: s.config.Latitude, Lng: s.config.Longitude},
		})
	}

	return nil
}

// Stop stops the simulator
func (s *Simulator) Stop() {
	close(s.stopChan)
	if s.conn != nil {
		s.conn.Close()
	}
	s.wg.Wait()
}

func (s *Simulator) readReplies() {
	defer s.wg.Done()

	for {
		select {
		case <-s.stopChan:
			return
		default:
			_, message, err := s.conn.ReadMessage()
			if err != nil {
				s.log.Debug("Read loop ended", zap.Error(err))
				return
			}
			s.printReply(message)
		}
	}
}

func (s *Simulator) printReply(message []byte) {
	var r reply
	if err := json.Unmarshal(message, &r); err != nil {
		fmt.Printf("\n<- %s\n> ", message)
		return
	}

	switch r.Type {
	case "resolution":
		if r.Resolved {
			fmt.Printf("\n<- resolved %s (transcript %q)\n> ", r.Command, r.Transcript)
		} else {
			fmt.Printf("\n<- no match (top transcript %q)\n> ", r.Transcript)
		}
	case "answer":
		fmt.Printf("\n<- %s\n> ", r.Text)
	case "error":
		fmt.Printf("\n<- error: %s\n> ", r.Error)
	default:
		fmt.Printf("\n<- %s\n> ", message)
	}
}

func (s *Simulator) sendFrame(f frame) {
	data, err := json.Marshal(f)
	if err != nil {
		s.log.Error("Frame marshal failed", zap.Error(err))
		return
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		s.log.Error("Frame write failed", zap.Error(err))
	}
}

// syntheticAlternatives fakes a recognizer result: the utterance itself
// with high confidence, plus a degraded variant with low confidence.
func syntheticAlternatives(utterance string) []alternative {
	alts := []alternative{
		{Transcript: utterance, Confidence: 0.9},
	}

	words := strings.Fields(utterance)
	if len(words) > 1 {
		alts = append(alts, alternative{
			Transcript: strings.Join(words[:len(words)-1], " "),
			Confidence: 0.4,
		})
	}
	return alts
}

// RunInteractive runs the simulator in interactive mode
func (s *Simulator) RunInteractive() {
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		parts := strings.Fields(line)

		if len(parts) == 0 {
			fmt.Print("> ")
			continue
		}

		cmd := parts[0]
		rest := strings.TrimSpace(strings.TrimPrefix(line, cmd))

		switch cmd {
		case "say":
			if rest == "" {
				fmt.Println("Usage: say <utterance>")
			} else {
				s.sendFrame(frame{Type: "alternatives", Alternatives: syntheticAlternatives(rest)})
				fmt.Printf("Sent %d alternative(s) for %q\n", len(syntheticAlternatives(rest)), rest)
			}

		case "ask":
			if rest == "" {
				fmt.Println("Usage: ask <question>")
			} else {
				s.sendFrame(frame{Type: "chat", Text: rest})
				fmt.Printf("Asked %q\n", rest)
			}

		case "loc":
			if len(parts) < 3 {
				fmt.Println("Usage: loc <lat> <lng>")
			} else {
				lat, errLat := strconv.ParseFloat(parts[1], 64)
				lng, errLng := strconv.ParseFloat(parts[2], 64)
				if errLat != nil || errLng != nil {
					fmt.Println("Usage: loc <lat> <lng>")
				} else {
					s.sendFrame(frame{Type: "location", Location: &location{Lat: lat, Lng: lng}})
					fmt.Printf("Sent location %.4f, %.4f\n", lat, lng)
				}
			}

		case "quit", "exit":
			fmt.Println("Goodbye!")
			return

		default:
			// Bare text is treated as a chat query.
			s.sendFrame(frame{Type: "chat", Text: line})
			fmt.Printf("Asked %q\n", line)
		}

		fmt.Print("> ")
	}
}
