package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	serverURL = flag.String("server", "ws://localhost:8080/ws/voice", "Voice stream WebSocket URL")
	sessionID = flag.String("session", "", "Session ID (random when empty)")
	lat       = flag.Float64("lat", 19.07, "Simulated client latitude")
	lng       = flag.Float64("lng", 72.87, "Simulated client longitude")
	sendLoc   = flag.Bool("loc", true, "Send the location fix on connect")
	verbose   = flag.Bool("verbose", false, "Enable verbose logging")
)

func main() {
	flag.Parse()

	// Setup logger
	var logger *zap.Logger
	var err error
	if *verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	session := *sessionID
	if session == "" {
		session = uuid.NewString()
	}

	config := &SimulatorConfig{
		ServerURL:    *serverURL,
		SessionID:    session,
		Latitude:     *lat,
		Longitude:    *lng,
		SendLocation: *sendLoc,
	}

	simulator := NewSimulator(config, logger)

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nShutting down simulator...")
		simulator.Stop()
		os.Exit(0)
	}()

	if err := simulator.Connect(); err != nil {
		logger.Fatal("Failed to connect to server", zap.Error(err))
	}

	fmt.Println("\nMandi Assist - Utterance Simulator")
	fmt.Println("==================================")
	fmt.Println("Commands:")
	fmt.Println("  say <utterance>      - Send as speech alternatives (synthetic confidences)")
	fmt.Println("  ask <question>       - Send as a free-text chat query")
	fmt.Println("  loc <lat> <lng>      - Send a location fix")
	fmt.Println("  quit                 - Exit simulator")
	fmt.Println("")

	simulator.RunInteractive()
}
