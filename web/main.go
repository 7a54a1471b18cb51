package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/df07/go-interactive-pathtracer/pkg/core"
	"github.com/df07/go-interactive-pathtracer/pkg/scene"
	"github.com/df07/go-interactive-pathtracer/web/server"
)

func main() {
	port := flag.Int("port", 8080, "Port to serve on")
	staticDir := flag.String("static", "web/static", "Directory of static client files (empty to disable)")
	envPath := flag.String("env", "", "Environment map (.hdr, .png, .jpg, .bmp, .tiff); flat sky when empty")
	flag.Parse()

	logger := core.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	env := scene.NewSkyEnvironment(scene.DefaultSky)
	if *envPath != "" {
		env = scene.LoadEnvironment(*envPath, logger)
	}

	webServer := server.NewServer(*port, *staticDir, env, logger)

	logger.Printf("Interactive path tracer preview server\n")
	logger.Printf("Visit http://localhost:%d to start rendering\n", *port)

	if err := webServer.Start(); err != nil {
		logger.Printf("Error starting server: %v\n", err)
		os.Exit(1)
	}
}
