package main

import (
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/sun-wendy/6.4400-graphics/pkg/output"
	"github.com/sun-wendy/6.4400-graphics/web/server"
)

func main() {
	// A missing .env is fine, the environment may already be set
	_ = godotenv.Load()

	// Parse command line flags
	port := flag.Int("port", 8080, "Port to serve on")
	scenesDir := flag.String("scenes", "scenes", "Directory with JSON scene files")
	saveDir := flag.String("save-dir", "", "Directory for renders requested with save=true")
	useS3 := flag.Bool("s3", false, "Save renders to the S3 bucket from the environment")
	flag.Parse()

	var sink output.Sink
	switch {
	case *useS3:
		s3Sink, err := output.NewS3Sink(output.S3ConfigFromEnv())
		if err != nil {
			log.Printf("Error configuring S3: %v", err)
			os.Exit(1)
		}
		sink = s3Sink
	case *saveDir != "":
		sink = output.NewFileSink(*saveDir)
	}

	// Create and start web server
	webServer := server.NewServer(*port, *scenesDir, sink)

	log.Printf("Ray Tracer and Particle Simulator Web Server")
	log.Printf("Visit http://localhost:%d/api/scenes to list scenes", *port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
