package main

import (
	"flag"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Usage example on the command line:
// > go run main.go -url=http://localhost:3000/contact -timeout=2m
func main() {
	urlPtr := flag.String("url", "http://localhost:3000/contact", "the page that has to answer with 200")
	intervalPtr := flag.Duration("interval", 5*time.Second, "the time between two attempts")
	timeoutPtr := flag.Duration("timeout", 5*time.Minute, "give up after this time")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	client := &http.Client{Timeout: *intervalPtr}
	deadline := time.Now().Add(*timeoutPtr)
	var totalWaitTime time.Duration
	for {
		res, err := client.Get(*urlPtr)
		if err == nil {
			res.Body.Close()
			if res.StatusCode == http.StatusOK {
				log.Info().Str("url", *urlPtr).Dur("waited", totalWaitTime).Msg("service is available")
				return
			}
			log.Info().Int("status", res.StatusCode).Msg("service not ready")
		} else {
			log.Info().Err(err).Msg("service not reachable")
		}
		if time.Now().Add(*intervalPtr).After(deadline) {
			log.Fatal().Dur("waited", totalWaitTime).Msg("service did not become available")
		}
		totalWaitTime += *intervalPtr
		log.Info().Dur("waited", totalWaitTime).Msg("waiting")
		time.Sleep(*intervalPtr)
	}
}
