package main

import (
	"context"
	"flag"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the cloud web application")
	criteria := flag.String("criteria", "an,jo,ken,mar", "Comma-separated search criteria to rotate through")
	photo := flag.String("photo", "", "Photo name to download on every fourth request (empty disables)")
	concurrency := flag.Int("c", 10, "Number of concurrent workers")
	duration := flag.Duration("d", 30*time.Second, "Duration of the load test")
	rps := flag.Int("rps", 50, "Requests per second limit")
	flag.Parse()

	log.Printf("Starting load test on %s", *baseURL)
	log.Printf("Concurrency: %d, Duration: %s, RPS: %d", *concurrency, *duration, *rps)

	targets := buildTargets(*baseURL, strings.Split(*criteria, ","), *photo)

	var wg sync.WaitGroup
	var successCount, unavailableCount, errorCount atomic.Int64
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	limiter := rate.NewLimiter(rate.Limit(*rps), 10)

	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			client := &http.Client{
				Timeout: 30 * time.Second,
			}

			for n := workerID; ; n++ {
				if err := limiter.Wait(ctx); err != nil {
					return
				}

				req, err := http.NewRequestWithContext(ctx, http.MethodGet, targets[n%len(targets)], nil)
				if err != nil {
					continue // Should not happen
				}
				req.Header.Set("X-Request-ID", uuid.NewString())

				resp, err := client.Do(req)
				if err != nil {
					if ctx.Err() != nil {
						return
					}
					errorCount.Add(1)
					continue
				}
				_, _ = io.Copy(io.Discard, resp.Body)
				resp.Body.Close()

				switch resp.StatusCode {
				case http.StatusOK:
					successCount.Add(1)
				case http.StatusServiceUnavailable:
					unavailableCount.Add(1)
				default:
					errorCount.Add(1)
				}
			}
		}(i)
	}

	wg.Wait()

	totalRequests := successCount.Load() + unavailableCount.Load() + errorCount.Load()
	actualRPS := float64(totalRequests) / duration.Seconds()

	log.Println("Load test finished.")
	log.Printf("Total Requests: %d", totalRequests)
	log.Printf("Successful (200 OK): %d", successCount.Load())
	log.Printf("On-premise unavailable (503): %d", unavailableCount.Load())
	log.Printf("Errors: %d", errorCount.Load())
	log.Printf("Actual RPS: %.2f", actualRPS)
}

func buildTargets(baseURL string, criteria []string, photo string) []string {
	base := strings.TrimRight(baseURL, "/")
	targets := []string{base + "/people/all"}
	for _, c := range criteria {
		if c = strings.TrimSpace(c); c != "" {
			targets = append(targets, base+"/people?"+url.Values{"criteria": {c}}.Encode())
		}
	}
	if photo != "" {
		targets = append(targets, base+"/photos/"+url.PathEscape(photo))
	}
	return targets
}
