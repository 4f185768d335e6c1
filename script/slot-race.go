package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"sync"
	"time"
)

// AcquireRequest is the reservation claim payload
type AcquireRequest struct {
	PortfolioID uint64 `json:"portfolioId"`
	Hour        int    `json:"hour"`
	OwnerName   string `json:"ownerName"`
	SessionID   string `json:"sessionId"`
}

// ReleaseRequest is the reservation release payload
type ReleaseRequest struct {
	PortfolioID uint64 `json:"portfolioId"`
	Hour        int    `json:"hour"`
	SessionID   string `json:"sessionId"`
}

// SessionResponse is the session bootstrap response
type SessionResponse struct {
	SessionID string `json:"sessionId"`
}

// TestResult contains metrics for a single request
type TestResult struct {
	Outcome      string
	ResponseTime time.Duration
	StatusCode   int
	Error        error
}

// TestStats contains aggregated race statistics
type TestStats struct {
	TotalRequests     int
	Acquired          int
	SlotLocked        int
	OperatorBusy      int
	Released          int
	Failed            int
	TotalTime         time.Duration
	MinResponseTime   time.Duration
	MaxResponseTime   time.Duration
	TotalResponseTime time.Duration
	ResponseTimes     []time.Duration
	ErrorCounts       map[string]int
	PortfolioStats    map[uint64]int
	Lock              sync.Mutex
}

func main() {

	// Define command line flags
	sessions := flag.Int("c", 5, "Number of concurrent operator sessions")
	totalRequests := flag.Int("n", 200, "Total number of acquisition attempts to make")
	portfolioIDsStr := flag.String("p", "1,2,3,4", "Comma-separated list of portfolio IDs to race over")
	baseURL := flag.String("url", "http://localhost:8080", "Base URL for the API")
	hour := flag.Int("hour", time.Now().Hour(), "Hour slot to contend for")
	delayMs := flag.Int("delay", 100, "Delay between requests in milliseconds")
	releaseRate := flag.Float64("release", 0.5, "Probability that a holder releases before its next attempt")
	flag.Parse()

	// Parse portfolio IDs
	var portfolioIDs []uint64
	for _, idStr := range strings.Split(*portfolioIDsStr, ",") {
		var id uint64
		if _, err := fmt.Sscanf(idStr, "%d", &id); err == nil && id > 0 {
			portfolioIDs = append(portfolioIDs, id)
		}
	}

	// Default to portfolio ID 1 if no valid IDs provided
	if len(portfolioIDs) == 0 {
		portfolioIDs = []uint64{1}
	}

	fmt.Printf("Racing %d operator sessions over %d portfolios: %v\n", *sessions, len(portfolioIDs), portfolioIDs)
	fmt.Printf("Hour slot: %d\n", *hour)
	fmt.Printf("Total acquisition attempts: %d\n", *totalRequests)
	fmt.Printf("Delay between requests: %d ms\n", *delayMs)
	fmt.Printf("Holder release probability: %.2f\n", *releaseRate)

	// Initialize test statistics
	stats := &TestStats{
		TotalRequests:   *totalRequests,
		MinResponseTime: time.Hour, // Start with a high value that will be replaced
		ErrorCounts:     make(map[string]int),
		ResponseTimes:   make([]time.Duration, 0, *totalRequests),
		PortfolioStats:  make(map[uint64]int),
	}

	for _, id := range portfolioIDs {
		stats.PortfolioStats[id] = 0
	}

	// Channel to collect results
	results := make(chan TestResult, *totalRequests*2)

	// Channel to distribute work
	jobs := make(chan int, *totalRequests)

	// Start one goroutine per operator session
	var wg sync.WaitGroup
	fmt.Println("Starting operator sessions...")
	for i := 0; i < *sessions; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			operator(workerID, *baseURL, *hour, *delayMs, *releaseRate, portfolioIDs, jobs, results, stats)
		}(i)
	}

	// Fill the jobs channel
	go func() {
		for i := 0; i < *totalRequests; i++ {
			jobs <- i
		}
		close(jobs)
	}()

	// Start a goroutine to collect results
	go func() {
		for result := range results {
			stats.Lock.Lock()
			switch result.Outcome {
			case "acquired":
				stats.Acquired++
			case "slot_locked":
				stats.SlotLocked++
			case "operator_busy":
				stats.OperatorBusy++
			case "released":
				stats.Released++
			default:
				stats.Failed++
				errMsg := "unknown"
				if result.Error != nil {
					errMsg = result.Error.Error()
				}
				stats.ErrorCounts[errMsg]++
			}

			stats.ResponseTimes = append(stats.ResponseTimes, result.ResponseTime)
			stats.TotalResponseTime += result.ResponseTime

			if result.ResponseTime < stats.MinResponseTime {
				stats.MinResponseTime = result.ResponseTime
			}
			if result.ResponseTime > stats.MaxResponseTime {
				stats.MaxResponseTime = result.ResponseTime
			}
			stats.Lock.Unlock()
		}
	}()

	// Start the timer
	startTime := time.Now()
	fmt.Println("Race running...")

	// Print progress periodically
	ticker := time.NewTicker(1 * time.Second)
	go func() {
		for range ticker.C {
			stats.Lock.Lock()
			completed := stats.Acquired + stats.SlotLocked + stats.OperatorBusy + stats.Failed
			if completed > 0 {
				fmt.Printf("Progress: %d/%d attempts completed (%.1f%%)\n",
					completed, stats.TotalRequests, float64(completed)/float64(stats.TotalRequests)*100)
			}
			stats.Lock.Unlock()
		}
	}()

	// Wait for all sessions to finish
	wg.Wait()
	close(results)
	ticker.Stop()

	// Calculate the total race time
	stats.TotalTime = time.Since(startTime)

	// Print results
	printResults(stats)
}

func operator(id int, baseURL string, hour, delayMs int, releaseRate float64,
	portfolioIDs []uint64, jobs <-chan int, results chan<- TestResult, stats *TestStats) {

	client := &http.Client{
		Timeout: 10 * time.Second,
	}

	sessionID, err := createSession(client, baseURL)
	if err != nil {
		fmt.Printf("Operator %d could not bootstrap a session: %v\n", id, err)
		for range jobs {
			results <- TestResult{Outcome: "failed", Error: err}
		}
		return
	}

	ownerName := fmt.Sprintf("operator-%d", id)
	var held *AcquireRequest

	for jobID := range jobs {
		_ = jobID

		// Optional delay between requests to prevent rate limiting
		if delayMs > 0 {
			time.Sleep(time.Duration(delayMs) * time.Millisecond)
		}

		// A holder must release before it can claim elsewhere; do so with the
		// configured probability, otherwise keep hammering the same slot to
		// exercise idempotent re-acquisition.
		if held != nil && rand.Float64() < releaseRate {
			result := release(client, baseURL, held.PortfolioID, hour, sessionID)
			results <- result
			held = nil
		}

		var portfolioID uint64
		if held != nil {
			portfolioID = held.PortfolioID
		} else {
			portfolioID = portfolioIDs[rand.Intn(len(portfolioIDs))]
		}

		stats.Lock.Lock()
		stats.PortfolioStats[portfolioID]++
		stats.Lock.Unlock()

		req := AcquireRequest{
			PortfolioID: portfolioID,
			Hour:        hour,
			OwnerName:   ownerName,
			SessionID:   sessionID,
		}
		result := acquire(client, baseURL, req)
		if result.Outcome == "acquired" {
			held = &req
		}
		results <- result
	}

	// Leave the store clean
	if held != nil {
		release(client, baseURL, held.PortfolioID, hour, sessionID)
	}
}

func createSession(client *http.Client, baseURL string) (string, error) {
	resp, err := client.Post(baseURL+"/session", "application/json", nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("session bootstrap returned HTTP %d", resp.StatusCode)
	}

	var sessionResp SessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&sessionResp); err != nil {
		return "", err
	}
	return sessionResp.SessionID, nil
}

func acquire(client *http.Client, baseURL string, payload AcquireRequest) TestResult {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return TestResult{Outcome: "failed", Error: err}
	}

	startTime := time.Now()
	resp, err := client.Post(baseURL+"/reservations", "application/json", bytes.NewBuffer(jsonData))
	responseTime := time.Since(startTime)

	if err != nil {
		return TestResult{Outcome: "failed", ResponseTime: responseTime, Error: err}
	}
	defer resp.Body.Close()

	result := TestResult{ResponseTime: responseTime, StatusCode: resp.StatusCode}
	switch resp.StatusCode {
	case http.StatusCreated:
		result.Outcome = "acquired"
	case http.StatusConflict:
		var body struct {
			Code int `json:"code"`
		}
		json.NewDecoder(resp.Body).Decode(&body)
		if body.Code == 4091 {
			result.Outcome = "operator_busy"
		} else {
			result.Outcome = "slot_locked"
		}
	default:
		result.Outcome = "failed"
		result.Error = fmt.Errorf("HTTP status code %d", resp.StatusCode)
	}
	return result
}

func release(client *http.Client, baseURL string, portfolioID uint64, hour int, sessionID string) TestResult {
	payload := ReleaseRequest{PortfolioID: portfolioID, Hour: hour, SessionID: sessionID}
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return TestResult{Outcome: "failed", Error: err}
	}

	req, err := http.NewRequest(http.MethodDelete, baseURL+"/reservations", bytes.NewBuffer(jsonData))
	if err != nil {
		return TestResult{Outcome: "failed", Error: err}
	}
	req.Header.Set("Content-Type", "application/json")

	startTime := time.Now()
	resp, err := client.Do(req)
	responseTime := time.Since(startTime)

	if err != nil {
		return TestResult{Outcome: "failed", ResponseTime: responseTime, Error: err}
	}
	defer resp.Body.Close()

	result := TestResult{ResponseTime: responseTime, StatusCode: resp.StatusCode}
	if resp.StatusCode == http.StatusNoContent {
		result.Outcome = "released"
	} else {
		result.Outcome = "failed"
		result.Error = fmt.Errorf("HTTP status code %d", resp.StatusCode)
	}
	return result
}

func printResults(stats *TestStats) {
	attempts := stats.Acquired + stats.SlotLocked + stats.OperatorBusy + stats.Failed

	// Calculate average response time
	var avgResponseTime time.Duration
	if len(stats.ResponseTimes) > 0 {
		avgResponseTime = stats.TotalResponseTime / time.Duration(len(stats.ResponseTimes))
	}

	// Calculate percentiles
	var p50, p90, p95, p99 time.Duration
	if len(stats.ResponseTimes) > 0 {
		// Sort the response times
		sortedTimes := make([]time.Duration, len(stats.ResponseTimes))
		copy(sortedTimes, stats.ResponseTimes)

		// Simple bubble sort (OK for small datasets)
		for i := 0; i < len(sortedTimes); i++ {
			for j := i + 1; j < len(sortedTimes); j++ {
				if sortedTimes[i] > sortedTimes[j] {
					sortedTimes[i], sortedTimes[j] = sortedTimes[j], sortedTimes[i]
				}
			}
		}

		p50 = sortedTimes[len(sortedTimes)*50/100]
		p90 = sortedTimes[len(sortedTimes)*90/100]
		p95 = sortedTimes[len(sortedTimes)*95/100]
		p99 = sortedTimes[len(sortedTimes)*99/100]
	}

	// Print results
	fmt.Println("\n================= RACE RESULTS =================")
	fmt.Printf("Acquisition Attempts: %d\n", attempts)
	fmt.Printf("Acquired:             %d (%.1f%%)\n", stats.Acquired,
		float64(stats.Acquired)/float64(attempts)*100)
	fmt.Printf("Slot Locked:          %d (%.1f%%)\n", stats.SlotLocked,
		float64(stats.SlotLocked)/float64(attempts)*100)
	fmt.Printf("Operator Busy:        %d (%.1f%%)\n", stats.OperatorBusy,
		float64(stats.OperatorBusy)/float64(attempts)*100)
	fmt.Printf("Releases:             %d\n", stats.Released)
	fmt.Printf("Failed:               %d (%.1f%%)\n", stats.Failed,
		float64(stats.Failed)/float64(attempts)*100)
	fmt.Printf("Total Race Time:      %.2f seconds\n", stats.TotalTime.Seconds())

	fmt.Println("\n----------------- RESPONSE TIMES -----------------")
	fmt.Printf("Average Response:    %v\n", avgResponseTime)
	fmt.Printf("Minimum Response:    %v\n", stats.MinResponseTime)
	fmt.Printf("Maximum Response:    %v\n", stats.MaxResponseTime)
	fmt.Printf("P50 Response:        %v\n", p50)
	fmt.Printf("P90 Response:        %v\n", p90)
	fmt.Printf("P95 Response:        %v\n", p95)
	fmt.Printf("P99 Response:        %v\n", p99)

	// Print portfolio distribution
	fmt.Println("\n----------------- PORTFOLIO DISTRIBUTION -----------------")
	totalPortfolios := 0
	for _, count := range stats.PortfolioStats {
		totalPortfolios += count
	}
	for portfolioID, count := range stats.PortfolioStats {
		if count > 0 {
			fmt.Printf("Portfolio %d:    %d attempts (%.1f%%)\n", portfolioID, count,
				float64(count)/float64(totalPortfolios)*100)
		}
	}

	// Print error distribution if there were errors
	if stats.Failed > 0 {
		fmt.Println("\n----------------- ERROR DISTRIBUTION -----------------")
		for errMsg, count := range stats.ErrorCounts {
			fmt.Printf("%-40s: %d (%.1f%%)\n", errMsg, count,
				float64(count)/float64(attempts)*100)
		}
	}

	// Final conclusion: no slot may ever report two concurrent holders, so the
	// interesting signal is how much of the contention the store absorbed.
	fmt.Println("\n================= CONCLUSION =================")
	if stats.Failed == 0 {
		fmt.Println("✅ All attempts resolved to a deterministic outcome (acquired / locked / busy)")
	} else {
		fmt.Printf("❌ %d attempts failed outright; check server logs\n", stats.Failed)
	}
	fmt.Println("================================================")
}
