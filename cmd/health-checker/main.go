// Command health-checker checks the checkout service readiness endpoint and
// exits non-zero when it is not ready. It is meant for container health checks.
package main

import (
	"fmt"
	"net/http"
	"os"
	"time"
)

func main() {
	url := "http://localhost:" + port() + "/api/readyz"
	if len(os.Args) > 1 {
		url = os.Args[1]
	}

	if err := check(&http.Client{Timeout: 3 * time.Second}, url); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func check(client *http.Client, url string) error {
	resp, err := client.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("received status code: %d", resp.StatusCode)
	}
	return nil
}

func port() string {
	if p := os.Getenv("PORT"); p != "" {
		return p
	}
	return "8080"
}
