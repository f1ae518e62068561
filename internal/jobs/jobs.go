// Package jobs holds the business logic of the scheduled background jobs.
// Each job is an independent client of the HTTP API: it calls an endpoint,
// appends its outcome to a dedicated log file, and swallows every failure
// after logging it. No job ever returns or panics with an error.
package jobs

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/safar/go-crm-backend/internal/config"
)

const (
	heartbeatTimeFormat = "02/01/2006-15:04:05"
	logTimeFormat       = "2006-01-02 15:04:05"
)

type Runner struct {
	cfg    config.JobsConfig
	client *http.Client
}

func NewRunner(cfg config.JobsConfig) *Runner {
	return &Runner{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.RequestTimeout},
	}
}

// appendLine appends one line to a job log file, creating the parent
// directory and file on first use.
func appendLine(path, line string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create log directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(line + "\n"); err != nil {
		return fmt.Errorf("write log line: %w", err)
	}

	return nil
}

// getJSON issues a GET against the API and decodes the JSON body into out.
func (r *Runner) getJSON(path string, out interface{}) error {
	resp, err := r.client.Get(r.cfg.APIURL + path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// postJSON issues an empty-body POST against the API and decodes the JSON
// response into out.
func (r *Runner) postJSON(path string, out interface{}) error {
	resp, err := r.client.Post(r.cfg.APIURL+path, "application/json", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
