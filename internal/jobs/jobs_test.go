package jobs

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/safar/go-crm-backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRunner(t *testing.T, apiURL string) (*Runner, string) {
	t.Helper()
	dir := t.TempDir()

	cfg := config.JobsConfig{
		APIURL:           apiURL,
		RequestTimeout:   2 * time.Second,
		HeartbeatLog:     filepath.Join(dir, "heartbeat.txt"),
		LowStockLog:      filepath.Join(dir, "low_stock.txt"),
		OrderReminderLog: filepath.Join(dir, "reminders.txt"),
		ReportLog:        filepath.Join(dir, "report.txt"),
	}

	return NewRunner(cfg), dir
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

func TestHeartbeatLogsAliveAndHelloResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/hello", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"hello": "Hello, CRM!"}`))
	}))
	defer ts.Close()

	runner, _ := newTestRunner(t, ts.URL)
	runner.RunHeartbeat()

	lines := readLines(t, runner.cfg.HeartbeatLog)
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "CRM is alive")
	assert.Contains(t, lines[1], "Hello response: Hello, CRM!")
}

func TestHeartbeatLogsFailureWhenAPIDown(t *testing.T) {
	runner, _ := newTestRunner(t, "http://127.0.0.1:1")
	runner.RunHeartbeat()

	lines := readLines(t, runner.cfg.HeartbeatLog)
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "CRM is alive")
	assert.Contains(t, lines[1], "Hello check failed:")
}

func TestRestockLogsEnvelopeAndProducts(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/products/restock", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"updated_products": [
				{"id": 1, "name": "Laptop", "price": "999.99", "stock": 15},
				{"id": 2, "name": "Mouse", "price": "19.99", "stock": 12}
			],
			"success": true,
			"message": "Updated 2 product(s)."
		}`))
	}))
	defer ts.Close()

	runner, _ := newTestRunner(t, ts.URL)
	runner.RunRestock()

	lines := readLines(t, runner.cfg.LowStockLog)
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Restock success: true, message: Updated 2 product(s).")
	assert.Contains(t, lines[1], "Updated product: Laptop (new stock: 15)")
	assert.Contains(t, lines[2], "Updated product: Mouse (new stock: 12)")
}

func TestRestockLogsFailureWhenAPIDown(t *testing.T) {
	runner, _ := newTestRunner(t, "http://127.0.0.1:1")
	runner.RunRestock()

	lines := readLines(t, runner.cfg.LowStockLog)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "Restock failed:")
}

func TestOrderRemindersLogsOneLinePerOrder(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders/reminders", r.URL.Path)
		assert.NotEmpty(t, r.URL.Query().Get("since"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"orders": [
			{"order_id": 11, "customer_email": "alice@example.com"},
			{"order_id": 12, "customer_email": "bob@example.com"}
		]}`))
	}))
	defer ts.Close()

	runner, _ := newTestRunner(t, ts.URL)
	runner.RunOrderReminders()

	lines := readLines(t, runner.cfg.OrderReminderLog)
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Order 11: reminder sent to alice@example.com")
	assert.Contains(t, lines[1], "Order 12: reminder sent to bob@example.com")
}

func TestOrderRemindersLogsFailureWhenAPIDown(t *testing.T) {
	runner, _ := newTestRunner(t, "http://127.0.0.1:1")
	runner.RunOrderReminders()

	lines := readLines(t, runner.cfg.OrderReminderLog)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "Reminder run failed:")
}

func TestWeeklyReportLogsSummary(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reports/summary", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"customers": 3, "orders": 5, "revenue": "1234.50"}`))
	}))
	defer ts.Close()

	runner, _ := newTestRunner(t, ts.URL)
	runner.RunWeeklyReport()

	lines := readLines(t, runner.cfg.ReportLog)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "Report: 3 customers, 5 orders, 1234.50 revenue")
}

func TestWeeklyReportLogsFailureWhenAPIDown(t *testing.T) {
	runner, _ := newTestRunner(t, "http://127.0.0.1:1")
	runner.RunWeeklyReport()

	lines := readLines(t, runner.cfg.ReportLog)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "Report generation failed:")
}

func TestAppendLineCreatesMissingDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "log.txt")

	require.NoError(t, appendLine(path, "first"))
	require.NoError(t, appendLine(path, "second"))

	assert.Equal(t, []string{"first", "second"}, readLines(t, path))
}
