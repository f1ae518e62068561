package jobs

import (
	"fmt"
	"log"
	"time"
)

// RunWeeklyReport reads the aggregate counts and appends a one-line
// summary: total customers, total orders, total revenue.
func (r *Runner) RunWeeklyReport() {
	ts := time.Now().Format(logTimeFormat)

	var summary struct {
		Customers int64  `json:"customers"`
		Orders    int64  `json:"orders"`
		Revenue   string `json:"revenue"`
	}

	var line string
	if err := r.getJSON("/reports/summary", &summary); err != nil {
		line = fmt.Sprintf("%s - Report generation failed: %v", ts, err)
	} else {
		line = fmt.Sprintf("%s - Report: %d customers, %d orders, %s revenue",
			ts, summary.Customers, summary.Orders, summary.Revenue)
	}

	if err := appendLine(r.cfg.ReportLog, line); err != nil {
		log.Printf("Report log write failed: %v", err)
	}
}
