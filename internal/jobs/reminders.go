package jobs

import (
	"fmt"
	"log"
	"net/url"
	"time"
)

// RunOrderReminders fetches orders from the trailing 7-day window and logs
// one reminder line per order with the owning customer's email.
func (r *Runner) RunOrderReminders() {
	ts := time.Now().Format(logTimeFormat)
	cutoff := time.Now().AddDate(0, 0, -7).UTC().Format(time.RFC3339)

	var reply struct {
		Orders []struct {
			OrderID       int64  `json:"order_id"`
			CustomerEmail string `json:"customer_email"`
		} `json:"orders"`
	}

	if err := r.getJSON("/orders/reminders?since="+url.QueryEscape(cutoff), &reply); err != nil {
		if err := appendLine(r.cfg.OrderReminderLog, fmt.Sprintf("[%s] Reminder run failed: %v", ts, err)); err != nil {
			log.Printf("Reminder log write failed: %v", err)
		}
		return
	}

	for _, order := range reply.Orders {
		line := fmt.Sprintf("[%s] Order %d: reminder sent to %s", ts, order.OrderID, order.CustomerEmail)
		if err := appendLine(r.cfg.OrderReminderLog, line); err != nil {
			log.Printf("Reminder log write failed: %v", err)
			return
		}
	}

	log.Printf("Order reminders processed!")
}
