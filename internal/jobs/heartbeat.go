package jobs

import (
	"fmt"
	"log"
	"time"
)

// RunHeartbeat appends an alive line on every invocation and then probes
// the API's echo endpoint, logging the response or the failure. The probe
// failing does not fail the job.
func (r *Runner) RunHeartbeat() {
	now := time.Now().Format(heartbeatTimeFormat)

	if err := appendLine(r.cfg.HeartbeatLog, fmt.Sprintf("%s CRM is alive", now)); err != nil {
		log.Printf("Heartbeat log write failed: %v", err)
		return
	}

	var reply struct {
		Hello string `json:"hello"`
	}
	if err := r.getJSON("/hello", &reply); err != nil {
		if err := appendLine(r.cfg.HeartbeatLog, fmt.Sprintf("%s Hello check failed: %v", now, err)); err != nil {
			log.Printf("Heartbeat log write failed: %v", err)
		}
		return
	}

	if err := appendLine(r.cfg.HeartbeatLog, fmt.Sprintf("%s Hello response: %s", now, reply.Hello)); err != nil {
		log.Printf("Heartbeat log write failed: %v", err)
	}
}
