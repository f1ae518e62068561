package jobs

import (
	"fmt"
	"log"
	"time"
)

// RunRestock triggers the low-stock restocking mutation and logs the
// envelope plus one line per restocked product.
func (r *Runner) RunRestock() {
	now := time.Now().Format(heartbeatTimeFormat)

	var result struct {
		UpdatedProducts []struct {
			Name  string `json:"name"`
			Stock int    `json:"stock"`
		} `json:"updated_products"`
		Success bool   `json:"success"`
		Message string `json:"message"`
	}

	if err := r.postJSON("/products/restock", &result); err != nil {
		if err := appendLine(r.cfg.LowStockLog, fmt.Sprintf("%s Restock failed: %v", now, err)); err != nil {
			log.Printf("Restock log write failed: %v", err)
		}
		return
	}

	if err := appendLine(r.cfg.LowStockLog,
		fmt.Sprintf("%s Restock success: %t, message: %s", now, result.Success, result.Message)); err != nil {
		log.Printf("Restock log write failed: %v", err)
		return
	}

	for _, product := range result.UpdatedProducts {
		if err := appendLine(r.cfg.LowStockLog,
			fmt.Sprintf("%s Updated product: %s (new stock: %d)", now, product.Name, product.Stock)); err != nil {
			log.Printf("Restock log write failed: %v", err)
			return
		}
	}
}
