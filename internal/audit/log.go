package audit

import "log"

func logAuditError(action, requestID string, err error) {
	log.Printf("[WARN] audit: %s for %s failed: %v", action, requestID, err)
}
