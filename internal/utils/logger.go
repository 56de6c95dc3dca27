package utils

import (
	"log"
	"strconv"
	"strings"
)

// LogEvent prints one key=value line tagged with the module. Keep message free of
// secrets and payloads; a message with spaces is quoted.
func LogEvent(requestID, module, action, message string) {
	req := strings.TrimSpace(requestID)
	if req == "" {
		req = "-"
	}
	msg := strings.TrimSpace(message)
	if strings.ContainsAny(msg, " \t\"") {
		msg = strconv.Quote(msg)
	}
	log.Printf("[%s] action=%s request_id=%s msg=%s", strings.ToUpper(module), action, req, msg)
}
