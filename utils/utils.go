package utils

import (
	"encoding/json"
	"strings"
	"time"

	"parking-management/types"

	"github.com/gofiber/fiber/v2"
)

// sensitiveFields are redacted from logged request bodies.
var sensitiveFields = []string{"password", "token"}

// sanitizeRequestBody redacts credential fields from a JSON request body so
// plaintext passwords never reach the logs table.
func sanitizeRequestBody(c *fiber.Ctx) string {
	body := string(c.Body())
	if body == "" {
		return body
	}

	var payload map[string]interface{}
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		// Not a JSON object; keep it as is.
		return body
	}

	for key := range payload {
		for _, field := range sensitiveFields {
			if strings.EqualFold(key, field) {
				payload[key] = "[REDACTED]"
			}
		}
	}

	if jsonBytes, err := json.Marshal(payload); err == nil {
		return string(jsonBytes)
	}
	return body
}

// CreateSanitizedLogEntry creates a deep copied and sanitized log entry for logging
func CreateSanitizedLogEntry(c *fiber.Ctx) types.LogEntry {
	// Create deep copies of all data to prevent memory reference issues
	method := string([]byte(c.Method()))
	url := string([]byte(c.OriginalURL()))
	requestBody := sanitizeRequestBody(c)
	responseBody := string(append([]byte(nil), c.Response().Body()...))

	// Deep copy headers
	requestHeaders := make([]byte, len(c.Request().Header.Header()))
	copy(requestHeaders, c.Request().Header.Header())

	responseHeaders := make([]byte, len(c.Response().Header.Header()))
	copy(responseHeaders, c.Response().Header.Header())

	return types.LogEntry{
		Method:          method,
		URL:             url,
		RequestBody:     requestBody,
		ResponseBody:    responseBody,
		RequestHeaders:  string(requestHeaders),
		ResponseHeaders: string(responseHeaders),
		StatusCode:      c.Response().StatusCode(),
		CreatedAt:       time.Now(),
	}
}
