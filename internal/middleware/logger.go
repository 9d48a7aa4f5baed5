package middleware

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// maxLoggedBody caps logged request bodies; export payloads and generated
// documents can run to megabytes and are not worth echoing into the log.
const maxLoggedBody = 2000

// sensitiveHeaders lists header name fragments that are redacted
var sensitiveHeaders = []string{
	"authorization",
	"api-key",
	"apikey",
	"cookie",
	"token",
}

// LoggerConfig holds configuration for the logger middleware
type LoggerConfig struct {
	Format string // "json" or "pretty"
}

// LogEntry represents a structured log entry for one request
type LogEntry struct {
	Timestamp  string            `json:"timestamp"`
	Method     string            `json:"method"`
	Path       string            `json:"path"`
	StatusCode int               `json:"status_code"`
	Latency    string            `json:"latency"`
	ClientIP   string            `json:"client_ip"`
	Headers    map[string]string `json:"headers,omitempty"`
	Error      string            `json:"error,omitempty"`
}

// RequestLogger creates a middleware that logs every API request
func RequestLogger(config LoggerConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		c.Next()

		entry := LogEntry{
			Timestamp:  time.Now().Format(time.RFC3339),
			Method:     c.Request.Method,
			Path:       c.Request.URL.Path,
			StatusCode: c.Writer.Status(),
			Latency:    time.Since(startTime).String(),
			ClientIP:   c.ClientIP(),
			Headers:    redactHeaders(c.Request.Header),
		}
		if len(c.Errors) > 0 {
			entry.Error = c.Errors.String()
		}

		if config.Format == "pretty" {
			printPrettyLog(entry)
		} else {
			printJSONLog(entry)
		}
	}
}

// redactHeaders redacts sensitive headers
func redactHeaders(headers map[string][]string) map[string]string {
	redacted := make(map[string]string)
	for key, values := range headers {
		if isSensitiveHeader(key) {
			redacted[key] = "[REDACTED]"
		} else {
			redacted[key] = truncate(strings.Join(values, ", "))
		}
	}
	return redacted
}

func isSensitiveHeader(headerName string) bool {
	lower := strings.ToLower(headerName)
	for _, fragment := range sensitiveHeaders {
		if strings.Contains(lower, fragment) {
			return true
		}
	}
	return false
}

func truncate(value string) string {
	if len(value) > maxLoggedBody {
		return value[:maxLoggedBody] + "... (truncated)"
	}
	return value
}

// printJSONLog outputs the log entry as JSON
func printJSONLog(entry LogEntry) {
	jsonBytes, err := json.Marshal(entry)
	if err != nil {
		fmt.Printf(`{"error": "failed to marshal log entry: %v"}%s`, err, "\n")
		return
	}
	fmt.Println(string(jsonBytes))
}

// printPrettyLog outputs the log entry in a human-readable format
func printPrettyLog(entry LogEntry) {
	fmt.Printf("%s | %3d | %s | %s %s\n",
		entry.Timestamp, entry.StatusCode, entry.Latency, entry.Method, entry.Path)
	if entry.Error != "" {
		fmt.Printf("  error: %s\n", entry.Error)
	}
}
