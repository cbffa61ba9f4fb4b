package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

// AuditStore is the subset of the core database pool the audit log writes to.
type AuditStore interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// AuditLogger is an async audit log writer.
type AuditLogger struct {
	store  AuditStore
	logger zerolog.Logger
	ch     chan auditEntry
	done   chan struct{}
}

type auditEntry struct {
	APIKeyID     *string
	Method       string
	Path         string
	ResourceType *string
	ResourceID   *string
	StatusCode   int
	RequestBody  json.RawMessage
}

func NewAuditLogger(store AuditStore, logger zerolog.Logger) *AuditLogger {
	al := &AuditLogger{
		store:  store,
		logger: logger,
		ch:     make(chan auditEntry, 1024),
		done:   make(chan struct{}),
	}
	go al.drain()
	return al
}

func (al *AuditLogger) drain() {
	defer close(al.done)
	for entry := range al.ch {
		_, err := al.store.Exec(
			// use context.Background since this is async
			context.Background(),
			`INSERT INTO audit_logs (api_key_id, method, path, resource_type, resource_id, status_code, request_body, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, now())`,
			entry.APIKeyID, entry.Method, entry.Path, entry.ResourceType, entry.ResourceID, entry.StatusCode, entry.RequestBody,
		)
		if err != nil {
			al.logger.Error().Err(err).Msg("failed to write audit log")
		}
	}
}

// Close stops accepting entries and waits for the queued ones to be written.
func (al *AuditLogger) Close() {
	close(al.ch)
	<-al.done
}

// Middleware returns a chi middleware that logs mutating API requests.
func (al *AuditLogger) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet || r.Method == http.MethodHead || r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		// Read and re-buffer the request body.
		var bodyBytes []byte
		if r.Body != nil {
			bodyBytes, _ = io.ReadAll(r.Body)
			r.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
		}

		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		resourceType, resourceID := extractResource(r.URL.Path, bodyBytes)

		var apiKeyID *string
		if id, ok := r.Context().Value(APIKeyIDKey).(string); ok {
			apiKeyID = &id
		}

		var sanitizedBody json.RawMessage
		if len(bodyBytes) > 0 && json.Valid(bodyBytes) {
			sanitizedBody = sanitizeBody(bodyBytes)
		}

		select {
		case al.ch <- auditEntry{
			APIKeyID:     apiKeyID,
			Method:       r.Method,
			Path:         r.URL.Path,
			ResourceType: resourceType,
			ResourceID:   resourceID,
			StatusCode:   sw.status,
			RequestBody:  sanitizedBody,
		}:
		default:
			al.logger.Warn().Msg("audit log buffer full, dropping entry")
		}
	})
}

// extractResource returns the first path segment as the resource type. The
// ID is the second segment, or the domainName of the body for /domains
// mutations, which carry the domain in the body:
//
//	/domains            {"domainName":"a.co"} -> domains, a.co
//	/domains/a.co                             -> domains, a.co
//	/distribution                             -> distribution
func extractResource(path string, body []byte) (*string, *string) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		return nil, nil
	}

	resourceType := parts[0]
	if len(parts) > 1 && parts[1] != "" {
		id := parts[1]
		return &resourceType, &id
	}

	var payload struct {
		DomainName string `json:"domainName"`
	}
	if len(body) > 0 && json.Unmarshal(body, &payload) == nil && payload.DomainName != "" {
		return &resourceType, &payload.DomainName
	}
	return &resourceType, nil
}

// sensitiveFields are fields that should be redacted from audit logs.
var sensitiveFields = map[string]bool{
	"password": true, "api_key": true, "apiKey": true, "secret": true, "token": true,
}

func sanitizeBody(body []byte) json.RawMessage {
	var data map[string]any
	if err := json.Unmarshal(body, &data); err != nil {
		return body
	}
	for k := range data {
		if sensitiveFields[k] {
			data[k] = "[REDACTED]"
		}
	}
	sanitized, _ := json.Marshal(data)
	return sanitized
}
