package core

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/edvin/edgedomains/internal/model"
	"github.com/edvin/edgedomains/internal/platform"
)

const apiKeyPrefix = "edk_"

// APIKeyService manages API keys in the core database.
type APIKeyService struct {
	db DB
}

// NewAPIKeyService creates a new APIKeyService.
func NewAPIKeyService(db DB) *APIKeyService {
	return &APIKeyService{db: db}
}

// HashKey returns the stored form of a raw key.
func HashKey(rawKey string) string {
	hash := sha256.Sum256([]byte(rawKey))
	return hex.EncodeToString(hash[:])
}

// Create generates a new API key, stores its hash and returns the model with
// the raw key. The raw key is never stored and can only be shown once.
func (s *APIKeyService) Create(ctx context.Context, name string) (*model.APIKey, string, error) {
	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return nil, "", fmt.Errorf("generate api key: %w", err)
	}
	rawKey := apiKeyPrefix + hex.EncodeToString(rawBytes)

	key := &model.APIKey{
		ID:        platform.NewID(),
		Name:      name,
		KeyHash:   HashKey(rawKey),
		KeyPrefix: rawKey[:len(apiKeyPrefix)+8],
	}

	err := s.db.QueryRow(ctx,
		`INSERT INTO api_keys (id, name, key_hash, key_prefix, created_at) VALUES ($1, $2, $3, $4, now()) RETURNING created_at`,
		key.ID, key.Name, key.KeyHash, key.KeyPrefix,
	).Scan(&key.CreatedAt)
	if err != nil {
		return nil, "", fmt.Errorf("insert api key: %w", err)
	}

	return key, rawKey, nil
}

// Authenticate resolves a raw key to an active API key.
func (s *APIKeyService) Authenticate(ctx context.Context, rawKey string) (*model.APIKey, error) {
	var k model.APIKey
	err := s.db.QueryRow(ctx,
		`SELECT id, name, key_prefix, created_at FROM api_keys WHERE key_hash = $1 AND revoked_at IS NULL`, HashKey(rawKey),
	).Scan(&k.ID, &k.Name, &k.KeyPrefix, &k.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.NewError(model.ErrNotFound, "api key not found")
	}
	if err != nil {
		return nil, fmt.Errorf("authenticate api key: %w", err)
	}
	return &k, nil
}

// List returns all keys, newest first.
func (s *APIKeyService) List(ctx context.Context) ([]model.APIKey, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, name, key_prefix, created_at, revoked_at FROM api_keys ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list api keys: %w", err)
	}
	defer rows.Close()

	var keys []model.APIKey
	for rows.Next() {
		var k model.APIKey
		if err := rows.Scan(&k.ID, &k.Name, &k.KeyPrefix, &k.CreatedAt, &k.RevokedAt); err != nil {
			return nil, fmt.Errorf("scan api key: %w", err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate api keys: %w", err)
	}
	return keys, nil
}

// Revoke soft-deletes an API key by setting revoked_at.
func (s *APIKeyService) Revoke(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx,
		"UPDATE api_keys SET revoked_at = now() WHERE id = $1 AND revoked_at IS NULL", id,
	)
	if err != nil {
		return fmt.Errorf("revoke api key %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return model.NewError(model.ErrNotFound, "api key %s not found or already revoked", id)
	}
	return nil
}
