// Package secrets stores integration credentials in HashiCorp Vault. Only the
// reference path is persisted in Postgres; the secret material never touches
// the database.
package secrets

import (
	"context"
	"fmt"

	vault "github.com/hashicorp/vault/api"

	"github.com/mspsec/riskboard/internal/config"
	"github.com/mspsec/riskboard/pkg/errors"
	"github.com/mspsec/riskboard/pkg/logger"
)

// Store reads and writes integration secrets.
type Store interface {
	Put(ctx context.Context, ref string, secret map[string]string) error
	Get(ctx context.Context, ref string) (map[string]string, error)
	Delete(ctx context.Context, ref string) error
}

// VaultStore keeps secrets in a KV v2 mount, one secret per integration at its
// SecretRef path.
type VaultStore struct {
	client    *vault.Client
	mountPath string
	logger    logger.Logger
}

// NewVaultStore creates a Vault-backed secret store.
func NewVaultStore(cfg *config.VaultConfig, log logger.Logger) (*VaultStore, error) {
	vaultCfg := vault.DefaultConfig()
	vaultCfg.Address = cfg.Address

	client, err := vault.NewClient(vaultCfg)
	if err != nil {
		return nil, fmt.Errorf("create vault client: %w", err)
	}
	client.SetToken(cfg.Token)

	mount := cfg.MountPath
	if mount == "" {
		mount = "secret"
	}

	return &VaultStore{
		client:    client,
		mountPath: mount,
		logger:    log.WithComponent("vault_store"),
	}, nil
}

// Put writes the secret at ref, replacing any previous version.
func (s *VaultStore) Put(ctx context.Context, ref string, secret map[string]string) error {
	data := make(map[string]interface{}, len(secret))
	for k, v := range secret {
		data[k] = v
	}
	if _, err := s.client.KVv2(s.mountPath).Put(ctx, ref, data); err != nil {
		s.logger.Error(ctx, "failed to write secret", err, logger.String("ref", ref))
		return errors.ErrUnavailable("secret store unavailable").WithCause(err)
	}
	return nil
}

// Get reads the latest version of the secret at ref.
func (s *VaultStore) Get(ctx context.Context, ref string) (map[string]string, error) {
	kvSecret, err := s.client.KVv2(s.mountPath).Get(ctx, ref)
	if err != nil {
		return nil, errors.ErrNotFound("secret", ref).WithCause(err)
	}

	out := make(map[string]string, len(kvSecret.Data))
	for k, v := range kvSecret.Data {
		str, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("secret %s: field %s is not a string", ref, k)
		}
		out[k] = str
	}
	return out, nil
}

// Delete removes all versions of the secret at ref.
func (s *VaultStore) Delete(ctx context.Context, ref string) error {
	if err := s.client.KVv2(s.mountPath).DeleteMetadata(ctx, ref); err != nil {
		s.logger.Error(ctx, "failed to delete secret", err, logger.String("ref", ref))
		return errors.ErrUnavailable("secret store unavailable").WithCause(err)
	}
	return nil
}
