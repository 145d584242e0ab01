package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/fx_transfer_app/internal/apperrors"
	"github.com/SscSPs/fx_transfer_app/internal/core/domain"
	portsrepo "github.com/SscSPs/fx_transfer_app/internal/core/ports/repositories"
	"github.com/SscSPs/fx_transfer_app/internal/models"
	"github.com/SscSPs/fx_transfer_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

// PgxPolicyRepository reads and writes the singleton rows of policy_config.
type PgxPolicyRepository struct {
	BaseRepository
}

// newPgxPolicyRepository creates a new repository for administrative policy.
func newPgxPolicyRepository(pool PgxPool) portsrepo.PolicyRepositoryFacade {
	return &PgxPolicyRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.PolicyRepositoryFacade = (*PgxPolicyRepository)(nil)

func (r *PgxPolicyRepository) GetTransferLimit(ctx context.Context) (*domain.TransferLimitPolicy, error) {
	row, err := r.getConfig(ctx, models.PolicyKeyTransferLimit)
	if err != nil {
		return nil, err
	}
	policy, err := mapping.ToDomainTransferLimit(*row)
	if err != nil {
		return nil, err
	}
	return &policy, nil
}

func (r *PgxPolicyRepository) GetConversionCutoff(ctx context.Context) (*domain.ConversionCutoff, error) {
	row, err := r.getConfig(ctx, models.PolicyKeyConversionCutoff)
	if err != nil {
		return nil, err
	}
	cutoff, err := mapping.ToDomainConversionCutoff(*row)
	if err != nil {
		return nil, err
	}
	return &cutoff, nil
}

func (r *PgxPolicyRepository) SaveTransferLimit(ctx context.Context, policy domain.TransferLimitPolicy) error {
	row, err := mapping.ToModelTransferLimit(policy)
	if err != nil {
		return err
	}
	return r.saveConfig(ctx, row)
}

func (r *PgxPolicyRepository) SaveConversionCutoff(ctx context.Context, cutoff domain.ConversionCutoff) error {
	row, err := mapping.ToModelConversionCutoff(cutoff)
	if err != nil {
		return err
	}
	return r.saveConfig(ctx, row)
}

func (r *PgxPolicyRepository) getConfig(ctx context.Context, key string) (*models.PolicyConfig, error) {
	query := `
		SELECT config_key, config_value, created_at, created_by, last_updated_at, last_updated_by
		FROM policy_config
		WHERE config_key = $1;
	`
	var row models.PolicyConfig
	err := r.Pool.QueryRow(ctx, query, key).Scan(
		&row.ConfigKey, &row.Value, &row.CreatedAt, &row.CreatedBy, &row.LastUpdatedAt, &row.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("policy " + key + " is not configured")
		}
		return nil, fmt.Errorf("failed to get policy %s: %w", key, err)
	}
	return &row, nil
}

// saveConfig upserts a row, keeping its original creation audit.
func (r *PgxPolicyRepository) saveConfig(ctx context.Context, row models.PolicyConfig) error {
	query := `
		INSERT INTO policy_config (config_key, config_value, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (config_key)
		DO UPDATE SET config_value = EXCLUDED.config_value,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query,
		row.ConfigKey, row.Value, row.CreatedAt, row.CreatedBy, row.LastUpdatedAt, row.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save policy %s: %w", row.ConfigKey, err)
	}
	return nil
}
