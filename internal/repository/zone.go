package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/shenikar/geo_monitoring_pipeline/internal/models"
)

// Querier - часть pgxpool.Pool, нужная для чтения
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// ZoneRepository читает запрещенные зоны вместе с именами субъектов
type ZoneRepository struct {
	db Querier
}

func NewZoneRepository(db Querier) *ZoneRepository {
	return &ZoneRepository{db: db}
}

// LoadZones возвращает все зоны всех субъектов. Порядок стабилен
// (subject_id, id), на нем держится правило "первая зона побеждает".
func (r *ZoneRepository) LoadZones(ctx context.Context) ([]models.RestrictedZone, error) {
	query := `
		SELECT
			z.id::text,
			z.subject_id::text,
			s.display_name,
			z.name,
			z.latitude,
			z.longitude,
			z.danger_radius_m,
			z.warning_radius_m
		FROM restricted_zones z
		JOIN subjects s ON z.subject_id = s.id
		ORDER BY z.subject_id, z.id;
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load restricted zones: %w", err)
	}
	defer rows.Close()

	zones := make([]models.RestrictedZone, 0)
	for rows.Next() {
		var z models.RestrictedZone
		err := rows.Scan(
			&z.ID,
			&z.SubjectID,
			&z.SubjectDisplay,
			&z.DisplayName,
			&z.CenterLatitude,
			&z.CenterLongitude,
			&z.DangerRadiusM,
			&z.WarningRadiusM,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan restricted zone row: %w", err)
		}
		zones = append(zones, z)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error zone list iteration: %w", err)
	}
	return zones, nil
}
