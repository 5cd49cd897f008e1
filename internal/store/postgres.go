package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

const schema = `
CREATE TABLE IF NOT EXISTS suppliers (
	id                            UUID PRIMARY KEY,
	name                          TEXT NOT NULL,
	location_city                 TEXT NOT NULL DEFAULT '',
	location_country              TEXT NOT NULL DEFAULT '',
	quantity_units                DOUBLE PRECISION NOT NULL,
	price_per_unit                DOUBLE PRECISION NOT NULL,
	unit_weight_kg                DOUBLE PRECISION NOT NULL,
	distance_sea_km               DOUBLE PRECISION NOT NULL,
	distance_road_km              DOUBLE PRECISION NOT NULL,
	distance_air_km               DOUBLE PRECISION NOT NULL,
	delivery_cost_sea             DOUBLE PRECISION NOT NULL,
	delivery_cost_road            DOUBLE PRECISION NOT NULL,
	end_of_life_cost_per_kg       DOUBLE PRECISION NOT NULL,
	emission_factor_prod          DOUBLE PRECISION NOT NULL,
	emission_factor_sea           DOUBLE PRECISION NOT NULL,
	emission_factor_road          DOUBLE PRECISION NOT NULL,
	emission_factor_air           DOUBLE PRECISION NOT NULL,
	emission_factor_eol           DOUBLE PRECISION NOT NULL,
	deforestation_risk            TEXT NOT NULL,
	deforestation_score           INTEGER NOT NULL,
	reusable                      BOOLEAN NOT NULL,
	reuse_count                   DOUBLE PRECISION NOT NULL,
	return_km                     DOUBLE PRECISION NOT NULL,
	recyclability                 BOOLEAN NOT NULL,
	recycled_materials            BOOLEAN NOT NULL,
	total_cost                    DOUBLE PRECISION NOT NULL,
	total_emissions               DOUBLE PRECISION NOT NULL,
	adjusted_distance_road_km     DOUBLE PRECISION NOT NULL,
	adjusted_emission_factor_prod DOUBLE PRECISION NOT NULL,
	created_at                    TIMESTAMPTZ NOT NULL DEFAULT now(),
	seq                           BIGSERIAL
);
ALTER TABLE suppliers ADD COLUMN IF NOT EXISTS seq BIGSERIAL;
CREATE INDEX IF NOT EXISTS suppliers_created_at_idx ON suppliers (created_at DESC);`

// EnsureSchema creates the suppliers table if it does not exist yet.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

const supplierColumns = `id, name, location_city, location_country,
	quantity_units, price_per_unit, unit_weight_kg,
	distance_sea_km, distance_road_km, distance_air_km,
	delivery_cost_sea, delivery_cost_road, end_of_life_cost_per_kg,
	emission_factor_prod, emission_factor_sea, emission_factor_road, emission_factor_air, emission_factor_eol,
	deforestation_risk, deforestation_score,
	reusable, reuse_count, return_km, recyclability, recycled_materials,
	total_cost, total_emissions, adjusted_distance_road_km, adjusted_emission_factor_prod,
	created_at`

func (s *PostgresStore) CreateSupplier(ctx context.Context, sup *Supplier) error {
	if sup.ID == uuid.Nil {
		sup.ID = uuid.New()
	}
	a := sup.SupplierAttributes
	return s.pool.QueryRow(ctx, `
		INSERT INTO suppliers (id, name, location_city, location_country,
			quantity_units, price_per_unit, unit_weight_kg,
			distance_sea_km, distance_road_km, distance_air_km,
			delivery_cost_sea, delivery_cost_road, end_of_life_cost_per_kg,
			emission_factor_prod, emission_factor_sea, emission_factor_road, emission_factor_air, emission_factor_eol,
			deforestation_risk, deforestation_score,
			reusable, reuse_count, return_km, recyclability, recycled_materials,
			total_cost, total_emissions, adjusted_distance_road_km, adjusted_emission_factor_prod)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29)
		RETURNING created_at`,
		sup.ID, a.Name, a.LocationCity, a.LocationCountry,
		a.QuantityUnits, a.PricePerUnit, a.UnitWeightKg,
		a.DistanceSeaKm, a.DistanceRoadKm, a.DistanceAirKm,
		a.DeliveryCostSea, a.DeliveryCostRoad, a.EndOfLifeCostPerKg,
		a.EmissionFactorProd, a.EmissionFactorSea, a.EmissionFactorRoad, a.EmissionFactorAir, a.EmissionFactorEOL,
		string(a.DeforestationRisk), a.DeforestationScore,
		a.Reusable, a.ReuseCount, a.ReturnKm, a.Recyclable, a.RecycledMaterials,
		sup.TotalCost, sup.TotalEmissions, sup.AdjustedDistanceRoadKm, sup.AdjustedEmissionFactorProd,
	).Scan(&sup.CreatedAt)
}

func (s *PostgresStore) GetSupplier(ctx context.Context, id uuid.UUID) (*Supplier, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+supplierColumns+` FROM suppliers WHERE id = $1`, id)
	sup, err := scanSupplier(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return sup, nil
}

func (s *PostgresStore) ListSuppliers(ctx context.Context) ([]*Supplier, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+supplierColumns+` FROM suppliers ORDER BY created_at DESC, seq DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Supplier
	for rows.Next() {
		sup, err := scanSupplier(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sup)
	}
	return out, rows.Err()
}

func scanSupplier(row pgx.Row) (*Supplier, error) {
	sup := &Supplier{}
	a := &sup.SupplierAttributes
	var risk string
	err := row.Scan(
		&sup.ID, &a.Name, &a.LocationCity, &a.LocationCountry,
		&a.QuantityUnits, &a.PricePerUnit, &a.UnitWeightKg,
		&a.DistanceSeaKm, &a.DistanceRoadKm, &a.DistanceAirKm,
		&a.DeliveryCostSea, &a.DeliveryCostRoad, &a.EndOfLifeCostPerKg,
		&a.EmissionFactorProd, &a.EmissionFactorSea, &a.EmissionFactorRoad, &a.EmissionFactorAir, &a.EmissionFactorEOL,
		&risk, &a.DeforestationScore,
		&a.Reusable, &a.ReuseCount, &a.ReturnKm, &a.Recyclable, &a.RecycledMaterials,
		&sup.TotalCost, &sup.TotalEmissions, &sup.AdjustedDistanceRoadKm, &sup.AdjustedEmissionFactorProd,
		&sup.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	a.DeforestationRisk = DeforestationRisk(risk)
	return sup, nil
}
