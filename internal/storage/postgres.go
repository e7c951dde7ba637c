package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"go.uber.org/zap"

	"github.com/JusFlow/datajud-service/internal/types"
	"github.com/JusFlow/datajud-service/internal/utils"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS historico_consultas (
	id BIGSERIAL PRIMARY KEY,
	numero_processo TEXT NOT NULL,
	tribunal TEXT NOT NULL,
	processo JSONB NOT NULL,
	consultado_em TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS favoritos (
	numero_processo TEXT NOT NULL,
	tribunal TEXT NOT NULL,
	processo JSONB NOT NULL,
	adicionado_em TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (numero_processo, tribunal)
);
CREATE TABLE IF NOT EXISTS acompanhamentos (
	numero_processo TEXT NOT NULL,
	tribunal TEXT NOT NULL,
	processo JSONB NOT NULL,
	total_movimentos INT NOT NULL DEFAULT 0,
	ultima_verificacao TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (numero_processo, tribunal)
);
`

// PostgresStore persists the acervo in PostgreSQL. Process snapshots are
// stored as JSONB so schema changes in the canonical record never require a
// migration.
type PostgresStore struct {
	pool         *pgxpool.Pool
	historyLimit int
}

// NewPostgresStore connects a pool, verifies the connection and bootstraps
// the schema.
func NewPostgresStore(ctx context.Context, dsn string, maxConns int, historyLimit int) (*PostgresStore, error) {
	if historyLimit < 1 {
		historyLimit = 10
	}

	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database DSN: %w", err)
	}
	if maxConns > 0 {
		cfg.MaxConns = int32(maxConns)
	}

	pool, err := pgxpool.ConnectConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping PostgreSQL: %w", err)
	}

	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to bootstrap schema: %w", err)
	}

	utils.Zlog.Info("PostgreSQL store initialized",
		zap.Int32("maxConns", cfg.MaxConns),
		zap.Int("historyLimit", historyLimit))

	return &PostgresStore{pool: pool, historyLimit: historyLimit}, nil
}

func (s *PostgresStore) AddSearchHistory(ctx context.Context, p types.Processo) error {
	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal processo: %w", err)
	}

	// Re-lookups move to the front instead of duplicating.
	if _, err := s.pool.Exec(ctx,
		`DELETE FROM historico_consultas WHERE numero_processo = $1 AND tribunal = $2`,
		p.NumeroProcesso, p.Tribunal); err != nil {
		return fmt.Errorf("failed to dedupe history: %w", err)
	}

	if _, err := s.pool.Exec(ctx,
		`INSERT INTO historico_consultas (numero_processo, tribunal, processo) VALUES ($1, $2, $3)`,
		p.NumeroProcesso, p.Tribunal, doc); err != nil {
		return fmt.Errorf("failed to insert history: %w", err)
	}

	if _, err := s.pool.Exec(ctx,
		`DELETE FROM historico_consultas WHERE id NOT IN (
			SELECT id FROM historico_consultas ORDER BY consultado_em DESC, id DESC LIMIT $1
		)`, s.historyLimit); err != nil {
		return fmt.Errorf("failed to trim history: %w", err)
	}
	return nil
}

func (s *PostgresStore) SearchHistory(ctx context.Context) ([]types.Processo, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT processo FROM historico_consultas ORDER BY consultado_em DESC, id DESC LIMIT $1`,
		s.historyLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	out := make([]types.Processo, 0, s.historyLimit)
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		var p types.Processo
		if err := json.Unmarshal(doc, &p); err != nil {
			return nil, fmt.Errorf("failed to unmarshal processo: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *PostgresStore) AddFavorite(ctx context.Context, p types.Processo) error {
	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal processo: %w", err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO favoritos (numero_processo, tribunal, processo) VALUES ($1, $2, $3)
		 ON CONFLICT (numero_processo, tribunal) DO UPDATE SET processo = EXCLUDED.processo`,
		p.NumeroProcesso, p.Tribunal, doc)
	if err != nil {
		return fmt.Errorf("failed to upsert favorite: %w", err)
	}
	return nil
}

func (s *PostgresStore) RemoveFavorite(ctx context.Context, numeroProcesso, tribunal string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM favoritos WHERE numero_processo = $1 AND tribunal = $2`,
		numeroProcesso, tribunal)
	if err != nil {
		return fmt.Errorf("failed to delete favorite: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrRegistroNaoEncontrado
	}
	return nil
}

func (s *PostgresStore) GetFavorite(ctx context.Context, numeroProcesso, tribunal string) (*Favorito, error) {
	var f Favorito
	var doc []byte
	err := s.pool.QueryRow(ctx,
		`SELECT numero_processo, tribunal, processo, adicionado_em
		 FROM favoritos WHERE numero_processo = $1 AND tribunal = $2`,
		numeroProcesso, tribunal).Scan(&f.NumeroProcesso, &f.Tribunal, &doc, &f.AdicionadoEm)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRegistroNaoEncontrado
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query favorite: %w", err)
	}
	if err := json.Unmarshal(doc, &f.Processo); err != nil {
		return nil, fmt.Errorf("failed to unmarshal processo: %w", err)
	}
	return &f, nil
}

func (s *PostgresStore) ListFavorites(ctx context.Context) ([]Favorito, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT numero_processo, tribunal, processo, adicionado_em
		 FROM favoritos ORDER BY adicionado_em DESC, numero_processo ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query favorites: %w", err)
	}
	defer rows.Close()

	var out []Favorito
	for rows.Next() {
		var f Favorito
		var doc []byte
		if err := rows.Scan(&f.NumeroProcesso, &f.Tribunal, &doc, &f.AdicionadoEm); err != nil {
			return nil, fmt.Errorf("failed to scan favorite row: %w", err)
		}
		if err := json.Unmarshal(doc, &f.Processo); err != nil {
			return nil, fmt.Errorf("failed to unmarshal processo: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Follow(ctx context.Context, p types.Processo) error {
	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal processo: %w", err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO acompanhamentos (numero_processo, tribunal, processo, total_movimentos)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (numero_processo, tribunal)
		 DO UPDATE SET processo = EXCLUDED.processo, total_movimentos = EXCLUDED.total_movimentos`,
		p.NumeroProcesso, p.Tribunal, doc, len(p.Movimentos))
	if err != nil {
		return fmt.Errorf("failed to upsert follow: %w", err)
	}
	return nil
}

func (s *PostgresStore) Unfollow(ctx context.Context, numeroProcesso, tribunal string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM acompanhamentos WHERE numero_processo = $1 AND tribunal = $2`,
		numeroProcesso, tribunal)
	if err != nil {
		return fmt.Errorf("failed to delete follow: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrRegistroNaoEncontrado
	}
	return nil
}

func (s *PostgresStore) ListFollowed(ctx context.Context) ([]Acompanhamento, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT numero_processo, tribunal, processo, total_movimentos, ultima_verificacao
		 FROM acompanhamentos ORDER BY numero_processo ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query follows: %w", err)
	}
	defer rows.Close()

	var out []Acompanhamento
	for rows.Next() {
		var a Acompanhamento
		var doc []byte
		if err := rows.Scan(&a.NumeroProcesso, &a.Tribunal, &doc, &a.TotalMovimentos, &a.UltimaVerificacao); err != nil {
			return nil, fmt.Errorf("failed to scan follow row: %w", err)
		}
		if err := json.Unmarshal(doc, &a.Processo); err != nil {
			return nil, fmt.Errorf("failed to unmarshal processo: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *PostgresStore) UpdateFollowed(ctx context.Context, p types.Processo) error {
	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal processo: %w", err)
	}
	tag, err := s.pool.Exec(ctx,
		`UPDATE acompanhamentos
		 SET processo = $3, total_movimentos = $4, ultima_verificacao = now()
		 WHERE numero_processo = $1 AND tribunal = $2`,
		p.NumeroProcesso, p.Tribunal, doc, len(p.Movimentos))
	if err != nil {
		return fmt.Errorf("failed to update follow: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrRegistroNaoEncontrado
	}
	return nil
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}
