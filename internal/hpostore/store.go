// Package hpostore persists the HPO term graph and resolved protein
// metadata in a DuckDB database, so an analysis can run without touching
// any remote annotation service.
package hpostore

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/genophen/genophen/internal/model"
	"github.com/genophen/genophen/internal/ontology"
)

// Store manages a DuckDB connection holding ontology terms, ontology edges
// and protein metadata.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates a DuckDB database at the given path.
// Use an empty string for an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ensureSchema creates tables if they don't exist.
func (s *Store) ensureSchema() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS hpo_terms (
			id VARCHAR PRIMARY KEY,
			label VARCHAR
		)`,
		`CREATE TABLE IF NOT EXISTS hpo_edges (
			child VARCHAR,
			parent VARCHAR,
			PRIMARY KEY (child, parent)
		)`,
		`CREATE TABLE IF NOT EXISTS proteins (
			id VARCHAR PRIMARY KEY,
			label VARCHAR,
			length BIGINT
		)`,
		`CREATE TABLE IF NOT EXISTS protein_features (
			protein_id VARCHAR,
			name VARCHAR,
			feature_type VARCHAR,
			start_pos BIGINT,
			end_pos BIGINT
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// PutTerms stores ontology terms and their child-to-parent edges,
// replacing existing rows with the same keys.
func (s *Store) PutTerms(labels map[string]string, parents map[string][]string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	for id, label := range labels {
		if _, err := tx.Exec(`INSERT OR REPLACE INTO hpo_terms (id, label) VALUES (?, ?)`, id, label); err != nil {
			return fmt.Errorf("insert term %s: %w", id, err)
		}
	}
	for child, ps := range parents {
		for _, parent := range ps {
			if _, err := tx.Exec(`INSERT OR REPLACE INTO hpo_edges (child, parent) VALUES (?, ?)`, child, parent); err != nil {
				return fmt.Errorf("insert edge %s->%s: %w", child, parent, err)
			}
		}
	}
	return tx.Commit()
}

// LoadOntology reads the stored terms and edges into an in-memory graph.
func (s *Store) LoadOntology() (*ontology.Graph, error) {
	labels := map[string]string{}
	rows, err := s.db.Query(`SELECT id, label FROM hpo_terms`)
	if err != nil {
		return nil, fmt.Errorf("query terms: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id, label string
		if err := rows.Scan(&id, &label); err != nil {
			return nil, fmt.Errorf("scan term: %w", err)
		}
		labels[id] = label
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read terms: %w", err)
	}

	parents := map[string][]string{}
	edgeRows, err := s.db.Query(`SELECT child, parent FROM hpo_edges`)
	if err != nil {
		return nil, fmt.Errorf("query edges: %w", err)
	}
	defer edgeRows.Close()
	for edgeRows.Next() {
		var child, parent string
		if err := edgeRows.Scan(&child, &parent); err != nil {
			return nil, fmt.Errorf("scan edge: %w", err)
		}
		parents[child] = append(parents[child], parent)
	}
	if err := edgeRows.Err(); err != nil {
		return nil, fmt.Errorf("read edges: %w", err)
	}

	return ontology.NewGraph(labels, parents), nil
}

// PutProtein stores protein metadata, replacing any previous record.
func (s *Store) PutProtein(meta model.ProteinMetadata) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`INSERT OR REPLACE INTO proteins (id, label, length) VALUES (?, ?, ?)`,
		meta.ID, meta.Label, meta.Length); err != nil {
		return fmt.Errorf("insert protein %s: %w", meta.ID, err)
	}
	if _, err := tx.Exec(`DELETE FROM protein_features WHERE protein_id = ?`, meta.ID); err != nil {
		return fmt.Errorf("clear features of %s: %w", meta.ID, err)
	}
	for _, f := range meta.Features {
		if _, err := tx.Exec(`INSERT INTO protein_features (protein_id, name, feature_type, start_pos, end_pos) VALUES (?, ?, ?, ?, ?)`,
			meta.ID, f.Info.Name, string(f.Type), f.Info.Region.Start, f.Info.Region.End); err != nil {
			return fmt.Errorf("insert feature %q of %s: %w", f.Info.Name, meta.ID, err)
		}
	}
	return tx.Commit()
}

// GetProtein returns the stored metadata for the protein, if present.
func (s *Store) GetProtein(proteinID string) (model.ProteinMetadata, bool, error) {
	var meta model.ProteinMetadata
	err := s.db.QueryRow(`SELECT id, label, length FROM proteins WHERE id = ?`, proteinID).
		Scan(&meta.ID, &meta.Label, &meta.Length)
	if err == sql.ErrNoRows {
		return model.ProteinMetadata{}, false, nil
	}
	if err != nil {
		return model.ProteinMetadata{}, false, fmt.Errorf("query protein %s: %w", proteinID, err)
	}

	rows, err := s.db.Query(`SELECT name, feature_type, start_pos, end_pos FROM protein_features WHERE protein_id = ? ORDER BY start_pos, name`, proteinID)
	if err != nil {
		return model.ProteinMetadata{}, false, fmt.Errorf("query features of %s: %w", proteinID, err)
	}
	defer rows.Close()
	for rows.Next() {
		var name, ftName string
		var start, end int
		if err := rows.Scan(&name, &ftName, &start, &end); err != nil {
			return model.ProteinMetadata{}, false, fmt.Errorf("scan feature: %w", err)
		}
		ft, err := model.ParseFeatureType(ftName)
		if err != nil {
			return model.ProteinMetadata{}, false, fmt.Errorf("protein %s: %w", proteinID, err)
		}
		region, err := model.NewRegion(start, end)
		if err != nil {
			return model.ProteinMetadata{}, false, fmt.Errorf("protein %s feature %q: %w", proteinID, name, err)
		}
		meta.Features = append(meta.Features, model.ProteinFeature{
			Info: model.FeatureInfo{Name: name, Region: region},
			Type: ft,
		})
	}
	if err := rows.Err(); err != nil {
		return model.ProteinMetadata{}, false, fmt.Errorf("read features of %s: %w", proteinID, err)
	}
	return meta, true, nil
}
