package export

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Store writes documents into a SQLite database so decoded captures can be
// queried with SQL.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS captures (
   digest      TEXT PRIMARY KEY,
   source      TEXT,
   compression TEXT,
   bytes       BIGINT,
   truncated   BOOLEAN,
   total       INTEGER,
   service     INTEGER,
   useful      INTEGER,
   unknown     INTEGER,
   type_long   INTEGER,
   type_double INTEGER,
   type_code   INTEGER,
   type_point  INTEGER,
   unique_params INTEGER,
   point_lt4   INTEGER,
   point_ge4   INTEGER,
   code_lt8    INTEGER,
   code_ge8    INTEGER,
   imported_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS records (
   digest       TEXT NOT NULL,
   seq          INTEGER NOT NULL,
   kind         TEXT NOT NULL,
   number       INTEGER,
   name         TEXT,
   time_ms      BIGINT,
   dimension    TEXT,
   attribute    INTEGER,
   value_type   INTEGER,
   int_value    INTEGER,
   real_value   REAL,
   code_bits    INTEGER,
   element_size INTEGER,
   data_length  INTEGER,
   data         BLOB,
   rendered     TEXT,
   PRIMARY KEY (digest, seq)
);
CREATE INDEX IF NOT EXISTS idx_records_name_time ON records (digest, name, time_ms);
`

// OpenStore opens or creates the database at path.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

// Save stores doc, replacing any earlier import of the same digest.
func (s *Store) Save(ctx context.Context, doc Document) error {
	if doc.Digest == "" {
		return fmt.Errorf("document digest is required")
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM records WHERE digest = ?`, doc.Digest); err != nil {
		return err
	}
	st := doc.Statistics
	_, err = tx.ExecContext(ctx, `
		INSERT OR REPLACE INTO captures (digest, source, compression, bytes, truncated,
			total, service, useful, unknown, type_long, type_double, type_code, type_point,
			unique_params, point_lt4, point_ge4, code_lt8, code_ge8)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		doc.Digest, doc.Source, doc.Compression, doc.Bytes, doc.Truncated,
		st.TotalRecords, st.ServiceRecords, st.UsefulRecords, st.UnknownRecords,
		st.TypeCounts[0], st.TypeCounts[1], st.TypeCounts[2], st.TypeCounts[3],
		st.UniqueParameters, st.PointLess4, st.PointGreater4, st.CodeLess8, st.CodeGreater8,
	)
	if err != nil {
		return fmt.Errorf("insert capture: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO records (digest, seq, kind, number, name, time_ms, dimension, attribute,
			value_type, int_value, real_value, code_bits, element_size, data_length, data, rendered)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, r := range doc.Records {
		_, err := stmt.ExecContext(ctx,
			doc.Digest, r.Seq, r.Kind, int64(r.Number), r.Name, int64(r.Time), r.Dimension,
			int64(r.Attribute), int64(r.ValueType), nullInt(r.Int), nullReal(r.Real),
			nullInt(r.CodeBits), nullInt(r.ElementSize), nullInt(r.DataLength), r.Data, r.Rendered,
		)
		if err != nil {
			return fmt.Errorf("insert record %d: %w", r.Seq, err)
		}
	}
	return tx.Commit()
}

// CountRecords returns how many records are stored for digest, optionally
// restricted to one parameter name.
func (s *Store) CountRecords(ctx context.Context, digest, name string) (int, error) {
	var n int
	var err error
	if name == "" {
		err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM records WHERE digest = ?`, digest).Scan(&n)
	} else {
		err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM records WHERE digest = ? AND name = ?`, digest, name).Scan(&n)
	}
	return n, err
}

// Series returns the rendered values of one parameter ordered by time.
func (s *Store) Series(ctx context.Context, digest, name string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT rendered FROM records WHERE digest = ? AND name = ? ORDER BY time_ms, seq`, digest, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func nullInt[T ~int32 | ~uint8 | ~uint16](p *T) any {
	if p == nil {
		return nil
	}
	return int64(*p)
}

func nullReal(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}
