package database

import (
	"database/sql"
	"fmt"
	"time"

	"dnscache/internal/model"
)

// GetRecord returns the record for (hostname, recordType) if one exists and
// is still fresh at now. Expired rows are invisible here even before a sweep
// removes them; absent and expired both return (nil, nil).
func (db *DB) GetRecord(hostname, recordType string, now time.Time) (*model.Record, error) {
	r := &model.Record{}
	err := db.conn.QueryRow(
		`SELECT id, hostname, ip_address, record_type, ttl, created_at, expires_at
		 FROM dns_records
		 WHERE hostname = ? AND record_type = ? AND expires_at > ?`,
		hostname, recordType, now.UTC(),
	).Scan(&r.ID, &r.Hostname, &r.IPAddress, &r.Type, &r.TTL, &r.CreatedAt, &r.ExpiresAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

// PutRecord inserts or overwrites the record for (hostname, recordType).
// On conflict every mutable field is replaced unconditionally: the write
// always wins, there is no comparison against the old TTL or freshness.
func (db *DB) PutRecord(hostname, ip, recordType string, ttlSeconds int64, now time.Time) error {
	if ttlSeconds <= 0 {
		return fmt.Errorf("ttl must be a positive number of seconds, got %d", ttlSeconds)
	}
	createdAt := now.UTC()
	expiresAt := createdAt.Add(time.Duration(ttlSeconds) * time.Second)

	_, err := db.conn.Exec(
		`INSERT INTO dns_records (hostname, ip_address, record_type, ttl, created_at, expires_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(hostname, record_type)
		 DO UPDATE SET
		   ip_address = excluded.ip_address,
		   ttl = excluded.ttl,
		   created_at = excluded.created_at,
		   expires_at = excluded.expires_at`,
		hostname, ip, recordType, ttlSeconds, createdAt, expiresAt,
	)
	return err
}

// ListFresh returns every record still fresh at now, ordered by hostname.
func (db *DB) ListFresh(now time.Time) ([]model.Record, error) {
	rows, err := db.conn.Query(
		`SELECT id, hostname, ip_address, record_type, ttl, created_at, expires_at
		 FROM dns_records
		 WHERE expires_at > ?
		 ORDER BY hostname`,
		now.UTC(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.Record
	for rows.Next() {
		var r model.Record
		if err := rows.Scan(&r.ID, &r.Hostname, &r.IPAddress, &r.Type, &r.TTL, &r.CreatedAt, &r.ExpiresAt); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// DeleteExpired removes every record whose expiry is at or before now and
// reports how many rows went away. Running it again immediately removes zero.
func (db *DB) DeleteExpired(now time.Time) (int64, error) {
	result, err := db.conn.Exec(
		"DELETE FROM dns_records WHERE expires_at <= ?",
		now.UTC(),
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
