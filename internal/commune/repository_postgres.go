package commune

import (
	"database/sql"
)

// PostgresRepository stores communes in a dedicated table.
// Table layout expected:
//   "communeId" serial primary key,
//   "boutiqueId" int not null,
//   name text not null,
//   "deliveryFee" int not null default 0,
//   "etaMinDays" int, "etaMaxDays" int,
//   active boolean not null default true,
//   "createdAt" text, "updatedAt" text

type PostgresRepository struct {
	db *sql.DB
}

const (
	selectCommuneColumns = `"communeId", "boutiqueId", name, "deliveryFee", "etaMinDays", "etaMaxDays", active, "createdAt", "updatedAt"`

	insertCommuneQuery = `
        INSERT INTO communes ("boutiqueId", name, "deliveryFee", "etaMinDays", "etaMaxDays", active, "createdAt", "updatedAt")
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING ` + selectCommuneColumns

	updateCommuneQuery = `
        UPDATE communes
        SET name=$2, "deliveryFee"=$3, "etaMinDays"=$4, "etaMaxDays"=$5, "updatedAt"=$6
        WHERE "communeId"=$1
        RETURNING ` + selectCommuneColumns
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListActive(boutiqueID int) ([]Commune, error) {
	rows, err := r.db.Query(`SELECT `+selectCommuneColumns+` FROM communes WHERE "boutiqueId" = $1 AND active ORDER BY name`, boutiqueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Commune, 0)
	for rows.Next() {
		cm, err := scanCommune(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, cm)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetByID(communeID int) (Commune, error) {
	row := r.db.QueryRow(`SELECT `+selectCommuneColumns+` FROM communes WHERE "communeId" = $1`, communeID)
	cm, err := scanCommune(row)
	if err == sql.ErrNoRows {
		return Commune{}, ErrNotFound
	}
	return cm, err
}

func (r *PostgresRepository) Create(cm Commune) (Commune, error) {
	row := r.db.QueryRow(insertCommuneQuery, cm.BoutiqueID, cm.Name, cm.DeliveryFee, cm.EtaMinDays, cm.EtaMaxDays, cm.Active, cm.CreatedAt, cm.UpdatedAt)
	return scanCommune(row)
}

func (r *PostgresRepository) Update(cm Commune) (Commune, error) {
	row := r.db.QueryRow(updateCommuneQuery, cm.CommuneID, cm.Name, cm.DeliveryFee, cm.EtaMinDays, cm.EtaMaxDays, cm.UpdatedAt)
	out, err := scanCommune(row)
	if err == sql.ErrNoRows {
		return Commune{}, ErrNotFound
	}
	return out, err
}

func (r *PostgresRepository) SetActive(communeID int, active bool, updatedAt string) error {
	res, err := r.db.Exec(`UPDATE communes SET active=$2, "updatedAt"=$3 WHERE "communeId"=$1`, communeID, active, updatedAt)
	if err != nil {
		return err
	}
	cnt, _ := res.RowsAffected()
	if cnt == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCommune(row rowScanner) (Commune, error) {
	var (
		cm  Commune
		min sql.NullInt64
		max sql.NullInt64
	)
	if err := row.Scan(&cm.CommuneID, &cm.BoutiqueID, &cm.Name, &cm.DeliveryFee, &min, &max, &cm.Active, &cm.CreatedAt, &cm.UpdatedAt); err != nil {
		return Commune{}, err
	}
	cm.EtaMinDays = int(min.Int64)
	cm.EtaMaxDays = int(max.Int64)
	return cm, nil
}
