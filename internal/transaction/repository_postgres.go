package transaction

import (
	"database/sql"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const (
	selectTransactionColumns = `"transactionId", reference, "orderId", amount, operator, "paymentType", phone, "operatorReference", note, status, "createdAt"`

	insertTransactionQuery = `
        INSERT INTO transactions (reference, "orderId", amount, operator, "paymentType", phone, "operatorReference", note, status, "createdAt")
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING ` + selectTransactionColumns
)

func (r *PostgresRepository) Create(tx Transaction) (Transaction, error) {
	row := r.db.QueryRow(insertTransactionQuery,
		tx.Reference, tx.OrderID, tx.Amount, tx.Operator, tx.PaymentType, tx.Phone, tx.OperatorReference, tx.Note, tx.Status, tx.CreatedAt)
	return scanTransaction(row)
}

func (r *PostgresRepository) ListByOrder(orderID int) ([]Transaction, error) {
	rows, err := r.db.Query(`SELECT `+selectTransactionColumns+` FROM transactions WHERE "orderId" = $1 ORDER BY "transactionId"`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Transaction, 0)
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, tx)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (Transaction, error) {
	var tx Transaction
	if err := row.Scan(&tx.TransactionID, &tx.Reference, &tx.OrderID, &tx.Amount, &tx.Operator, &tx.PaymentType,
		&tx.Phone, &tx.OperatorReference, &tx.Note, &tx.Status, &tx.CreatedAt); err != nil {
		return Transaction{}, err
	}
	return tx, nil
}
