package order

import (
	"database/sql"
	"encoding/json"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const (
	selectOrderColumns = `"orderId", "orderNumber", "boutiqueId", "customerName", phone, address, commune, instructions, items, subtotal, "deliveryFee", taxes, discount, total, status, "createdAt", "updatedAt"`

	insertOrderQuery = `
        INSERT INTO orders ("orderNumber", "boutiqueId", "customerName", phone, address, commune, instructions, items, subtotal, "deliveryFee", taxes, discount, total, status, "createdAt", "updatedAt")
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
        RETURNING ` + selectOrderColumns
)

func (r *PostgresRepository) Create(ord Order) (Order, error) {
	itemsJSON, err := json.Marshal(ord.Items)
	if err != nil {
		return Order{}, err
	}

	row := r.db.QueryRow(insertOrderQuery,
		ord.OrderNumber, ord.BoutiqueID, ord.CustomerName, ord.Phone, ord.Address, ord.Commune, ord.Instructions,
		itemsJSON, ord.Subtotal, ord.DeliveryFee, ord.Taxes, ord.Discount, ord.Total, ord.Status, ord.CreatedAt, ord.UpdatedAt)
	return scanOrder(row)
}

func (r *PostgresRepository) GetByNumber(orderNumber string) (Order, error) {
	row := r.db.QueryRow(`SELECT `+selectOrderColumns+` FROM orders WHERE "orderNumber" = $1`, orderNumber)
	ord, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return Order{}, ErrNotFound
	}
	return ord, err
}

// ListByIDs returns orders matching the given ids, ordered according to the
// sequence of ids in the slice.
func (r *PostgresRepository) ListByIDs(ids []int) ([]Order, error) {
	if len(ids) == 0 {
		return []Order{}, nil
	}

	query := `SELECT ` + selectOrderColumns + `
        FROM orders
        WHERE "orderId" = ANY($1::int[])
        ORDER BY array_position($1::int[], "orderId")`

	rows, err := r.db.Query(query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]Order, 0)
	for rows.Next() {
		ord, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, ord)
	}
	return orders, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (Order, error) {
	var (
		ord       Order
		itemsJSON []byte
	)
	if err := row.Scan(&ord.OrderID, &ord.OrderNumber, &ord.BoutiqueID, &ord.CustomerName, &ord.Phone, &ord.Address,
		&ord.Commune, &ord.Instructions, &itemsJSON, &ord.Subtotal, &ord.DeliveryFee, &ord.Taxes, &ord.Discount,
		&ord.Total, &ord.Status, &ord.CreatedAt, &ord.UpdatedAt); err != nil {
		return Order{}, err
	}
	if len(itemsJSON) > 0 {
		json.Unmarshal(itemsJSON, &ord.Items)
	}
	return ord, nil
}
