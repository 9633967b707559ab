package commune

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestListActive(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	rows := sqlmock.NewRows([]string{"communeId", "boutiqueId", "name", "deliveryFee", "etaMinDays", "etaMaxDays", "active", "createdAt", "updatedAt"}).
		AddRow(1, 7, "Akanda", 2000, 1, 2, true, "t", "u").
		AddRow(2, 7, "Libreville", 1000, 0, 1, true, "t", "u")
	mock.ExpectQuery("FROM communes").WithArgs(7).WillReturnRows(rows)

	communes, err := repo.ListActive(7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(communes) != 2 {
		t.Fatalf("expected 2 communes, got %d", len(communes))
	}
	if communes[1].Name != "Libreville" || communes[1].DeliveryFee != 1000 {
		t.Fatalf("unexpected commune %+v", communes[1])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("FROM communes").WithArgs(99).WillReturnRows(sqlmock.NewRows([]string{"communeId"}))

	if _, err := repo.GetByID(99); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSetActive_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec("UPDATE communes").WithArgs(5, false, sqlmock.AnyArg()).WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.SetActive(5, false, "now"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
