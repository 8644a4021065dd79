package pg

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"manasa.shop/internal/admin"
	"manasa.shop/internal/counter"
	"manasa.shop/internal/handover"
	"manasa.shop/internal/reconcile"
	"manasa.shop/internal/stock"
)

func newMock(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewWithDB(db), mock
}

func TestCounterUpsertInitial(t *testing.T) {
	store, mock := newMock(t)
	now := time.Now().UTC()

	mock.ExpectExec("insert into initial_cash").
		WithArgs("id-1", "2025-06-01", sqlmock.AnyArg(), now, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.Counter().UpsertInitial(context.Background(), &counter.InitialCash{
		ID:        "id-1",
		Date:      "2025-06-01",
		Amount:    reconcile.NewAmount(200),
		CreatedAt: now,
		UpdatedAt: now,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCounterFindInitialByDate(t *testing.T) {
	store, mock := newMock(t)
	now := time.Now().UTC()

	mock.ExpectQuery("select id, date, amount, created_at, updated_at.*from initial_cash where date").
		WithArgs("2025-06-01").
		WillReturnRows(sqlmock.NewRows([]string{"id", "date", "amount", "created_at", "updated_at"}).
			AddRow("id-1", "2025-06-01", "200", now, now))

	rec, err := store.Counter().FindInitialByDate(context.Background(), "2025-06-01")
	require.NoError(t, err)
	assert.Equal(t, "id-1", rec.ID)
	assert.True(t, rec.Amount.Equal(reconcile.NewAmount(200)))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCounterRemainingNotFound(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectQuery("from remaining_cash where date").
		WithArgs("2025-06-09").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := store.Counter().FindRemainingByDate(context.Background(), "2025-06-09")
	assert.ErrorIs(t, err, counter.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCounterRemainingRoundsJSONColumns(t *testing.T) {
	store, mock := newMock(t)
	now := time.Now().UTC()

	mock.ExpectQuery("from remaining_cash where date").
		WithArgs("2025-06-01").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "date", "notes", "coins", "companies", "card", "paytm",
			"additional", "other_payments", "opening_balance",
			"possible_offline", "possible_online", "remarks", "totals",
			"created_at", "updated_at",
		}).AddRow(
			"id-1", "2025-06-01",
			[]byte(`[{"denomination":500,"count":1}]`),
			[]byte(`[]`),
			[]byte(`[{"name":"Amul","amount":100}]`),
			"50", "20", "0", "0", "200", "480", "0", "",
			[]byte(`{"cashTotal":500,"companyPaidTotal":100,"combinedCashTotal":600,"finalRemainingTotal":470,"overallSalesTotal":480,"difference":10,"outcome":"loss"}`),
			now, now,
		))

	rec, err := store.Counter().FindRemainingByDate(context.Background(), "2025-06-01")
	require.NoError(t, err)
	require.Len(t, rec.Notes, 1)
	assert.Equal(t, int64(500), rec.Notes[0].Denomination)
	require.Len(t, rec.Companies, 1)
	assert.Equal(t, "Amul", rec.Companies[0].Name)
	assert.Equal(t, reconcile.OutcomeLoss, rec.Totals.Outcome)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStockDeleteEntryNotFound(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectExec("delete from stock_entries").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.Stock().DeleteEntry(context.Background(), "missing")
	assert.ErrorIs(t, err, stock.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStockFindEntry(t *testing.T) {
	store, mock := newMock(t)
	now := time.Now().UTC()

	mock.ExpectQuery("from stock_entries where id").
		WithArgs("e-1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "date", "distributors", "total_expenses", "created_at", "updated_at",
		}).AddRow("e-1", "2025-06-01",
			[]byte(`[{"id":"d-1","name":"Amul","totalPaid":500}]`),
			"500", now, now))

	e, err := store.Stock().FindEntry(context.Background(), "e-1")
	require.NoError(t, err)
	require.Len(t, e.Distributors, 1)
	assert.Equal(t, "Amul", e.Distributors[0].Name)
	assert.True(t, e.TotalStockExpenses.Equal(reconcile.NewAmount(500)))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHandoverDeleteNotFound(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectExec("delete from handovers").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.Handover().Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, handover.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminCreateUserDuplicateEmail(t *testing.T) {
	store, mock := newMock(t)
	now := time.Now().UTC()

	mock.ExpectExec("insert into users").
		WithArgs("u-1", "Manasa", "owner@manasa.shop", "hash", "active", now, now).
		WillReturnError(errors.New(`duplicate key value violates unique constraint "users_email_key"`))

	err := store.Admin().CreateUser(context.Background(), &admin.User{
		ID: "u-1", Name: "Manasa", Email: "owner@manasa.shop",
		PasswordHash: "hash", Status: "active", CreatedAt: now, UpdatedAt: now,
	})
	assert.ErrorIs(t, err, admin.ErrEmailTaken)
	require.NoError(t, mock.ExpectationsWereMet())
}
