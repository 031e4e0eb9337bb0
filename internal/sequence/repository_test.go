package sequence

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
)

func TestNextSequenceIncrementsPerPartition(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`INSERT INTO event_sequence`).
		WithArgs("order-1").
		WillReturnRows(pgxmock.NewRows([]string{"last_sequence"}).AddRow(int64(1)))
	mock.ExpectQuery(`INSERT INTO event_sequence`).
		WithArgs("order-1").
		WillReturnRows(pgxmock.NewRows([]string{"last_sequence"}).AddRow(int64(2)))

	repo := NewRepository(mock)
	first, err := repo.NextSequence(context.Background(), "order-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := repo.NextSequence(context.Background(), "order-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != 1 || second != 2 {
		t.Fatalf("expected 1 then 2, got %d then %d", first, second)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestNextSequenceWrapsErrors(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	boom := errors.New("boom")
	mock.ExpectQuery(`INSERT INTO event_sequence`).WillReturnError(boom)

	if _, err := NewRepository(mock).NextSequence(context.Background(), "order-1"); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}
