package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonScheduling/pkg/dbmetrics"
)

type fakeTx struct {
	committed  int
	rolledBack int
}

func (t *fakeTx) ExecContext(context.Context, string, ...any) (sql.Result, error) { return nil, nil }
func (t *fakeTx) QueryContext(context.Context, string, ...any) (*sql.Rows, error) { return nil, nil }
func (t *fakeTx) QueryRowContext(context.Context, string, ...any) *sql.Row        { return nil }
func (t *fakeTx) Commit() error                                                   { t.committed++; return nil }
func (t *fakeTx) Rollback() error                                                 { t.rolledBack++; return nil }

type fakeBeginner struct {
	txs  []*fakeTx
	opts []*sql.TxOptions
	ctxs []context.Context
}

func (b *fakeBeginner) BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	tx := &fakeTx{}
	b.txs = append(b.txs, tx)
	b.ctxs = append(b.ctxs, ctx)
	b.opts = append(b.opts, opts)
	return tx, nil
}

func TestDoSerializable_CommitsAndPassesTxInContext(t *testing.T) {
	beginner := &fakeBeginner{}
	mgr := NewTransactionManager(beginner)

	err := mgr.DoSerializable(context.Background(), func(ctx context.Context) error {
		assert.True(t, dbmetrics.IsInTransaction(ctx))
		return nil
	})

	require.NoError(t, err)
	require.Len(t, beginner.txs, 1)
	assert.Equal(t, 1, beginner.txs[0].committed)
	assert.Equal(t, sql.LevelSerializable, beginner.opts[0].Isolation)
}

func TestDoSerializable_RetriesSerializationFailure(t *testing.T) {
	beginner := &fakeBeginner{}
	mgr := NewTransactionManager(beginner)

	calls := 0
	err := mgr.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		if calls == 1 {
			return &pq.Error{Code: "40001"}
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	require.Len(t, beginner.txs, 2)
	assert.Equal(t, 1, beginner.txs[0].rolledBack)
	assert.Equal(t, 1, beginner.txs[1].committed)
}

func TestDoSerializable_DoesNotRetryBusinessErrors(t *testing.T) {
	beginner := &fakeBeginner{}
	mgr := NewTransactionManager(beginner)
	errBusiness := errors.New("slot taken")

	calls := 0
	err := mgr.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		return errBusiness
	})

	assert.ErrorIs(t, err, errBusiness)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, beginner.txs[0].rolledBack)
}

func TestDoSerializable_JoinsOuterTransaction(t *testing.T) {
	beginner := &fakeBeginner{}
	mgr := NewTransactionManager(beginner)

	err := mgr.DoSerializable(context.Background(), func(outer context.Context) error {
		return mgr.DoSerializable(outer, func(inner context.Context) error {
			return nil
		})
	})

	require.NoError(t, err)
	assert.Len(t, beginner.txs, 1)
}

func TestDo_CommitsWhenCallerCancelsAfterWork(t *testing.T) {
	beginner := &fakeBeginner{}
	mgr := NewTransactionManager(beginner)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err := mgr.Do(ctx, func(txCtx context.Context) error {
		cancel()
		assert.Error(t, txCtx.Err())
		return nil
	})

	require.NoError(t, err)
	require.Len(t, beginner.txs, 1)
	assert.Equal(t, 1, beginner.txs[0].committed)
	assert.Equal(t, sql.LevelReadCommitted, beginner.opts[0].Isolation)
	// транзакция открыта на контексте, который не отменяется вместе с запросом
	assert.NoError(t, beginner.ctxs[0].Err())
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(&pq.Error{Code: "40P01"}))
	assert.False(t, IsRetryable(&pq.Error{Code: "23505"}))
	assert.False(t, IsRetryable(errors.New("plain")))
}
