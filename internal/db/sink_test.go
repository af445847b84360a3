package db

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"arbscan"
)

func newMockSink(t *testing.T) (*MySQLSink, sqlmock.Sqlmock, func()) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	sink := &MySQLSink{db: gormDB}
	return sink, mock, func() { sqlDB.Close() }
}

func sampleOpportunity() arbscan.Opportunity {
	return arbscan.Opportunity{
		ChainID: 1,
		Pair: arbscan.Pair{
			Base:  arbscan.Token{Symbol: "USDC", Decimals: 6},
			Quote: arbscan.Token{Symbol: "WETH", Decimals: 18},
		},
		Size:      decimal.NewFromInt(1000),
		Route:     arbscan.Route{LegA: "UniswapV3", LegB: "SushiSwap"},
		GrossBase: decimal.NewFromFloat(5.0),
		GrossBps:  50.0,
		NetUSD:    4.5,
		GasUSD:    0,
	}
}

func TestMySQLSinkWriteSingleOpportunity(t *testing.T) {
	sink, mock, closeFn := newMockSink(t)
	defer closeFn()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `opportunities`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := sink.Write(context.Background(), []arbscan.Opportunity{sampleOpportunity()})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLSinkWriteGroupsBatchInOneTransaction(t *testing.T) {
	sink, mock, closeFn := newMockSink(t)
	defer closeFn()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `opportunities`").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO `opportunities`").WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	err := sink.Write(context.Background(), []arbscan.Opportunity{sampleOpportunity(), sampleOpportunity()})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLSinkWriteEmptyIsNoop(t *testing.T) {
	sink, mock, closeFn := newMockSink(t)
	defer closeFn()

	err := sink.Write(context.Background(), nil)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOpportunityRecord_TableName(t *testing.T) {
	record := OpportunityRecord{}
	assert.Equal(t, "opportunities", record.TableName())
}
