package db

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2HgO/subscriber-requests-go/config"
)

func TestUpsertRequest(t *testing.T) {
	now := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

	query, args, err := upsertRequest("Петров_Иван", []byte(`{"a":1}`), now).ToSql()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(query, "INSERT INTO subscriber_requests "), query)
	assert.Contains(t, query, "VALUES (?,?,?)")
	assert.True(t, strings.HasSuffix(query, "ON DUPLICATE KEY UPDATE document = VALUES(document), updated_at = VALUES(updated_at)"), query)
	assert.Equal(t, []any{"Петров_Иван", `{"a":1}`, now}, args)
}

func TestMySQLStoreLocation(t *testing.T) {
	store := NewMySQLStore(nil, config.MySQLConfig{Addr: "db:3306", Database: "subscribers"})

	assert.Equal(t, "mysql://db:3306/subscribers/subscriber_requests/", store.location)
}
