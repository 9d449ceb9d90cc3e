package db_test

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	"ms-hotelbooking/internal/booking/db"
	"ms-hotelbooking/internal/models"
)

// setupPostgres starts a disposable Postgres container and returns a store
// backed by a real connection pool. Unlike the SQLite harness, concurrent
// calls here run on separate connections with genuinely independent
// statement snapshots.
func setupPostgres(t *testing.T) (*db.DB, *bun.DB, func()) {
	if testing.Short() {
		t.Skip("Skipping Postgres integration test in short mode")
	}

	// testcontainers panics (rather than returning an error) when no Docker
	// host can be found, so the skip below never gets a chance to fire
	if _, err := os.Stat("/var/run/docker.sock"); err != nil && os.Getenv("DOCKER_HOST") == "" {
		t.Skip("Skipping: Docker is not available")
	}

	ctx := context.Background()
	pgContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "test",
				"POSTGRES_PASSWORD": "test",
				"POSTGRES_DB":       "testdb",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Skipf("Skipping: could not start Postgres container: %v", err)
	}

	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	port, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://test:test@%s:%s/testdb?sslmode=disable", host, port.Port())
	sqldb, err := sql.Open("postgres", dsn)
	require.NoError(t, err)

	bunDB := bun.NewDB(sqldb, pgdialect.New())

	for _, model := range []interface{}{
		(*models.Room)(nil),
		(*models.Booking)(nil),
	} {
		_, err = bunDB.NewCreateTable().Model(model).Exec(ctx)
		require.NoError(t, err)
	}

	cleanup := func() {
		bunDB.Close()
		pgContainer.Terminate(ctx)
	}
	return &db.DB{Bun: bunDB}, bunDB, cleanup
}

func TestInsertBookingIfCapacityPostgresRace(t *testing.T) {
	bookingDB, bunDB, cleanup := setupPostgres(t)
	defer cleanup()

	room := models.Room{Name: "101", Capacity: 1, HotelID: 1}
	_, err := bunDB.NewInsert().Model(&room).Exec(context.Background())
	require.NoError(t, err)

	// One free slot, many racing users on independent connections: the
	// room-row lock must admit exactly one past the capacity check
	const racers = 10
	var wg sync.WaitGroup
	errs := make([]error, racers)

	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = bookingDB.InsertBookingIfCapacity(context.Background(), int64(i+1), room.ID)
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			assert.ErrorIs(t, err, db.ErrRoomFull)
		}
	}
	assert.Equal(t, 1, winners)

	count, err := bunDB.NewSelect().
		Model((*models.Booking)(nil)).
		Where("room_id = ?", room.ID).
		Count(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestUpdateBookingRoomPostgresRace(t *testing.T) {
	bookingDB, bunDB, cleanup := setupPostgres(t)
	defer cleanup()

	source := models.Room{Name: "101", Capacity: 5, HotelID: 1}
	dest := models.Room{Name: "102", Capacity: 1, HotelID: 1}
	_, err := bunDB.NewInsert().Model(&source).Exec(context.Background())
	require.NoError(t, err)
	_, err = bunDB.NewInsert().Model(&dest).Exec(context.Background())
	require.NoError(t, err)

	const racers = 5
	bookingIDs := make([]int64, racers)
	for i := 0; i < racers; i++ {
		id, err := bookingDB.InsertBookingIfCapacity(context.Background(), int64(i+1), source.ID)
		require.NoError(t, err)
		bookingIDs[i] = id
	}

	// All five race for the destination's single slot over the pool
	var wg sync.WaitGroup
	errs := make([]error, racers)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = bookingDB.UpdateBookingRoomIfCapacity(context.Background(), bookingIDs[i], dest.ID)
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			assert.ErrorIs(t, err, db.ErrRoomFull)
		}
	}
	assert.Equal(t, 1, winners)

	count, err := bunDB.NewSelect().
		Model((*models.Booking)(nil)).
		Where("room_id = ?", dest.ID).
		Count(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 1, count)
}
