package app

import (
	"context"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
)

func TestInitStorage_Memory(t *testing.T) {
	t.Parallel()

	st, err := initStorage(context.Background(), Config{
		StorageDriver: StorageDriverMemory,
	}, log.WithField("test", "memory-storage"))
	if err != nil {
		t.Fatalf("initStorage(memory) failed: %v", err)
	}
	if st.repo == nil {
		t.Fatal("repo should not be nil for memory storage")
	}
	if err := st.ping(context.Background()); err != nil {
		t.Fatalf("memory storage should always be up: %v", err)
	}
}

func TestInitStorage_Bolt(t *testing.T) {
	t.Parallel()

	st, err := initStorage(context.Background(), Config{
		StorageDriver: StorageDriverBolt,
		BoltPath:      filepath.Join(t.TempDir(), "sales.db"),
	}, log.WithField("test", "bolt-storage"))
	if err != nil {
		t.Fatalf("initStorage(bolt) failed: %v", err)
	}
	t.Cleanup(func() { _ = st.repo.Close() })

	if st.repo == nil {
		t.Fatal("repo should not be nil for bolt storage")
	}
}

func TestInitStorage_PostgresRequiresDSN(t *testing.T) {
	t.Parallel()

	_, err := initStorage(context.Background(), Config{
		StorageDriver: StorageDriverPostgres,
	}, log.WithField("test", "postgres-missing-dsn"))
	if err == nil {
		t.Fatal("expected error when postgres driver is selected without DSN")
	}
}

func TestInitStorage_UnsupportedDriver(t *testing.T) {
	t.Parallel()

	_, err := initStorage(context.Background(), Config{
		StorageDriver: "sqlite",
	}, log.WithField("test", "unsupported-driver"))
	if err == nil {
		t.Fatal("expected error for unsupported storage driver")
	}
}
