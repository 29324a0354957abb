package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vkaraulov/orderlens/pkg/orderlens"
)

// errStop halts Load at the target-connect step so the earlier workflow
// can be asserted without a live database.
var errStop = errors.New("mock stop")

func stoppingConnectorFactory(_ *orderlens.ConnectionConfig) (orderlens.Connector, error) {
	return &mockConnector{err: errStop}, nil
}

func writeInputCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "orders.csv")
	content := "order_id,order_date,customer_id,product,category,quantity,unit_price\n" +
		"a1b2,2025-03-01,C0001,Widget,Tools,2,19.99\n" +
		"c3d4,2025-03-02,C0002,Gadget,Toys,1,5.49\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func validLoadConfig(t *testing.T) orderlens.LoadConfig {
	return orderlens.LoadConfig{
		InputPath:        writeInputCSV(t),
		DatabaseName:     "orders_test",
		ConnectionString: "postgresql://localhost/postgres",
	}
}

func newTestLoadService(dbMgr *mockDatabaseManager, mgmtConn managementDBConnFunc) *LoadService {
	if dbMgr == nil {
		dbMgr = &mockDatabaseManager{}
	}
	svc := NewLoadService(stoppingConnectorFactory, &mockApprover{approved: true}, &mockLogger{}, dbMgr)
	if mgmtConn != nil {
		svc.mgmtConnector = mgmtConn
	}
	return svc
}

func noop() {}

func successfulMgmtConn() managementDBConnFunc {
	return func(_ context.Context, _ *orderlens.ConnectionConfig, _ string) (orderlens.DBConnection, func(), error) {
		return &mockDBConnection{}, noop, nil
	}
}

func TestNewLoadService_NilDeps(t *testing.T) {
	cf := stoppingConnectorFactory
	ap := &mockApprover{}
	lg := &mockLogger{}
	dm := &mockDatabaseManager{}

	tests := []struct {
		name string
		fn   func()
	}{
		{"nil connectorFactory", func() { NewLoadService(nil, ap, lg, dm) }},
		{"nil approver", func() { NewLoadService(cf, nil, lg, dm) }},
		{"nil logger", func() { NewLoadService(cf, ap, nil, dm) }},
		{"nil dbManager", func() { NewLoadService(cf, ap, lg, nil) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if r := recover(); r == nil {
					t.Error("Expected panic")
				}
			}()
			tt.fn()
		})
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	svc := newTestLoadService(nil, nil)
	ctx := context.Background()

	tests := []struct {
		name   string
		config orderlens.LoadConfig
	}{
		{"missing InputPath", orderlens.LoadConfig{DatabaseName: "db", ConnectionString: "postgresql://localhost/postgres"}},
		{"missing DatabaseName", orderlens.LoadConfig{InputPath: "orders.csv", ConnectionString: "postgresql://localhost/postgres"}},
		{"missing ConnectionString", orderlens.LoadConfig{InputPath: "orders.csv", DatabaseName: "db"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Load(ctx, tt.config)
			if !errors.Is(err, orderlens.ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got: %v", err)
			}
		})
	}
}

func TestLoad_InvalidConnectionString(t *testing.T) {
	svc := newTestLoadService(nil, nil)

	cfg := validLoadConfig(t)
	cfg.ConnectionString = "not a connection string"

	_, err := svc.Load(context.Background(), cfg)
	if !errors.Is(err, orderlens.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got: %v", err)
	}
}

func TestLoad_InputMissing(t *testing.T) {
	svc := newTestLoadService(nil, successfulMgmtConn())

	cfg := validLoadConfig(t)
	cfg.InputPath = filepath.Join(t.TempDir(), "does-not-exist.csv")

	_, err := svc.Load(context.Background(), cfg)
	if !errors.Is(err, orderlens.ErrInputNotFound) {
		t.Errorf("Expected ErrInputNotFound, got: %v", err)
	}
}

func TestLoad_MalformedInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.csv")
	content := "order_id,order_date,customer_id,product,category,quantity,unit_price\n" +
		"a1b2,not-a-date,C0001,Widget,Tools,2,19.99\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	svc := newTestLoadService(nil, successfulMgmtConn())
	cfg := validLoadConfig(t)
	cfg.InputPath = path

	_, err := svc.Load(context.Background(), cfg)
	if !errors.Is(err, orderlens.ErrMalformedRow) {
		t.Errorf("Expected ErrMalformedRow, got: %v", err)
	}
}

func TestLoad_CreatesMissingDatabase(t *testing.T) {
	dbMgr := &mockDatabaseManager{existsResult: false}
	svc := newTestLoadService(dbMgr, successfulMgmtConn())

	_, err := svc.Load(context.Background(), validLoadConfig(t))
	if !errors.Is(err, errStop) {
		t.Fatalf("Expected mock stop, got: %v", err)
	}
	if len(dbMgr.createdDatabases) != 1 || dbMgr.createdDatabases[0] != "orders_test" {
		t.Errorf("Expected create of orders_test, got: %v", dbMgr.createdDatabases)
	}
}

func TestLoad_ExistingDatabaseSkipsCreate(t *testing.T) {
	dbMgr := &mockDatabaseManager{existsResult: true}
	svc := newTestLoadService(dbMgr, successfulMgmtConn())

	_, err := svc.Load(context.Background(), validLoadConfig(t))
	if !errors.Is(err, errStop) {
		t.Fatalf("Expected mock stop, got: %v", err)
	}
	if len(dbMgr.createdDatabases) != 0 {
		t.Errorf("Expected no create calls, got: %v", dbMgr.createdDatabases)
	}
}

func TestLoad_MgmtConnectionFails(t *testing.T) {
	mgmtErr := fmt.Errorf("mgmt connect: %w", orderlens.ErrConnectionFailed)
	svc := newTestLoadService(nil, func(_ context.Context, _ *orderlens.ConnectionConfig, _ string) (orderlens.DBConnection, func(), error) {
		return nil, nil, mgmtErr
	})

	_, err := svc.Load(context.Background(), validLoadConfig(t))
	if !errors.Is(err, orderlens.ErrConnectionFailed) {
		t.Errorf("Expected ErrConnectionFailed, got: %v", err)
	}
}

func TestLoad_ExistsCheckFails(t *testing.T) {
	dbMgr := &mockDatabaseManager{existsErr: errors.New("exists query failed")}
	svc := newTestLoadService(dbMgr, successfulMgmtConn())

	_, err := svc.Load(context.Background(), validLoadConfig(t))
	if err == nil || !strings.Contains(err.Error(), "exists query failed") {
		t.Errorf("Expected exists error, got: %v", err)
	}
}

func TestLoad_CreateFails(t *testing.T) {
	dbMgr := &mockDatabaseManager{existsResult: false, createErr: errors.New("create failed")}
	svc := newTestLoadService(dbMgr, successfulMgmtConn())

	_, err := svc.Load(context.Background(), validLoadConfig(t))
	if err == nil || !strings.Contains(err.Error(), "create failed") {
		t.Errorf("Expected create error, got: %v", err)
	}
}

func TestLoad_MaintenanceDatabaseDefault(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		want       string
	}{
		{"default", "", orderlens.DefaultManagementDB},
		{"explicit", "maintenance", "maintenance"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotDB string
			svc := newTestLoadService(nil, func(_ context.Context, _ *orderlens.ConnectionConfig, dbName string) (orderlens.DBConnection, func(), error) {
				gotDB = dbName
				return &mockDBConnection{}, noop, nil
			})

			cfg := validLoadConfig(t)
			cfg.MaintenanceDatabase = tt.configured

			_, err := svc.Load(context.Background(), cfg)
			if !errors.Is(err, errStop) {
				t.Fatalf("Expected mock stop, got: %v", err)
			}
			if gotDB != tt.want {
				t.Errorf("Expected maintenance database %q, got %q", tt.want, gotDB)
			}
		})
	}
}

func TestLoad_ConnectorFactoryFails(t *testing.T) {
	factory := func(_ *orderlens.ConnectionConfig) (orderlens.Connector, error) {
		return nil, errors.New("factory failed")
	}
	svc := NewLoadService(factory, &mockApprover{}, &mockLogger{}, &mockDatabaseManager{existsResult: true})
	svc.mgmtConnector = successfulMgmtConn()

	_, err := svc.Load(context.Background(), validLoadConfig(t))
	if err == nil || !strings.Contains(err.Error(), "factory failed") {
		t.Errorf("Expected factory error, got: %v", err)
	}
}

func TestLoad_CloudFieldsForwarded(t *testing.T) {
	var got *orderlens.ConnectionConfig
	svc := newTestLoadService(nil, func(_ context.Context, connConfig *orderlens.ConnectionConfig, _ string) (orderlens.DBConnection, func(), error) {
		got = connConfig
		return &mockDBConnection{}, noop, nil
	})

	cfg := validLoadConfig(t)
	cfg.AuthMethod = orderlens.AuthMethodAWSIAM
	cfg.AWSRegion = "eu-west-1"

	_, err := svc.Load(context.Background(), cfg)
	if !errors.Is(err, errStop) {
		t.Fatalf("Expected mock stop, got: %v", err)
	}
	if got.AuthMethod != orderlens.AuthMethodAWSIAM {
		t.Errorf("Expected AWS IAM auth method, got %v", got.AuthMethod)
	}
	if got.AWSRegion != "eu-west-1" {
		t.Errorf("Expected region eu-west-1, got %q", got.AWSRegion)
	}
}
