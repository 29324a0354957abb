package services

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/vkaraulov/orderlens/internal/db"
	"github.com/vkaraulov/orderlens/internal/order"
	"github.com/vkaraulov/orderlens/internal/store"
	"github.com/vkaraulov/orderlens/pkg/orderlens"
)

type managementDBConnFunc func(ctx context.Context, connConfig *orderlens.ConnectionConfig, dbName string) (orderlens.DBConnection, func(), error)

var _ orderlens.Loader = (*LoadService)(nil)

// LoadService implements the Loader interface: parse the input CSV, make
// sure the target database exists, then atomically replace the orders table.
//
// Not safe for concurrent Load calls on the same instance.
type LoadService struct {
	connectorFactory func(*orderlens.ConnectionConfig) (orderlens.Connector, error)
	approver         orderlens.Approver
	logger           orderlens.Logger
	dbManager        orderlens.DatabaseManager
	mgmtConnector    managementDBConnFunc
}

// NewLoadService creates a LoadService with all dependencies injected.
// Nil dependencies are programmer errors and panic at construction.
func NewLoadService(
	connectorFactory func(*orderlens.ConnectionConfig) (orderlens.Connector, error),
	approver orderlens.Approver,
	logger orderlens.Logger,
	dbManager orderlens.DatabaseManager,
) *LoadService {
	if connectorFactory == nil {
		panic("connectorFactory cannot be nil")
	}
	if approver == nil {
		panic("approver cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	if dbManager == nil {
		panic("dbManager cannot be nil")
	}

	svc := &LoadService{
		connectorFactory: connectorFactory,
		approver:         approver,
		logger:           logger,
		dbManager:        dbManager,
	}
	svc.mgmtConnector = svc.defaultMgmtConnector
	return svc
}

func (s *LoadService) defaultMgmtConnector(ctx context.Context, connConfig *orderlens.ConnectionConfig, dbName string) (orderlens.DBConnection, func(), error) {
	mgmtConfig := *connConfig
	mgmtConfig.Database = dbName

	connector, err := s.connectorFactory(&mgmtConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("create connector: %w", err)
	}

	pool, err := connector.Connect(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to maintenance database: %w", err)
	}

	return db.NewPoolAdapter(pool), pool.Close, nil
}

// Load executes the load stage and returns the number of rows loaded.
func (s *LoadService) Load(ctx context.Context, config orderlens.LoadConfig) (int64, error) {
	connConfig, err := s.validateAndParseConfig(config)
	if err != nil {
		return 0, err
	}

	orders, err := s.readInput(config.InputPath)
	if err != nil {
		return 0, err
	}
	s.logger.Verbose("Parsed %d orders from %s", len(orders), config.InputPath)

	if err := s.ensureDatabaseExists(ctx, connConfig, config); err != nil {
		return 0, err
	}

	targetConfig := *connConfig
	targetConfig.Database = config.DatabaseName

	connector, err := s.connectorFactory(&targetConfig)
	if err != nil {
		return 0, fmt.Errorf("create connector: %w", err)
	}
	pool, err := connector.Connect(ctx)
	if err != nil {
		return 0, fmt.Errorf("connect to database %q: %w", config.DatabaseName, err)
	}
	defer pool.Close()

	st := store.New(pool)

	if err := s.approveReplacement(ctx, st, config); err != nil {
		return 0, err
	}

	loaded, err := st.Replace(ctx, orders)
	if err != nil {
		return 0, err
	}
	if loaded != int64(len(orders)) {
		return 0, fmt.Errorf("loaded %d of %d rows: %w", loaded, len(orders), orderlens.ErrExecutionFailed)
	}

	s.logger.Info("✓ Loaded %d orders into %s", loaded, config.DatabaseName)
	return loaded, nil
}

func (s *LoadService) validateAndParseConfig(config orderlens.LoadConfig) (*orderlens.ConnectionConfig, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	s.logger.Verbose("Starting load into database %q", config.DatabaseName)

	connConfig, err := db.ParseConnectionString(config.ConnectionString)
	if err != nil {
		return nil, fmt.Errorf("invalid connection string: %w: %w", orderlens.ErrInvalidConfig, err)
	}

	connConfig.AuthMethod = config.AuthMethod
	connConfig.AWSRegion = config.AWSRegion
	connConfig.GoogleInstance = config.GoogleInstance
	connConfig.AzureTenantID = config.AzureTenantID
	connConfig.AzureClientID = config.AzureClientID
	connConfig.AzureClientSecret = config.AzureClientSecret

	return connConfig, nil
}

func (s *LoadService) readInput(path string) ([]order.Order, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("input file %q: %w", path, orderlens.ErrInputNotFound)
		}
		return nil, fmt.Errorf("open input file: %w", err)
	}
	defer f.Close()

	orders, err := order.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return orders, nil
}

func (s *LoadService) ensureDatabaseExists(ctx context.Context, connConfig *orderlens.ConnectionConfig, config orderlens.LoadConfig) error {
	maintenanceDB := config.MaintenanceDatabase
	if maintenanceDB == "" {
		maintenanceDB = orderlens.DefaultManagementDB
	}

	conn, cleanup, err := s.mgmtConnector(ctx, connConfig, maintenanceDB)
	if err != nil {
		return err
	}
	defer cleanup()

	exists, err := s.dbManager.Exists(ctx, conn, config.DatabaseName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	s.logger.Verbose("Database %q does not exist, creating it", config.DatabaseName)
	if err := s.dbManager.Create(ctx, conn, config.DatabaseName); err != nil {
		return err
	}
	s.logger.Info("✓ Created database %q", config.DatabaseName)
	return nil
}

// approveReplacement gates the destructive path: replacing an orders table
// that already holds rows requires approval unless the table is absent or
// empty.
func (s *LoadService) approveReplacement(ctx context.Context, st *store.Store, config orderlens.LoadConfig) error {
	exists, err := st.TableExists(ctx)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}

	count, err := st.Count(ctx)
	if err != nil {
		return err
	}
	if count == 0 {
		return nil
	}

	approved, err := s.approver.RequestApproval(ctx, config.DatabaseName, count)
	if err != nil {
		return fmt.Errorf("approval failed: %w", err)
	}
	if !approved {
		return fmt.Errorf("replacing %d existing rows in %q: %w",
			count, config.DatabaseName, orderlens.ErrApprovalDenied)
	}
	return nil
}
