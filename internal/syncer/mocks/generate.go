package mocks

// Mock implementations used by syncer tests
//go:generate mockgen -destination=./mock_warehouse.go -package=mocks "github.com/npsdata/bqfirestoresync/internal/warehouse" Warehouse
//go:generate mockgen -destination=./mock_store.go -package=mocks "github.com/npsdata/bqfirestoresync/internal/docstore" Store
