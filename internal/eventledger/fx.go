package eventledger

import (
	"github.com/Blits-planeet/driftv8.xyz/internal/config"
	"github.com/Blits-planeet/driftv8.xyz/internal/eventledger/domain"
	"github.com/Blits-planeet/driftv8.xyz/internal/eventledger/memory"
	"github.com/Blits-planeet/driftv8.xyz/internal/eventledger/repository"
	"github.com/Blits-planeet/driftv8.xyz/internal/eventledger/service"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("eventledger.service",
	fx.Provide(provideStore),
	fx.Provide(service.New),
)

func provideStore(cfg config.Config, conn *gorm.DB) domain.Store {
	if cfg.LedgerBackend == config.LedgerBackendMemory {
		return memory.Provide()
	}
	return repository.Provide(conn)
}
