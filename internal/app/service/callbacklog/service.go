package callbacklog

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Divy97/rajawadu/internal/models"
	"github.com/Divy97/rajawadu/pkg/logctx"
	"github.com/Divy97/rajawadu/pkg/tool"
)

// Recorder is the audit sink for gateway callback deliveries.
type Recorder interface {
	Save(ctx context.Context, entry *models.PaymentCallbackLog)
}

type Service struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func New(db *gorm.DB, log *zap.SugaredLogger) Recorder { return &Service{db: db, log: log} }

// Save asynchronously persists a payment callback log row. Nil input is
// ignored. Failures are logged only; audit logging must never block the
// gateway's fast ack.
func (s *Service) Save(ctx context.Context, entry *models.PaymentCallbackLog) {
	go func() {
		if entry == nil {
			return
		}
		if entry.ID == "" {
			entry.ID = tool.GenerateUUIDV7()
		}
		if err := s.db.Save(entry).Error; err != nil {
			logctx.FromCtx(ctx, s.log).Errorf("failed to save payment callback log: %v", err)
		}
	}()
}

var Module = fx.Options(
	fx.Provide(New),
)
