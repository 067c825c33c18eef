package noop

import (
	"context"

	"go.uber.org/zap"

	"dealerops/internal/email"
	"dealerops/internal/port"
)

type noopSender struct {
	logger *zap.Logger
}

// NewNoopSender creates an IntakeNotifier that only logs the notification.
func NewNoopSender(logger *zap.Logger) port.IntakeNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &noopSender{logger: logger}
}

func (s *noopSender) NotifyBatchCommitted(_ context.Context, notice port.BatchCommittedNotice) error {
	s.logger.Info("[NOOP EMAIL] batch committed",
		zap.String("subject", email.Subject(notice)),
		zap.Strings("vins", notice.VINs),
		zap.String("document_key", notice.DocumentKey),
	)
	return nil
}
