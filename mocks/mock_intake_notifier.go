package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"dealerops/internal/port"
)

// MockIntakeNotifier is a mock implementation of port.IntakeNotifier.
type MockIntakeNotifier struct {
	mock.Mock
}

func (m *MockIntakeNotifier) NotifyBatchCommitted(ctx context.Context, notice port.BatchCommittedNotice) error {
	args := m.Called(ctx, notice)
	return args.Error(0)
}
