package join_call

import (
	"context"

	callSession "github.com/Arunkino/MindHaven-Backend/internal/usecase/call_session"
)

type CallSessionUseCase interface {
	RecordJoin(ctx context.Context, req *callSession.JoinRequest) (*callSession.JoinResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
