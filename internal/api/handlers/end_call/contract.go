package end_call

import (
	"context"

	callSession "github.com/Arunkino/MindHaven-Backend/internal/usecase/call_session"
)

type CallSessionUseCase interface {
	RecordCallEnd(ctx context.Context, req *callSession.EndRequest) (*callSession.EndResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
