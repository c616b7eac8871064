package sync

import (
	"context"
	"time"

	"github.com/iudanet/gymkeeper/pkg/api"
)

//go:generate moq -out api_mock.go . APIClient

// APIClient транспорт синхронизации, реализуется *api.Client
type APIClient interface {
	Push(ctx context.Context, req *api.PushRequest) (*api.PushResponse, error)
	Pull(ctx context.Context, since time.Time) (*api.PullResponse, error)
}
