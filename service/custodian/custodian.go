package custodian

import (
	"context"
	"fmt"

	"dsc/core"
	"dsc/pkg/resthttp"

	"github.com/fox-one/pkg/logger"
)

type transferRequest struct {
	TraceID   string `json:"trace_id"`
	UserID    string `json:"user_id"`
	AssetID   string `json:"asset_id"`
	Amount    string `json:"amount"`
	Direction string `json:"direction"`
	Memo      string `json:"memo,omitempty"`
}

type custodianService struct {
	endpoint string
}

// New new custodian api client
func New(cfg core.Custodian) core.ICustodian {
	return &custodianService{endpoint: cfg.EndPoint}
}

// Forward POST {endpoint}/transfers
func (s *custodianService) Forward(ctx context.Context, transfer *core.Transfer) error {
	url := fmt.Sprintf("%s/transfers", s.endpoint)
	logger.FromContext(ctx).Debugln("forward transfer:", transfer.TraceID, url)

	resp, err := resthttp.Request(ctx).SetBody(transferRequest{
		TraceID:   transfer.TraceID,
		UserID:    transfer.UserID,
		AssetID:   transfer.AssetID,
		Amount:    transfer.Amount.String(),
		Direction: transfer.Direction.String(),
		Memo:      transfer.Memo,
	}).Post(url)
	if err != nil {
		return err
	}

	return resthttp.ParseResponse(resp, nil)
}
