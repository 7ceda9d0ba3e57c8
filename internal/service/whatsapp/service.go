package whatsapp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/market/internal/config"
	"github.com/mamadbah2/market/internal/domain/models"
	client "github.com/mamadbah2/market/pkg/clients/whatsapp"
)

// ErrMissingRecipient indicates an outbound message had no destination.
var ErrMissingRecipient = errors.New("missing recipient")

// MetaWhatsAppService is the production implementation backed by WhatsApp Cloud API.
type MetaWhatsAppService struct {
	cfg    config.WhatsAppConfig
	client client.Client
	logger *zap.Logger
}

// NewMetaWhatsAppService wires a new service instance.
func NewMetaWhatsAppService(cfg config.WhatsAppConfig, client client.Client, logger *zap.Logger) *MetaWhatsAppService {
	svc := &MetaWhatsAppService{
		cfg:    cfg,
		client: client,
		logger: logger,
	}
	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}
	return svc
}

// SendOutbound sends req.Message, split over several messages when it is too long.
func (s *MetaWhatsAppService) SendOutbound(ctx context.Context, req models.OutboundMessageRequest) error {
	if req.To == "" {
		return ErrMissingRecipient
	}

	chunks := client.SplitBody(req.Message, client.MaxBodyLength)
	for i, chunk := range chunks {
		ctxWithTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
		resp, err := s.client.SendTextMessage(ctxWithTimeout, client.SendTextMessageRequest{
			To:   req.To,
			Body: chunk,
		})
		cancel()
		if err != nil {
			return fmt.Errorf("send part %d/%d: %w", i+1, len(chunks), err)
		}

		messageID := ""
		if resp != nil && len(resp.Messages) > 0 {
			messageID = resp.Messages[0].ID
		}
		s.logger.Debug("outbound message sent", zap.String("to", req.To), zap.Int("part", i+1), zap.String("message_id", messageID))
	}

	return nil
}

// DeliverReport sends a report summary to the configured report recipient.
func (s *MetaWhatsAppService) DeliverReport(ctx context.Context, summary string) error {
	return s.SendOutbound(ctx, models.OutboundMessageRequest{To: s.cfg.ReportTo, Message: summary})
}
