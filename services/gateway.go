package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"garagepro-backend/utils"

	"github.com/rs/zerolog"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// MessagingGateway delivers rendered text to a recipient's messaging
// identifier. Implementations own their own timeouts.
type MessagingGateway interface {
	Send(ctx context.Context, recipient, text string) error
}

// LogGateway only logs what it would send. Used in development.
type LogGateway struct {
	Logger zerolog.Logger
}

func (g LogGateway) Send(ctx context.Context, recipient, text string) error {
	g.Logger.Info().Str("recipient", recipient).Int("length", len(text)).Msg("send reminder (log gateway)")
	return nil
}

type TwilioConfig struct {
	AccountSID     string
	AuthToken      string
	PhoneNumber    string
	WhatsAppNumber string
}

// TwilioGateway sends through WhatsApp when the identifier is an E.164 number
// and a WhatsApp sender is configured, and through SMS otherwise.
type TwilioGateway struct {
	client *twilio.RestClient
	cfg    TwilioConfig
	logger zerolog.Logger
}

func NewTwilioGateway(cfg TwilioConfig, logger zerolog.Logger) (*TwilioGateway, error) {
	if cfg.AccountSID == "" || cfg.AuthToken == "" {
		return nil, errors.New("twilio credentials not configured")
	}
	if cfg.PhoneNumber == "" && cfg.WhatsAppNumber == "" {
		return nil, errors.New("twilio sender number not configured")
	}
	return &TwilioGateway{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.AccountSID,
			Password: cfg.AuthToken,
		}),
		cfg:    cfg,
		logger: logger,
	}, nil
}

func (g *TwilioGateway) Send(ctx context.Context, recipient, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	to, from := g.route(recipient)
	if from == "" {
		return fmt.Errorf("no twilio sender for recipient %q", recipient)
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(from)
	params.SetBody(text)

	resp, err := g.client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("twilio create message: %w", err)
	}
	if resp.Sid != nil {
		g.logger.Debug().Str("sid", *resp.Sid).Msg("twilio message accepted")
	}
	return nil
}

func (g *TwilioGateway) route(recipient string) (to, from string) {
	cleaned := utils.CleanPhone(strings.TrimPrefix(recipient, "whatsapp:"))
	if utils.IsE164(cleaned) && g.cfg.WhatsAppNumber != "" {
		return "whatsapp:" + cleaned, "whatsapp:" + g.cfg.WhatsAppNumber
	}
	return cleaned, g.cfg.PhoneNumber
}
