package smsprovider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/aurora-energy/kplcgateway/pkg/httpclient"
)

// Provider submits one outbound SMS through the external messaging gateway.
// The inbound leg (provider callbacks) is handled by the webhook API, not here.
type Provider interface {
	Send(ctx context.Context, from string, to string, text string) (res Response, err error)
}

type Config struct {
	URL     string        `mapstructure:"url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type Request struct {
	From string `json:"from"`
	To   string `json:"to"`
	Text string `json:"text"`
}

type Response struct {
	MessageID string `json:"message_id"`
	Provider  string `json:"provider"`
	Status    string `json:"status"`
}

type SMSProvider struct {
	cfg    Config
	client httpclient.HTTPClient
}

func NewSMSProvider(cfg Config, client httpclient.HTTPClient) Provider {
	return &SMSProvider{cfg: cfg, client: client}
}

func (s *SMSProvider) Send(ctx context.Context, from string, to string, text string) (Response, error) {
	body, err := json.Marshal(Request{From: from, To: to, Text: text})
	if err != nil {
		return Response{}, errors.New(ErrorCodeServerError)
	}

	headers := map[string]string{"Content-Type": "application/json"}
	if s.cfg.APIKey != "" {
		headers["Authorization"] = "Bearer " + s.cfg.APIKey
	}

	resp, err := s.client.Post(ctx, s.cfg.URL, bytes.NewReader(body), headers)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return Response{}, errors.New(ErrorCodeTimeout)
		}

		return Response{}, errors.New(ErrorCodeNetworkError)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		switch resp.StatusCode {
		case 400:
			return Response{}, errors.New(ErrorCodeInvalidNumber)
		case 500, 502, 503, 504:
			return Response{}, errors.New(ErrorCodeServerError)
		default:
			return Response{}, errors.New(ErrorCodeServerError)
		}
	}

	var res Response
	if err = json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return Response{}, errors.New(ErrorCodeServerError)
	}

	return res, nil
}
