// Package cnpja consulta las inscripciones estaduales (IE) en la API abierta de CNPJá.
package cnpja

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jhoicas/consulta-cnpj/internal/domain"
	"github.com/jhoicas/consulta-cnpj/internal/domain/entity"
	"github.com/jhoicas/consulta-cnpj/internal/domain/repository"
	"github.com/jhoicas/consulta-cnpj/pkg/logger"
)

var _ repository.StateRegistrationGateway = (*Client)(nil)

const (
	DefaultBaseURL = "https://open.cnpja.com/office/"
	DefaultTimeout = 15 * time.Second

	source = "cnpja"
)

// Client adaptador de StateRegistrationGateway sobre open.cnpja.com.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

// NewClient construye el adaptador. baseURL vacío usa DefaultBaseURL.
func NewClient(baseURL string, timeout time.Duration, log *logger.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Client{baseURL: baseURL, httpClient: &http.Client{Timeout: timeout}, log: log}
}

type officeResponse struct {
	Registrations []registrationResponse `json:"registrations"`
}

type registrationResponse struct {
	Number  string    `json:"number"`
	State   string    `json:"state"`
	Enabled bool      `json:"enabled"`
	Status  textField `json:"status"`
	Type    textField `json:"type"`
}

type textField struct {
	Text string `json:"text"`
}

// FetchRegistrations devuelve las IE del establecimiento; lista vacía si no tiene.
func (c *Client) FetchRegistrations(ctx context.Context, cnpj string) ([]entity.StateRegistration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+cnpj, nil)
	if err != nil {
		return nil, domain.NewLookupError(domain.LookupUnavailable, source, cnpj, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.NewLookupError(domain.LookupUnavailable, source, cnpj, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, domain.NewLookupError(domain.LookupNotFound, source, cnpj, nil)
	default:
		return nil, domain.NewLookupError(domain.LookupUnavailable, source, cnpj, fmt.Errorf("status HTTP %d", resp.StatusCode))
	}

	var payload officeResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 2<<20)).Decode(&payload); err != nil {
		return nil, domain.NewLookupError(domain.LookupMalformed, source, cnpj, fmt.Errorf("decodificar JSON: %w", err))
	}

	out := make([]entity.StateRegistration, 0, len(payload.Registrations))
	for _, r := range payload.Registrations {
		out = append(out, entity.StateRegistration{
			State:   r.State,
			Number:  r.Number,
			Status:  r.Status.Text,
			Type:    r.Type.Text,
			Enabled: r.Enabled,
		})
	}
	c.log.Debug().Str("cnpj", cnpj).Int("inscripciones", len(out)).Msg("cnpja: respuesta")
	return out, nil
}
