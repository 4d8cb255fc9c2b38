package brasilapi

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

// Verificar en tiempo de compilación que Client implementa RegistryGateway.
var _ repository.RegistryGateway = (*Client)(nil)

const (
	// DefaultBaseURL endpoint público de CNPJ de BrasilAPI.
	DefaultBaseURL = "https://brasilapi.com.br/api/cnpj/v1/"
	// DefaultTimeout mismo timeout de red que la herramienta original.
	DefaultTimeout = 15 * time.Second

	source       = "brasilapi"
	maxBodyBytes = 2 << 20
)

// Client adaptador que implementa RegistryGateway sobre la API REST de BrasilAPI.
// Usa net/http de la librería estándar.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

// NewClient construye el adaptador. baseURL vacío usa DefaultBaseURL; timeout <= 0 usa DefaultTimeout.
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
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// Fetch consulta un CNPJ de 14 dígitos.
// 400/404 → NotFound; red, timeout, 429 y demás status → Unavailable; JSON inválido → Malformed.
func (c *Client) Fetch(ctx context.Context, cnpj string) (*entity.RegistryRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+cnpj, nil)
	if err != nil {
		return nil, domain.NewLookupError(domain.LookupUnavailable, source, cnpj, fmt.Errorf("crear request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			err = fmt.Errorf("timeout o cancelación: %w", ctx.Err())
		}
		return nil, domain.NewLookupError(domain.LookupUnavailable, source, cnpj, err)
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("cnpj", cnpj).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("brasilapi: respuesta")

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusBadRequest:
		return nil, domain.NewLookupError(domain.LookupNotFound, source, cnpj, nil)
	default:
		return nil, domain.NewLookupError(domain.LookupUnavailable, source, cnpj,
			fmt.Errorf("status HTTP %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, domain.NewLookupError(domain.LookupUnavailable, source, cnpj, fmt.Errorf("leer respuesta: %w", err))
	}
	var payload companyResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, domain.NewLookupError(domain.LookupMalformed, source, cnpj, fmt.Errorf("decodificar JSON: %w", err))
	}
	return toEntity(&payload, time.Now()), nil
}

func toEntity(p *companyResponse, fetchedAt time.Time) *entity.RegistryRecord {
	r := &entity.RegistryRecord{
		CNPJ:              p.CNPJ.String(),
		LegalName:         p.RazaoSocial.String(),
		TradeName:         p.NomeFantasia.String(),
		Status:            p.SituacaoCadastral.String(),
		ActivityStartDate: p.DataInicioAtividade.String(),
		PrimaryActivity: entity.Activity{
			Code:        p.CNAEFiscal.String(),
			Description: p.CNAEFiscalDescricao.String(),
		},
		LegalNature:   p.NaturezaJuridica.String(),
		ShareCapital:  p.CapitalSocial,
		Email:         p.Email.String(),
		Phone:         p.Telefone.String(),
		SimplesOption: p.OpcaoPeloSimples != nil && *p.OpcaoPeloSimples,
		MEIOption:     p.OpcaoPeloMEI != nil && *p.OpcaoPeloMEI,
		Address: entity.Address{
			StreetType: p.TipoLogradouro.String(),
			Street:     p.Logradouro.String(),
			Number:     p.Numero.String(),
			Complement: p.Complemento.String(),
			District:   p.Bairro.String(),
			City:       p.Municipio.String(),
			State:      p.UF.String(),
			ZipCode:    p.CEP.String(),
		},
		FetchedAt: fetchedAt,
	}
	for _, c := range p.CNAEsSecundarios {
		// BrasilAPI devuelve {codigo: 0, descricao: ""} cuando no hay CNAE secundario.
		if (c.Codigo == "" || c.Codigo == "0") && c.Descricao == "" {
			continue
		}
		r.SecondaryActivity = append(r.SecondaryActivity, entity.Activity{
			Code:        c.Codigo.String(),
			Description: c.Descricao.String(),
		})
	}
	for _, rt := range p.RegimeTributario {
		r.RegimeHistory = append(r.RegimeHistory, entity.RegimeEntry{
			Year: rt.year(),
			Form: rt.FormaTributacao.String(),
		})
	}
	return r
}
