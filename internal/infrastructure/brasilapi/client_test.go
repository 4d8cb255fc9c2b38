package brasilapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/consulta-cnpj/internal/domain"
	"github.com/jhoicas/consulta-cnpj/internal/infrastructure/brasilapi"
)

const sampleBody = `{
  "cnpj": "11222333000181",
  "razao_social": "ACME COMERCIO LTDA",
  "nome_fantasia": "ACME",
  "descricao_situacao_cadastral": "ATIVA",
  "data_inicio_atividade": "2005-03-14",
  "cnae_fiscal": 6201501,
  "cnae_fiscal_descricao": "Desenvolvimento de programas de computador sob encomenda",
  "cnaes_secundarios": [
    {"codigo": 6204000, "descricao": "Consultoria em tecnologia da informação"},
    {"codigo": 0, "descricao": ""}
  ],
  "natureza_juridica": "Sociedade Empresária Limitada",
  "capital_social": 150000.5,
  "email": null,
  "ddd_telefone_1": "1133334444",
  "descricao_tipo_de_logradouro": "RUA",
  "logradouro": "DAS FLORES",
  "numero": "100",
  "complemento": "",
  "bairro": "CENTRO",
  "municipio": "SAO PAULO",
  "uf": "SP",
  "cep": "01001000",
  "opcao_pelo_simples": null,
  "opcao_pelo_mei": false,
  "regime_tributario": [
    {"ano": 2021, "forma_de_tributacao": "LUCRO REAL"},
    {"ano": "2023", "forma_de_tributacao": "LUCRO PRESUMIDO"},
    {"ano": null, "forma_de_tributacao": "IMUNE"}
  ]
}`

func newServer(t *testing.T, status int, body string) (*httptest.Server, *[]string) {
	t.Helper()
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &paths
}

func TestFetch_MapeaRegistro(t *testing.T) {
	srv, paths := newServer(t, http.StatusOK, sampleBody)
	c := brasilapi.NewClient(srv.URL+"/api/cnpj/v1", time.Second, nil)

	rec, err := c.Fetch(context.Background(), "11222333000181")
	require.NoError(t, err)

	assert.Equal(t, []string{"/api/cnpj/v1/11222333000181"}, *paths)
	assert.Equal(t, "11222333000181", rec.CNPJ)
	assert.Equal(t, "ACME COMERCIO LTDA", rec.LegalName)
	assert.Equal(t, "ATIVA", rec.Status)
	assert.Equal(t, "6201501", rec.PrimaryActivity.Code)
	require.Len(t, rec.SecondaryActivity, 1, "el CNAE vacío {0, \"\"} se descarta")
	assert.Equal(t, "6204000", rec.SecondaryActivity[0].Code)
	require.True(t, rec.ShareCapital.Valid)
	assert.Equal(t, "150000.5", rec.ShareCapital.Decimal.String())
	assert.Equal(t, "", rec.Email)
	assert.False(t, rec.SimplesOption)
	assert.False(t, rec.MEIOption)
	assert.Equal(t, "SP", rec.Address.State)

	require.Len(t, rec.RegimeHistory, 3)
	require.NotNil(t, rec.RegimeHistory[0].Year)
	assert.Equal(t, 2021, *rec.RegimeHistory[0].Year)
	require.NotNil(t, rec.RegimeHistory[1].Year)
	assert.Equal(t, 2023, *rec.RegimeHistory[1].Year)
	assert.Nil(t, rec.RegimeHistory[2].Year)
}

func TestFetch_NoEncontrado(t *testing.T) {
	srv, _ := newServer(t, http.StatusNotFound, `{"message":"CNPJ 11222333000181 não encontrado."}`)
	c := brasilapi.NewClient(srv.URL, time.Second, nil)

	_, err := c.Fetch(context.Background(), "11222333000181")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, domain.LookupNotFound, domain.LookupKind(err))
}

func TestFetch_ErrorServidor(t *testing.T) {
	srv, _ := newServer(t, http.StatusBadGateway, `oops`)
	c := brasilapi.NewClient(srv.URL, time.Second, nil)

	_, err := c.Fetch(context.Background(), "11222333000181")
	assert.ErrorIs(t, err, domain.ErrUnavailable)
	assert.Equal(t, domain.LookupUnavailable, domain.LookupKind(err))
}

func TestFetch_RespuestaMalformada(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `<html>manutenção</html>`)
	c := brasilapi.NewClient(srv.URL, time.Second, nil)

	_, err := c.Fetch(context.Background(), "11222333000181")
	assert.Equal(t, domain.LookupMalformed, domain.LookupKind(err))
	assert.ErrorIs(t, err, domain.ErrUnavailable)
}

func TestFetch_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(srv.Close)
	c := brasilapi.NewClient(srv.URL, 50*time.Millisecond, nil)

	_, err := c.Fetch(context.Background(), "11222333000181")
	require.Error(t, err)
	assert.Equal(t, domain.LookupUnavailable, domain.LookupKind(err))
}

func TestFetch_ServidorCaido(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, sampleBody)
	url := srv.URL
	srv.Close()
	c := brasilapi.NewClient(url, time.Second, nil)

	_, err := c.Fetch(context.Background(), "11222333000181")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "unavailable"))
}
