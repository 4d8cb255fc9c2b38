package brasilapi

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// companyResponse cuerpo de GET /api/cnpj/v1/{cnpj}. Solo los campos que se usan.
type companyResponse struct {
	CNPJ                flexString          `json:"cnpj"`
	RazaoSocial         flexString          `json:"razao_social"`
	NomeFantasia        flexString          `json:"nome_fantasia"`
	SituacaoCadastral   flexString          `json:"descricao_situacao_cadastral"`
	DataInicioAtividade flexString          `json:"data_inicio_atividade"`
	CNAEFiscal          flexString          `json:"cnae_fiscal"`
	CNAEFiscalDescricao flexString          `json:"cnae_fiscal_descricao"`
	CNAEsSecundarios    []cnaeResponse      `json:"cnaes_secundarios"`
	NaturezaJuridica    flexString          `json:"natureza_juridica"`
	CapitalSocial       decimal.NullDecimal `json:"capital_social"`
	Email               flexString          `json:"email"`
	Telefone            flexString          `json:"ddd_telefone_1"`
	TipoLogradouro      flexString          `json:"descricao_tipo_de_logradouro"`
	Logradouro          flexString          `json:"logradouro"`
	Numero              flexString          `json:"numero"`
	Complemento         flexString          `json:"complemento"`
	Bairro              flexString          `json:"bairro"`
	Municipio           flexString          `json:"municipio"`
	UF                  flexString          `json:"uf"`
	CEP                 flexString          `json:"cep"`
	OpcaoPeloSimples    *bool               `json:"opcao_pelo_simples"`
	OpcaoPeloMEI        *bool               `json:"opcao_pelo_mei"`
	RegimeTributario    []regimeResponse    `json:"regime_tributario"`
}

type cnaeResponse struct {
	Codigo    flexString `json:"codigo"`
	Descricao flexString `json:"descricao"`
}

type regimeResponse struct {
	Ano             json.RawMessage `json:"ano"`
	FormaTributacao flexString      `json:"forma_de_tributacao"`
}

// year devuelve el año si "ano" es un entero JSON (o una cadena con un entero).
func (r regimeResponse) year() *int {
	raw := bytes.TrimSpace(r.Ano)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	s := strings.Trim(string(raw), `"`)
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

// flexString acepta string, número o null (la API mezcla tipos entre versiones).
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*f = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(strings.TrimSpace(s))
	default:
		*f = flexString(b)
	}
	return nil
}

func (f flexString) String() string { return string(f) }
