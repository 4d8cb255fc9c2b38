package lookup_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/consulta-cnpj/internal/application/lookup"
	"github.com/jhoicas/consulta-cnpj/internal/domain"
	"github.com/jhoicas/consulta-cnpj/internal/domain/entity"
	"github.com/jhoicas/consulta-cnpj/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes de los puertos
// ──────────────────────────────────────────────────────────────────────────────

const (
	hqCNPJ     = "11222333000181"
	branchCNPJ = "11222333000505"
)

type fakeRegistry struct {
	records map[string]*entity.RegistryRecord
	errs    map[string]error
	calls   []string
}

func (f *fakeRegistry) Fetch(_ context.Context, id string) (*entity.RegistryRecord, error) {
	f.calls = append(f.calls, id)
	if err, ok := f.errs[id]; ok {
		return nil, err
	}
	if r, ok := f.records[id]; ok {
		return r, nil
	}
	return nil, domain.NewLookupError(domain.LookupNotFound, "fake", id, nil)
}

type fakeRegistrations struct {
	regs []entity.StateRegistration
	err  error
}

func (f *fakeRegistrations) FetchRegistrations(context.Context, string) ([]entity.StateRegistration, error) {
	return f.regs, f.err
}

type fakeLogs struct {
	mu      sync.Mutex
	entries []*entity.LookupLog
	err     error
}

func (f *fakeLogs) Create(_ context.Context, l *entity.LookupLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, l)
	return f.err
}

func (f *fakeLogs) List(_ context.Context, limit, offset int) ([]*entity.LookupLog, error) {
	return f.entries, nil
}

func (f *fakeLogs) ListByRoot(_ context.Context, root string, limit, offset int) ([]*entity.LookupLog, error) {
	var out []*entity.LookupLog
	for _, e := range f.entries {
		if len(e.CNPJ) >= 8 && e.CNPJ[:8] == root {
			out = append(out, e)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

type fakeMetrics struct {
	outcomes  []string
	fallbacks int
}

func (m *fakeMetrics) ObserveLookup(outcome string, _ time.Duration) {
	m.outcomes = append(m.outcomes, outcome)
}
func (m *fakeMetrics) HeadquartersFallback() { m.fallbacks++ }

func fixedClock() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }

func year(y int) *int { return &y }

func newUC(reg *fakeRegistry, regs *fakeRegistrations, logs *fakeLogs, m *fakeMetrics) *lookup.LookupUseCase {
	var sr repository.StateRegistrationGateway
	if regs != nil {
		sr = regs
	}
	var lr repository.LookupLogRepository
	if logs != nil {
		lr = logs
	}
	var mr lookup.Metrics
	if m != nil {
		mr = m
	}
	return lookup.NewLookupUseCase(reg, sr, lr, mr, nil).WithClock(fixedClock)
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación
// ──────────────────────────────────────────────────────────────────────────────

func TestExecute_LongitudInvalida(t *testing.T) {
	reg := &fakeRegistry{}
	logs := &fakeLogs{}
	_, err := newUC(reg, nil, logs, nil).Execute(context.Background(), "11.222.333/0001")

	assert.ErrorIs(t, err, domain.ErrInvalidCNPJ)
	assert.Empty(t, reg.calls, "no debe consultar el registro con entrada inválida")
	require.Len(t, logs.entries, 1)
	assert.Equal(t, entity.LookupOutcomeInvalid, logs.entries[0].Outcome)
}

func TestExecute_EntradaLargaSeTruncaEnHistorico(t *testing.T) {
	logs := &fakeLogs{}
	raw := "1122233300018111222333000181" // 28 dígitos
	_, err := newUC(&fakeRegistry{}, nil, logs, nil).Execute(context.Background(), raw)

	assert.ErrorIs(t, err, domain.ErrInvalidCNPJ)
	require.Len(t, logs.entries, 1)
	assert.Len(t, logs.entries[0].CNPJ, entity.LookupLogCNPJMaxLen)
	assert.Equal(t, raw[:entity.LookupLogCNPJMaxLen], logs.entries[0].CNPJ)
	assert.Equal(t, entity.LookupOutcomeInvalid, logs.entries[0].Outcome)
}

func TestExecute_DigitosVerificadoresInvalidos(t *testing.T) {
	reg := &fakeRegistry{}
	_, err := newUC(reg, nil, nil, nil).Execute(context.Background(), "11222333000182")
	assert.ErrorIs(t, err, domain.ErrInvalidCNPJ)
	assert.Empty(t, reg.calls)
}

// ──────────────────────────────────────────────────────────────────────────────
// Matriz
// ──────────────────────────────────────────────────────────────────────────────

func TestExecute_MatrizUnaSolaConsulta(t *testing.T) {
	reg := &fakeRegistry{records: map[string]*entity.RegistryRecord{
		hqCNPJ: {
			CNPJ:          hqCNPJ,
			LegalName:     "ACME LTDA",
			Status:        "ATIVA",
			ShareCapital:  decimal.NewNullDecimal(decimal.RequireFromString("150000.50")),
			RegimeHistory: []entity.RegimeEntry{{Year: year(2020), Form: "Lucro Real"}, {Year: year(2023), Form: "Lucro Presumido"}},
			SecondaryActivity: []entity.Activity{
				{Code: "6201501", Description: "Desenvolvimento de programas"},
			},
		},
	}}
	m := &fakeMetrics{}
	out, err := newUC(reg, nil, nil, m).Execute(context.Background(), "11.222.333/0001-81")
	require.NoError(t, err)

	assert.Equal(t, []string{hqCNPJ}, reg.calls, "matriz: una sola consulta")
	assert.Equal(t, "LUCRO PRESUMIDO", out.Regime)
	assert.Equal(t, "LUCRO_PRESUMIDO", out.RegimeCategory)
	assert.Equal(t, lookup.RegimeSourceQueried, out.RegimeSource)
	assert.Equal(t, "ACTIVE", out.Status)
	assert.Equal(t, "ATIVA", out.StatusText)
	assert.Equal(t, "ACME LTDA", out.DisplayName)
	assert.True(t, out.IsHeadquarters)
	assert.Equal(t, hqCNPJ, out.HeadquartersCNPJ)
	assert.Equal(t, "11.222.333/0001-81", out.CNPJMasked)
	require.NotNil(t, out.ShareCapital)
	assert.Equal(t, "150000.5", out.ShareCapital.String())
	require.Len(t, out.SecondaryActivities, 1)
	assert.Equal(t, "6201501", out.SecondaryActivities[0].Code)
	assert.False(t, out.StateRegistrationsAvailable)
	assert.Equal(t, []string{entity.LookupOutcomeOK}, m.outcomes)
}

func TestExecute_BaixadaMarcaNombre(t *testing.T) {
	reg := &fakeRegistry{records: map[string]*entity.RegistryRecord{
		hqCNPJ: {CNPJ: hqCNPJ, LegalName: "ACME LTDA", Status: "BAIXADA"},
	}}
	out, err := newUC(reg, nil, nil, nil).Execute(context.Background(), hqCNPJ)
	require.NoError(t, err)
	assert.Equal(t, "DEREGISTERED", out.Status)
	assert.Equal(t, "ACME LTDA - (BAIXADO)", out.DisplayName)
	assert.Equal(t, "ACME LTDA", out.LegalName)
}

// ──────────────────────────────────────────────────────────────────────────────
// Filial
// ──────────────────────────────────────────────────────────────────────────────

// Filial 0005 sin histórico; la matriz es MEI → el régimen resuelto es MEI.
func TestExecute_FilialUsaRegimenDeLaMatriz(t *testing.T) {
	reg := &fakeRegistry{records: map[string]*entity.RegistryRecord{
		branchCNPJ: {CNPJ: branchCNPJ, LegalName: "ACME LTDA", Status: "ATIVA"},
		hqCNPJ:     {CNPJ: hqCNPJ, LegalName: "ACME LTDA", MEIOption: true},
	}}
	logs := &fakeLogs{}
	out, err := newUC(reg, nil, logs, nil).Execute(context.Background(), branchCNPJ)
	require.NoError(t, err)

	assert.Equal(t, []string{branchCNPJ, hqCNPJ}, reg.calls, "filial: consulta la filial y luego la matriz")
	assert.Equal(t, "MEI", out.Regime)
	assert.Equal(t, lookup.RegimeSourceHeadquarters, out.RegimeSource)
	assert.False(t, out.IsHeadquarters)
	assert.Equal(t, hqCNPJ, out.HeadquartersCNPJ)
	assert.False(t, out.MEIOption, "los campos pasan del registro consultado, no de la matriz")

	require.Len(t, logs.entries, 1)
	assert.Equal(t, hqCNPJ, logs.entries[0].Headquarters)
	assert.Equal(t, "MEI", logs.entries[0].Regime)
	assert.NotEmpty(t, logs.entries[0].ID)
}

func TestExecute_FallaMatrizNoEsFatal(t *testing.T) {
	reg := &fakeRegistry{
		records: map[string]*entity.RegistryRecord{
			branchCNPJ: {CNPJ: branchCNPJ, SimplesOption: true},
		},
		errs: map[string]error{
			hqCNPJ: domain.NewLookupError(domain.LookupUnavailable, "fake", hqCNPJ, errors.New("timeout")),
		},
	}
	m := &fakeMetrics{}
	out, err := newUC(reg, nil, nil, m).Execute(context.Background(), branchCNPJ)
	require.NoError(t, err)
	assert.Equal(t, "SIMPLES NACIONAL", out.Regime)
	assert.Equal(t, lookup.RegimeSourceQueried, out.RegimeSource)
	assert.True(t, out.HeadquartersLookupFail)
	assert.Equal(t, 1, m.fallbacks)
}

func TestExecute_MatrizSinIdentificadorUsaFilial(t *testing.T) {
	reg := &fakeRegistry{records: map[string]*entity.RegistryRecord{
		branchCNPJ: {CNPJ: branchCNPJ},
		hqCNPJ:     {MEIOption: true},
	}}
	out, err := newUC(reg, nil, nil, nil).Execute(context.Background(), branchCNPJ)
	require.NoError(t, err)
	assert.Equal(t, "N/A", out.Regime)
	assert.Equal(t, lookup.RegimeSourceQueried, out.RegimeSource)
}

// ──────────────────────────────────────────────────────────────────────────────
// Errores del registro
// ──────────────────────────────────────────────────────────────────────────────

func TestExecute_NoEncontrado(t *testing.T) {
	reg := &fakeRegistry{}
	logs := &fakeLogs{}
	_, err := newUC(reg, nil, logs, nil).Execute(context.Background(), hqCNPJ)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	require.Len(t, logs.entries, 1)
	assert.Equal(t, entity.LookupOutcomeNotFound, logs.entries[0].Outcome)
}

func TestExecute_NoDisponible(t *testing.T) {
	reg := &fakeRegistry{errs: map[string]error{
		hqCNPJ: domain.NewLookupError(domain.LookupMalformed, "fake", hqCNPJ, errors.New("json")),
	}}
	logs := &fakeLogs{}
	_, err := newUC(reg, nil, logs, nil).Execute(context.Background(), hqCNPJ)
	assert.ErrorIs(t, err, domain.ErrUnavailable)
	assert.Equal(t, entity.LookupOutcomeUnavailable, logs.entries[0].Outcome)
}

func TestExecute_FalloHistoricoNoAfectaConsulta(t *testing.T) {
	reg := &fakeRegistry{records: map[string]*entity.RegistryRecord{hqCNPJ: {CNPJ: hqCNPJ}}}
	logs := &fakeLogs{err: errors.New("db caída")}
	_, err := newUC(reg, nil, logs, nil).Execute(context.Background(), hqCNPJ)
	assert.NoError(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Inscripciones estaduales
// ──────────────────────────────────────────────────────────────────────────────

func TestExecute_InscripcionesEstaduales(t *testing.T) {
	reg := &fakeRegistry{records: map[string]*entity.RegistryRecord{hqCNPJ: {CNPJ: hqCNPJ}}}
	regs := &fakeRegistrations{regs: []entity.StateRegistration{
		{State: "SP", Number: "110042490114", Status: "Sem restrição", Type: "IE Normal", Enabled: true},
	}}
	out, err := newUC(reg, regs, nil, nil).Execute(context.Background(), hqCNPJ)
	require.NoError(t, err)
	assert.True(t, out.StateRegistrationsAvailable)
	require.Len(t, out.StateRegistrations, 1)
	assert.Equal(t, "SP", out.StateRegistrations[0].State)
}

func TestExecute_FalloInscripcionesNoEsFatal(t *testing.T) {
	reg := &fakeRegistry{records: map[string]*entity.RegistryRecord{hqCNPJ: {CNPJ: hqCNPJ}}}
	regs := &fakeRegistrations{err: errors.New("503")}
	out, err := newUC(reg, regs, nil, nil).Execute(context.Background(), hqCNPJ)
	require.NoError(t, err)
	assert.False(t, out.StateRegistrationsAvailable)
	assert.Empty(t, out.StateRegistrations)
}

// ──────────────────────────────────────────────────────────────────────────────
// Histórico
// ──────────────────────────────────────────────────────────────────────────────

func TestHistory_ListByCompany(t *testing.T) {
	logs := &fakeLogs{entries: []*entity.LookupLog{
		{ID: "1", CNPJ: hqCNPJ, Outcome: entity.LookupOutcomeOK},
		{ID: "2", CNPJ: branchCNPJ, Outcome: entity.LookupOutcomeOK},
		{ID: "3", CNPJ: "99888777000100", Outcome: entity.LookupOutcomeNotFound},
	}}
	uc := lookup.NewHistoryUseCase(logs)

	out, err := uc.ListByCompany(context.Background(), "11.222.333/0005-05", 10, 0)
	require.NoError(t, err)
	assert.Len(t, out.Items, 2)

	out, err = uc.ListByCompany(context.Background(), "123", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, out.Items)

	second, err := uc.ListByCompany(context.Background(), hqCNPJ, 1, 1)
	require.NoError(t, err)
	require.Len(t, second.Items, 1)
	assert.Equal(t, "2", second.Items[0].ID, "la segunda página empieza en el offset")
	assert.Equal(t, 1, second.Page.Offset)

	all, err := uc.List(context.Background(), 20, 0)
	require.NoError(t, err)
	assert.Len(t, all.Items, 3)
	assert.Equal(t, 20, all.Page.Limit)
}
