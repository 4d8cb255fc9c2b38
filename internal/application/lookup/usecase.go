package lookup

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/consulta-cnpj/internal/application/dto"
	"github.com/jhoicas/consulta-cnpj/internal/domain"
	"github.com/jhoicas/consulta-cnpj/internal/domain/entity"
	"github.com/jhoicas/consulta-cnpj/internal/domain/regime"
	"github.com/jhoicas/consulta-cnpj/internal/domain/repository"
	"github.com/jhoicas/consulta-cnpj/pkg/cnpj"
	"github.com/jhoicas/consulta-cnpj/pkg/logger"
)

// Origen del régimen en el reporte.
const (
	RegimeSourceHeadquarters = "headquarters"
	RegimeSourceQueried      = "queried"
)

// LookupUseCase orquesta una consulta de CNPJ:
// normalizar → validar → consultar → (si es filial) consultar matriz → resolver régimen → reporte.
// Como máximo dos consultas al registro, secuenciales. Sin estado compartido entre consultas.
type LookupUseCase struct {
	registry      repository.RegistryGateway
	registrations repository.StateRegistrationGateway // opcional
	logs          repository.LookupLogRepository      // opcional
	metrics       Metrics                             // opcional
	log           *logger.Logger
	now           func() time.Time
}

// NewLookupUseCase construye el caso de uso. registrations, logs y metrics pueden ser nil.
func NewLookupUseCase(
	registry repository.RegistryGateway,
	registrations repository.StateRegistrationGateway,
	logs repository.LookupLogRepository,
	metrics Metrics,
	log *logger.Logger,
) *LookupUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &LookupUseCase{
		registry:      registry,
		registrations: registrations,
		logs:          logs,
		metrics:       metrics,
		log:           log,
		now:           time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *LookupUseCase) WithClock(now func() time.Time) *LookupUseCase {
	uc.now = now
	return uc
}

// Execute consulta el CNPJ raw (con o sin máscara) y devuelve el reporte.
// Errores: domain.ErrInvalidCNPJ (validación), *domain.LookupError (NotFound / Unavailable / Malformed).
func (uc *LookupUseCase) Execute(ctx context.Context, raw string) (*dto.CompanyReport, error) {
	start := uc.now()

	id, err := cnpj.Validate(raw)
	if err != nil {
		uc.finish(ctx, start, &entity.LookupLog{CNPJ: loggedDigits(raw), Outcome: entity.LookupOutcomeInvalid})
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidCNPJ, err)
	}

	record, err := uc.registry.Fetch(ctx, id)
	if err != nil {
		outcome := entity.LookupOutcomeUnavailable
		if errors.Is(err, domain.ErrNotFound) {
			outcome = entity.LookupOutcomeNotFound
		}
		uc.log.Warn().Err(err).Str("cnpj", id).Msg("consulta al registro fallida")
		uc.finish(ctx, start, &entity.LookupLog{CNPJ: id, Outcome: outcome})
		return nil, err
	}

	var (
		hq       *entity.RegistryRecord
		hqID     = cnpj.DeriveHeadquarters(id)
		hqFailed bool
	)
	if hqID != id {
		hq, err = uc.registry.Fetch(ctx, hqID)
		if err != nil {
			// La matriz es opcional: se resuelve con el registro de la filial.
			hqFailed = true
			hq = nil
			uc.log.Warn().Err(err).Str("cnpj", id).Str("matriz", hqID).Msg("consulta de la matriz fallida, se usa la filial")
			if uc.metrics != nil {
				uc.metrics.HeadquartersFallback()
			}
		}
	}

	report := buildReport(id, hqID, record, hq, uc.now())
	report.HeadquartersLookupFail = hqFailed

	if uc.registrations != nil {
		regs, err := uc.registrations.FetchRegistrations(ctx, id)
		if err != nil {
			uc.log.Warn().Err(err).Str("cnpj", id).Msg("inscripciones estaduales no disponibles")
		} else {
			report.StateRegistrations = registrationsToDTO(regs)
			report.StateRegistrationsAvailable = true
		}
	}

	logEntry := &entity.LookupLog{
		CNPJ:         id,
		LegalName:    record.LegalName,
		Regime:       report.Regime,
		Status:       report.Status,
		ShareCapital: record.ShareCapital,
		Outcome:      entity.LookupOutcomeOK,
	}
	if hqID != id {
		logEntry.Headquarters = hqID
	}
	uc.finish(ctx, start, logEntry)

	uc.log.Debug().Str("cnpj", id).Str("regime", report.Regime).Str("fuente", report.RegimeSource).Msg("consulta resuelta")
	return report, nil
}

// loggedDigits dígitos de una entrada inválida, acotados al tamaño de la columna del histórico.
func loggedDigits(raw string) string {
	d := cnpj.Normalize(raw)
	if len(d) > entity.LookupLogCNPJMaxLen {
		d = d[:entity.LookupLogCNPJMaxLen]
	}
	return d
}

// finish registra métricas e histórico. Un fallo al guardar no afecta la consulta.
func (uc *LookupUseCase) finish(ctx context.Context, start time.Time, entry *entity.LookupLog) {
	if uc.metrics != nil {
		uc.metrics.ObserveLookup(entry.Outcome, uc.now().Sub(start))
	}
	if uc.logs == nil {
		return
	}
	entry.ID = uuid.New().String()
	entry.CreatedAt = uc.now()
	if err := uc.logs.Create(ctx, entry); err != nil {
		uc.log.Error().Err(err).Str("cnpj", entry.CNPJ).Msg("guardar histórico de consulta")
	}
}

func buildReport(id, hqID string, record, hq *entity.RegistryRecord, now time.Time) *dto.CompanyReport {
	label := regime.ResolveAt(record, hq, now.Year())
	source := RegimeSourceQueried
	if regime.Authoritative(record, hq) != record {
		source = RegimeSourceHeadquarters
	}
	status := regime.NormalizeStatus(record.Status)

	display := record.LegalName
	if status == regime.StatusDeregistered && display != "" {
		display += " - (BAIXADO)"
	}

	report := &dto.CompanyReport{
		CNPJ:             id,
		CNPJMasked:       cnpj.FormatMasked(id),
		IsHeadquarters:   cnpj.IsHeadquarters(id),
		HeadquartersCNPJ: hqID,
		RegimeSource:     source,

		LegalName:   record.LegalName,
		DisplayName: display,
		TradeName:   record.TradeName,

		Regime:         label,
		RegimeCategory: string(regime.CategoryOf(label)),
		Status:         string(status),
		StatusText:     record.Status,

		ActivityStartDate: record.ActivityStartDate,
		PrimaryActivity:   dto.ActivityDTO{Code: record.PrimaryActivity.Code, Description: record.PrimaryActivity.Description},
		LegalNature:       record.LegalNature,
		Email:             record.Email,
		Phone:             record.Phone,
		SimplesOption:     record.SimplesOption,
		MEIOption:         record.MEIOption,
		Address: dto.AddressDTO{
			StreetType: record.Address.StreetType,
			Street:     record.Address.Street,
			Number:     record.Address.Number,
			Complement: record.Address.Complement,
			District:   record.Address.District,
			City:       record.Address.City,
			State:      record.Address.State,
			ZipCode:    record.Address.ZipCode,
		},
		SecondaryActivities: make([]dto.ActivityDTO, 0, len(record.SecondaryActivity)),
		StateRegistrations:  []dto.StateRegistrationDTO{},
		QueriedAt:           now,
	}
	if record.ShareCapital.Valid {
		capital := record.ShareCapital.Decimal
		report.ShareCapital = &capital
	}
	for _, a := range record.SecondaryActivity {
		report.SecondaryActivities = append(report.SecondaryActivities, dto.ActivityDTO{Code: a.Code, Description: a.Description})
	}
	return report
}

func registrationsToDTO(regs []entity.StateRegistration) []dto.StateRegistrationDTO {
	out := make([]dto.StateRegistrationDTO, 0, len(regs))
	for _, r := range regs {
		out = append(out, dto.StateRegistrationDTO{
			State:   r.State,
			Number:  r.Number,
			Status:  r.Status,
			Type:    r.Type,
			Enabled: r.Enabled,
		})
	}
	return out
}
