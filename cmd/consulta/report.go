package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jhoicas/consulta-cnpj/internal/application/dto"
	"github.com/jhoicas/consulta-cnpj/internal/domain"
)

// describe traduce el error de la consulta a un mensaje para el usuario final.
func describe(err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidCNPJ):
		return fmt.Errorf("CNPJ inválido, digite 14 números (%w)", err)
	case errors.Is(err, domain.ErrNotFound):
		return errors.New("CNPJ não encontrado no registro")
	case errors.Is(err, domain.ErrUnavailable):
		return fmt.Errorf("registro indisponível, tente novamente: %w", err)
	}
	return err
}

func writeReport(w io.Writer, r *dto.CompanyReport) {
	fmt.Fprintln(w, r.DisplayName)
	fmt.Fprintf(w, "Regime Tributário: %s", r.Regime)
	if r.RegimeSource == "headquarters" {
		fmt.Fprintf(w, " (matriz %s)", r.HeadquartersCNPJ)
	}
	fmt.Fprintln(w)
	if r.HeadquartersLookupFail {
		fmt.Fprintln(w, "Aviso: matriz indisponível, regime resolvido com os dados da filial")
	}

	section(w, "Dados da Empresa")
	field(w, "Nome Fantasia", r.TradeName)
	field(w, "CNPJ", r.CNPJMasked)
	field(w, "Situação Cadastral", r.Status)
	field(w, "Data Início Atividade", r.ActivityStartDate)
	field(w, "CNAE Fiscal", fmt.Sprintf("%s (%s)", orNA(r.PrimaryActivity.Description), orNA(r.PrimaryActivity.Code)))
	field(w, "Natureza Jurídica", r.LegalNature)
	capital := ""
	if r.ShareCapital != nil {
		capital = "R$ " + r.ShareCapital.StringFixed(2)
	}
	field(w, "Capital Social", capital)
	field(w, "Email", r.Email)
	field(w, "Telefone", r.Phone)
	field(w, "Opção Simples", simNao(r.SimplesOption))
	field(w, "Opção MEI", simNao(r.MEIOption))

	section(w, "Endereço")
	a := r.Address
	fmt.Fprintf(w, "%s, %s\n", strings.TrimSpace(a.StreetType+" "+orNA(a.Street)), orNA(a.Number))
	fmt.Fprintf(w, "%s - %s/%s\n", orNA(a.District), orNA(a.City), orNA(a.State))
	fmt.Fprintf(w, "CEP: %s\n", orNA(a.ZipCode))

	section(w, "CNAEs Secundários")
	if len(r.SecondaryActivities) == 0 {
		fmt.Fprintln(w, "Nenhum CNAE secundário encontrado para este CNPJ.")
	}
	for _, c := range r.SecondaryActivities {
		fmt.Fprintf(w, "- %s - %s\n", orNA(c.Code), orNA(c.Description))
	}

	section(w, "Inscrições Estaduais")
	switch {
	case !r.StateRegistrationsAvailable:
		fmt.Fprintln(w, "Consulta indisponível.")
	case len(r.StateRegistrations) == 0:
		fmt.Fprintln(w, "Nenhuma inscrição estadual encontrada.")
	}
	for _, ie := range r.StateRegistrations {
		fmt.Fprintf(w, "- %s %s: %s (%s)\n", ie.State, ie.Number, orNA(ie.Status), orNA(ie.Type))
	}
}

func section(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n%s\n", title, strings.Repeat("-", len([]rune(title))))
}

func field(w io.Writer, label, value string) {
	fmt.Fprintf(w, "%s: %s\n", label, orNA(value))
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

func simNao(b bool) string {
	if b {
		return "Sim"
	}
	return "Não"
}
