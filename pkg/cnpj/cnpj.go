// Package cnpj implementa el álgebra del CNPJ brasileño: normalización,
// dígitos verificadores módulo 11 y derivación de la matriz a partir de una filial.
//
// Estructura del identificador (14 dígitos):
//
//	[raíz: 8][secuencia de establecimiento: 4][dígitos verificadores: 2]
//
// La secuencia "0001" identifica la matriz; cualquier otro valor es una filial
// que comparte la raíz.
package cnpj

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// Length longitud de un CNPJ normalizado.
	Length = 14
	// BaseLength dígitos sobre los que se calculan los verificadores.
	BaseLength = 12
	// RootLength longitud de la raíz compartida por matriz y filiales.
	RootLength = 8
	// HeadquartersBranch secuencia de establecimiento de la matriz.
	HeadquartersBranch = "0001"
)

var (
	ErrInvalidLength      = errors.New("cnpj: debe tener 14 dígitos")
	ErrInvalidCheckDigits = errors.New("cnpj: dígitos verificadores inválidos")
	ErrInvalidBase        = errors.New("cnpj: la base debe tener 12 dígitos numéricos")
)

// pesos del módulo 11 (Receita Federal). El primero se aplica a los 12 dígitos base,
// el segundo a los 12 base más el primer verificador.
var (
	firstWeights  = [12]int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	secondWeights = [13]int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

// Normalize elimina todo carácter que no sea un dígito decimal ASCII.
// No valida la longitud: "11.222.333/0001-81" -> "11222333000181".
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsValidLength informa si digits tiene exactamente 14 caracteres.
func IsValidLength(digits string) bool {
	return len(digits) == Length
}

// ComputeCheckDigits calcula los dos dígitos verificadores para una base de 12 dígitos.
// Resto < 2 produce 0; en otro caso el dígito es 11 - resto.
func ComputeCheckDigits(base12 string) (string, error) {
	if len(base12) != BaseLength || !allDigits(base12) {
		return "", ErrInvalidBase
	}
	var sum int
	for i := 0; i < BaseLength; i++ {
		sum += int(base12[i]-'0') * firstWeights[i]
	}
	d13 := checkDigit(sum)

	sum = 0
	for i := 0; i < BaseLength; i++ {
		sum += int(base12[i]-'0') * secondWeights[i]
	}
	sum += d13 * secondWeights[BaseLength]
	d14 := checkDigit(sum)

	return string([]byte{byte('0' + d13), byte('0' + d14)}), nil
}

func checkDigit(sum int) int {
	r := sum % 11
	if r < 2 {
		return 0
	}
	return 11 - r
}

// Validate normaliza raw y verifica longitud y dígitos verificadores.
// Devuelve el CNPJ normalizado (solo dígitos) si es válido.
func Validate(raw string) (string, error) {
	digits := Normalize(raw)
	if !IsValidLength(digits) {
		return "", fmt.Errorf("%w: se encontraron %d", ErrInvalidLength, len(digits))
	}
	expected, err := ComputeCheckDigits(digits[:BaseLength])
	if err != nil {
		return "", err
	}
	if digits[BaseLength:] != expected {
		return "", fmt.Errorf("%w: esperado %s, recibido %s", ErrInvalidCheckDigits, expected, digits[BaseLength:])
	}
	return digits, nil
}

// Root devuelve los 8 primeros dígitos, o "" si id no tiene 14 dígitos.
func Root(id string) string {
	if !IsValidLength(id) {
		return ""
	}
	return id[:RootLength]
}

// BranchSequence devuelve los dígitos 9 a 12, o "" si id no tiene 14 dígitos.
func BranchSequence(id string) string {
	if !IsValidLength(id) {
		return ""
	}
	return id[RootLength:BaseLength]
}

// IsHeadquarters informa si id es un CNPJ de 14 dígitos con secuencia "0001".
func IsHeadquarters(id string) bool {
	return BranchSequence(id) == HeadquartersBranch
}

// DeriveHeadquarters devuelve el CNPJ de la matriz correspondiente a id.
// Si id no tiene 14 dígitos, o ya es matriz, se devuelve sin cambios.
func DeriveHeadquarters(id string) string {
	if !IsValidLength(id) || IsHeadquarters(id) {
		return id
	}
	base := id[:RootLength] + HeadquartersBranch
	dv, err := ComputeCheckDigits(base)
	if err != nil {
		return id
	}
	return base + dv
}

// FormatMasked aplica la máscara NN.NNN.NNN/NNNN-NN. Solo para presentación:
// una entrada que no tenga 14 caracteres se devuelve tal cual.
func FormatMasked(id string) string {
	if !IsValidLength(id) {
		return id
	}
	return id[0:2] + "." + id[2:5] + "." + id[5:8] + "/" + id[8:12] + "-" + id[12:14]
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
