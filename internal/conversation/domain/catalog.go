package domain

import "strings"

// Catalog is the fixed, ordered list of services the business offers.
// Selection is by 1-based index.
var Catalog = []string{
	"Apertura de automóvil",
	"Apertura de caja fuerte",
	"Apertura de candado",
	"Apertura de motocicleta",
	"Apertura de puerta residencial",
	"Cambio de clave de automóvil",
	"Cambio de clave de motocicleta",
	"Cambio de clave residencial",
	"Duplicado de llave",
	"Elaboración de llaves",
	"Instalación de alarma",
	"Instalación de chapa",
	"Reparación general",
}

// ServiceLabel returns the catalog entry for a 1-based index.
func ServiceLabel(index int) (string, bool) {
	if index < 1 || index > len(Catalog) {
		return "", false
	}
	return Catalog[index-1], true
}

// Cities the business serves, in canonical casing.
var Cities = []string{"Bucaramanga", "Piedecuesta", "Floridablanca"}

// MatchCity resolves input to a canonical city name, case-insensitively.
func MatchCity(input string) (string, bool) {
	trimmed := strings.TrimSpace(input)
	for _, city := range Cities {
		if strings.EqualFold(trimmed, city) {
			return city, true
		}
	}
	return "", false
}

// PaymentMethods the business accepts.
var PaymentMethods = []string{"efectivo", "nequi"}

// MatchPaymentMethod resolves input to a canonical payment method.
func MatchPaymentMethod(input string) (string, bool) {
	trimmed := strings.ToLower(strings.TrimSpace(input))
	for _, method := range PaymentMethods {
		if trimmed == method {
			return method, true
		}
	}
	return "", false
}

// Global keywords that override the current state.
const (
	KeywordCancel  = "salir"
	KeywordRestart = "reiniciar"
	KeywordConfirm = "confirmar"
	KeywordCorrect = "corregir"
)

// Correction field names as the user types them.
const (
	CorrectionName    = "nombre"
	CorrectionCity    = "ciudad"
	CorrectionAddress = "direccion"
	CorrectionService = "servicio"
	CorrectionPayment = "pago"
)

// CorrectionFields lists the correctable field names in prompt order.
var CorrectionFields = []string{
	CorrectionName,
	CorrectionCity,
	CorrectionAddress,
	CorrectionService,
	CorrectionPayment,
}
