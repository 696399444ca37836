package domain

import (
	"fmt"
	"strings"
)

// User-facing reply texts. The channel speaks Spanish; these are the exact
// strings sent back through the gateway.
const (
	MsgWelcome = "¡Bienvenido al servicio de cerrajería! Para comenzar, por favor dime tu nombre completo."

	MsgEmptyName = "Por favor, dime tu nombre completo."

	MsgInvalidCity = "Ciudad no válida. Por favor, elige entre Bucaramanga, Piedecuesta o Floridablanca."

	MsgAskAddress = "Perfecto. Ahora, por favor, indícame la dirección completa (barrio, calle, número)."

	MsgEmptyAddress = "La dirección no puede estar vacía. Por favor, indícame la dirección completa."

	MsgServiceNotNumeric = "Respuesta no válida. Por favor, responde solo con el número del servicio."

	MsgAskPayment = "¿Cómo prefieres pagar? (Efectivo o Nequi)"

	MsgInvalidPayment = "Método de pago no válido. Por favor, escribe 'Efectivo' o 'Nequi'."

	MsgConfirmed = "¡Servicio confirmado! Un cerrajero se pondrá en contacto contigo en breve."

	MsgCommitFailed = "Hubo un error al guardar tu solicitud. Por favor, intenta de nuevo más tarde."

	MsgCancelled = "Tu solicitud ha sido cancelada. Gracias."

	MsgConfirmOptions = "Opción no válida. Escribe 'confirmar', 'corregir' o 'salir'."

	MsgAskCorrection = "¿Qué dato deseas corregir? (nombre, ciudad, direccion, servicio, pago)"

	MsgInvalidCorrection = "Dato no válido para corregir. Elige entre: nombre, ciudad, direccion, servicio, pago."

	MsgCorrectName = "Por favor, dime el nombre correcto."

	MsgCorrectCity = "¿Cuál es la ciudad correcta? (Bucaramanga, Piedecuesta o Floridablanca)"

	MsgCorrectAddress = "Por favor, indícame la dirección correcta."

	MsgSessionReset = "Lo sentimos, tu sesión se reinició. Envía cualquier mensaje para comenzar de nuevo."

	MsgStorageUnavailable = "Estamos teniendo problemas técnicos. Por favor, intenta de nuevo en unos minutos."
)

// MsgAskCity greets the user by name and asks for the city.
func MsgAskCity(name string) string {
	return fmt.Sprintf("Gracias, %s. ¿En qué ciudad te encuentras? (Bucaramanga, Piedecuesta o Floridablanca)", name)
}

// MsgInvalidServiceIndex rejects an out-of-range catalog selection.
func MsgInvalidServiceIndex() string {
	return fmt.Sprintf("Opción no válida. Por favor, elige un número entre 1 y %d.", len(Catalog))
}

// MsgServiceList renders the numbered service catalog prompt.
func MsgServiceList() string {
	var b strings.Builder
	b.WriteString("¿Qué tipo de servicio de cerrajería necesitas?\n\n")
	for i, service := range Catalog {
		fmt.Fprintf(&b, "%d. %s\n", i+1, service)
	}
	b.WriteString("\nResponde solo con el número del servicio que necesitas.")
	return b.String()
}

// MsgSummary renders the collected fields and the confirmation options.
func MsgSummary(f Fields) string {
	label, _ := ServiceLabel(f.ServiceType)
	var b strings.Builder
	b.WriteString("----- RESUMEN DE TU SOLICITUD -----\n\n")
	fmt.Fprintf(&b, "Nombre: %s\n", f.Name)
	fmt.Fprintf(&b, "Ciudad: %s\n", f.City)
	fmt.Fprintf(&b, "Dirección: %s\n", f.Address)
	fmt.Fprintf(&b, "Servicio: %s\n", label)
	fmt.Fprintf(&b, "Método de pago: %s\n\n", f.PaymentMethod)
	b.WriteString("Escribe 'confirmar' para guardar, 'corregir' para cambiar algún dato, o 'salir' para cancelar.")
	return b.String()
}
