package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Identifier formats are printed on issued documents and embedded in QR
// payloads, so they are reproduced exactly as the portal has always emitted
// them.

// NumeroExpediente builds a case number: EXP-YYYYMMDD-XXXXXXXX where the
// suffix is the first 8 characters of a random UUID, uppercased.
func NumeroExpediente(now time.Time) string {
	return fmt.Sprintf("EXP-%s-%s", now.Format("20060102"), sufijoAleatorio())
}

// NumeroLicencia builds a license number from the application id:
// LIC-YYYYMMDD-000000id.
func NumeroLicencia(now time.Time, solicitudID uint) string {
	return fmt.Sprintf("LIC-%s-%06d", now.Format("20060102"), solicitudID)
}

// CodigoVerificador returns the 8-character uppercase token printed next to
// the license number.
func CodigoVerificador() string {
	return sufijoAleatorio()
}

// CodigoPago builds the receipt reference stamped on the application after a
// successful payment: PAGO-YYYYMMDD-XXXXXXXX.
func CodigoPago(now time.Time) string {
	return fmt.Sprintf("PAGO-%s-%s", now.Format("20060102"), sufijoAleatorio())
}

// NumeroComprobante builds the payment voucher number: B{solicitud:06d}-YYYYMMDD.
func NumeroComprobante(now time.Time, solicitudID uint) string {
	return fmt.Sprintf("B%06d-%s", solicitudID, now.Format("20060102"))
}

func sufijoAleatorio() string {
	return strings.ToUpper(uuid.NewString()[:8])
}
