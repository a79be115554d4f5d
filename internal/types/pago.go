package types

import (
	"time"

	"gorm.io/datatypes"
)

// Payment status values.
const (
	PagoPendiente   = "pendiente"
	PagoProcesando  = "procesando"
	PagoCompletado  = "completado"
	PagoFallido     = "fallido"
	PagoReembolsado = "reembolsado"
)

// Payment methods accepted by the simulated gateway. Any of these is taken
// at face value and marked completed.
var MetodosPago = []string{"culqi", "niubiz", "pago_efectivo", "transferencia", "yape", "plin"}

// MetodoPagoValido reports whether m is one of the accepted methods.
func MetodoPagoValido(m string) bool {
	for _, v := range MetodosPago {
		if v == m {
			return true
		}
	}
	return false
}

type Pago struct {
	ID uint `gorm:"primaryKey" json:"id"`

	SolicitudID uint       `gorm:"not null;index;column:solicitud_id" json:"solicitud_id"`
	Solicitud   *Solicitud `gorm:"foreignKey:SolicitudID" json:"solicitud,omitempty"`

	CodigoPago string  `gorm:"size:50;uniqueIndex;not null;column:codigo_pago" json:"codigo_pago"`
	Monto      float64 `gorm:"not null;column:monto" json:"monto"`
	Moneda     string  `gorm:"size:3;default:PEN;column:moneda" json:"moneda"`
	MetodoPago string  `gorm:"size:50;not null;column:metodo_pago" json:"metodo_pago"`
	Estado     string  `gorm:"size:50;default:pendiente;column:estado" json:"estado"`

	CodigoTransaccion string         `gorm:"size:100;column:codigo_transaccion" json:"codigo_transaccion,omitempty"`
	FechaTransaccion  *time.Time     `gorm:"column:fecha_transaccion" json:"fecha_transaccion,omitempty"`
	DatosTransaccion  datatypes.JSON `gorm:"column:datos_transaccion" json:"datos_transaccion,omitempty"`

	ComprobanteURL    string `gorm:"size:500;column:comprobante_url" json:"comprobante_url,omitempty"`
	ComprobanteNumero string `gorm:"size:50;column:comprobante_numero" json:"comprobante_numero,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
	CreatedBy uint      `gorm:"not null;column:created_by" json:"created_by"`
}

func (Pago) TableName() string {
	return "pagos"
}
