package types

import "time"

// Notification channels.
const (
	CanalEmail   = "email"
	CanalSMS     = "sms"
	CanalSistema = "sistema"
)

// Notificacion is the persisted trail of messages sent (or attempted) to a
// citizen. Delivery itself is best effort and asynchronous.
type Notificacion struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UsuarioID uint  `gorm:"not null;index;column:usuario_id" json:"usuario_id"`
	Usuario   *User `gorm:"foreignKey:UsuarioID" json:"usuario,omitempty"`

	SolicitudID *uint      `gorm:"index;column:solicitud_id" json:"solicitud_id,omitempty"`
	Solicitud   *Solicitud `gorm:"foreignKey:SolicitudID" json:"solicitud,omitempty"`

	Tipo    string `gorm:"size:50;not null;column:tipo" json:"tipo"`
	Canal   string `gorm:"size:20;default:email;column:canal" json:"canal"`
	Asunto  string `gorm:"size:255;column:asunto" json:"asunto"`
	Mensaje string `gorm:"type:text;column:mensaje" json:"mensaje"`

	Enviado     bool       `gorm:"default:false;column:enviado" json:"enviado"`
	FechaEnvio  *time.Time `gorm:"column:fecha_envio" json:"fecha_envio,omitempty"`
	Intentos    int        `gorm:"default:0;column:intentos" json:"intentos"`
	UltimoError string     `gorm:"size:500;column:ultimo_error" json:"ultimo_error,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Notificacion) TableName() string {
	return "notificaciones"
}
