package types

import "time"

// Roles accepted by the portal. The middleware trusts the role claim from the
// access token.
const (
	RolCiudadano     = "ciudadano"
	RolFuncionario   = "funcionario"
	RolInspector     = "inspector"
	RolAdministrador = "administrador"
)

type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Email        string `gorm:"uniqueIndex;not null;column:email" json:"email"`
	PasswordHash string `gorm:"not null;column:password_hash" json:"-"`

	TipoUsuario string `gorm:"not null;default:ciudadano;column:tipo_usuario" json:"tipo_usuario"`
	TipoPersona string `gorm:"column:tipo_persona" json:"tipo_persona"`

	Nombres         string `gorm:"column:nombres" json:"nombres"`
	ApellidoPaterno string `gorm:"column:apellido_paterno" json:"apellido_paterno"`
	ApellidoMaterno string `gorm:"column:apellido_materno" json:"apellido_materno"`
	DNI             string `gorm:"column:dni;index" json:"dni"`
	RUC             string `gorm:"column:ruc" json:"ruc,omitempty"`
	Telefono        string `gorm:"column:telefono" json:"telefono"`
	Direccion       string `gorm:"column:direccion" json:"direccion"`
	Distrito        string `gorm:"column:distrito" json:"distrito"`

	// Staff-only fields.
	Cargo string `gorm:"column:cargo" json:"cargo,omitempty"`
	Area  string `gorm:"column:area" json:"area,omitempty"`

	IsActive   bool `gorm:"default:true;column:is_active" json:"is_active"`
	IsVerified bool `gorm:"default:false;column:is_verified" json:"is_verified"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string {
	return "usuarios"
}

// EsFuncionario reports whether the user may enter the back office.
func (u *User) EsFuncionario() bool {
	switch u.TipoUsuario {
	case RolFuncionario, RolInspector, RolAdministrador:
		return true
	}
	return false
}
