package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/Yamir213/sistema-licencias-ica/internal/app"
	"github.com/Yamir213/sistema-licencias-ica/internal/domain"
	"github.com/Yamir213/sistema-licencias-ica/internal/types"
)

// Crea cuentas de personal municipal (funcionario, inspector, administrador)
// sin pasar por el registro público, que solo emite ciudadanos.
func main() {
	var email, nombre, password, rol string
	flag.StringVar(&email, "email", "", "email de la cuenta")
	flag.StringVar(&nombre, "nombre", "", "nombre completo")
	flag.StringVar(&password, "password", "", "contraseña (mínimo 8 caracteres)")
	flag.StringVar(&rol, "rol", types.RolAdministrador, "rol: funcionario, inspector o administrador")
	flag.Parse()

	if email == "" || password == "" {
		fmt.Println("uso: crear_admin -email ... -password ... [-nombre ...] [-rol ...]")
		os.Exit(1)
	}
	switch rol {
	case types.RolFuncionario, types.RolInspector, types.RolAdministrador:
	default:
		fmt.Printf("rol desconocido: %s\n", rol)
		os.Exit(1)
	}

	application, err := app.New()
	if err != nil {
		fmt.Printf("init app: %v\n", err)
		os.Exit(1)
	}
	defer application.Close()

	user := &types.User{
		Email:       email,
		Nombres:     nombre,
		TipoUsuario: rol,
	}
	created, err := application.Services.Auth.Register(context.Background(), user, password)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			fmt.Printf("el email %s ya está registrado\n", email)
		} else {
			fmt.Printf("crear cuenta: %v\n", err)
		}
		os.Exit(1)
	}

	fmt.Printf("cuenta creada id=%d rol=%s email=%s\n", created.ID, created.TipoUsuario, created.Email)
}
