// token emite un JWT para consumir la API de reconciliación cuando JWT_SECRET está configurado.
//
// Uso: JWT_SECRET=... go run ./cmd/token --role auditor [--user <uuid>] [--minutes 60]
package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/pflag"

	"github.com/jhoicas/Inventario-reconciler/pkg/config"
	"github.com/jhoicas/Inventario-reconciler/pkg/jwt"
)

func main() {
	fs := pflag.NewFlagSet("token", pflag.ExitOnError)
	role := fs.String("role", jwt.RoleAuditor, "rol del token: admin o auditor")
	user := fs.String("user", "", "identificador del usuario; vacío = UUID nuevo")
	minutes := fs.Int("minutes", 0, "vigencia en minutos; 0 = JWT_EXPIRATION_MINUTES")
	_ = fs.Parse(os.Args[1:])

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(2)
	}
	if !cfg.JWT.Enabled() {
		fmt.Fprintln(os.Stderr, "Error: JWT_SECRET no configurado")
		os.Exit(1)
	}
	if *role != jwt.RoleAdmin && *role != jwt.RoleAuditor {
		fmt.Fprintf(os.Stderr, "Error: rol desconocido %q\n", *role)
		os.Exit(2)
	}
	if *user == "" {
		*user = uuid.NewString()
	}
	if *minutes <= 0 {
		*minutes = cfg.JWT.Expiration
	}

	tok, err := jwt.Generate(cfg.JWT.Secret, *user, *role, cfg.JWT.Issuer, *minutes)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	fmt.Println(tok)
}
