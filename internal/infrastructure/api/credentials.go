package api

import (
	"fmt"

	"github.com/jhoicas/tienda-admin/internal/application/ports"
	"github.com/jhoicas/tienda-admin/internal/domain"
	"github.com/jhoicas/tienda-admin/pkg/token"
)

var _ ports.CredentialSource = (*StaticCredential)(nil)

// StaticCredential entrega una credencial bearer fija (la configurada por el
// colaborador de sesión). Antes de entregarla verifica localmente el claim
// exp, para surfacear ErrNoAutorizado sin gastar la llamada de red.
type StaticCredential struct {
	token string
}

// NewStaticCredential construye la fuente de credencial.
func NewStaticCredential(tok string) *StaticCredential {
	return &StaticCredential{token: tok}
}

// Token devuelve la credencial vigente.
func (s *StaticCredential) Token() (string, error) {
	if s.token == "" {
		return "", fmt.Errorf("credencial ausente: %w", domain.ErrNoAutorizado)
	}
	if token.ExpiradoSinVerificar(s.token) {
		return "", fmt.Errorf("credencial expirada: %w", domain.ErrNoAutorizado)
	}
	return s.token, nil
}
