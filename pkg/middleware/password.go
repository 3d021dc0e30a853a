package middleware

import (
	"errors"
	"net/http"

	"github.com/vfg2006/stock-insight-api/internal/usecases/referencing"
	"github.com/vfg2006/stock-insight-api/pkg/apiErrors"
	"github.com/vfg2006/stock-insight-api/pkg/log"
)

// PasswordHeader é o cabeçalho com a senha de confirmação das operações protegidas
const PasswordHeader = "X-Upload-Password"

// passwordField é o campo de formulário alternativo ao cabeçalho
const passwordField = "password"

type PasswordValidator interface {
	ValidatePassword(password string) error
}

// PasswordGate exige a senha de confirmação antes de alterar a tabela de preços
// ou disparar jobs manualmente
func PasswordGate(validator PasswordValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			password := r.Header.Get(PasswordHeader)
			if password == "" {
				password = r.FormValue(passwordField)
			}

			if password == "" {
				apiErrors.WriteError(w, apiErrors.ErrInvalidPassword, "Senha de confirmação obrigatória", nil)
				return
			}

			if err := validator.ValidatePassword(password); err != nil {
				code := apiErrors.ErrInvalidPassword
				var refErr *referencing.ReferenceError
				if errors.As(err, &refErr) {
					code = refErr.Code
				}

				log.ForContext(r.Context()).WithField("path", r.URL.Path).Warn("Senha de confirmação recusada")
				apiErrors.WriteError(w, code, "Senha de confirmação inválida", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
