package models

// ключи локального кэша сессии клиента
const (
	SessionKeyAccessToken = "access_token"
	SessionKeyUser        = "user"
	SessionKeyIsAdmin     = "isAdmin"
	SessionKeyUserEmail   = "userEmail"
)

const SessionIsAdminValue = "true"

// CredentialKeys ключи, которые очищаются при выходе/истечении токена
func CredentialKeys() []string {
	return []string{SessionKeyAccessToken, SessionKeyUser, SessionKeyIsAdmin}
}
