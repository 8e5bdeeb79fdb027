package sessionstore

import (
	"recruit-portal/models"
)

// Cache кэш сессии одного клиента
type Cache struct {
	store    Provider
	clientID string
}

func NewCache(store Provider, clientID string) *Cache {
	return &Cache{
		store:    store,
		clientID: clientID,
	}
}

func (c *Cache) ClientID() string {
	return c.clientID
}

func (c *Cache) Get(key string) (string, bool, error) {
	return c.store.Get(c.clientID, key)
}

func (c *Cache) Set(key, value string) error {
	return c.store.Set(c.clientID, key, value)
}

func (c *Cache) Delete(keys ...string) error {
	return c.store.Delete(c.clientID, keys...)
}

type Credentials struct {
	AccessToken string
	User        string
	IsAdmin     string
}

// Complete все три значения заполнены и флаг админа выставлен
func (c Credentials) Complete() bool {
	return c.AccessToken != "" && c.User != "" && c.IsAdmin == models.SessionIsAdminValue
}

func (c *Cache) Credentials() (Credentials, error) {
	result := Credentials{}
	var err error
	if result.AccessToken, _, err = c.Get(models.SessionKeyAccessToken); err != nil {
		return Credentials{}, err
	}
	if result.User, _, err = c.Get(models.SessionKeyUser); err != nil {
		return Credentials{}, err
	}
	if result.IsAdmin, _, err = c.Get(models.SessionKeyIsAdmin); err != nil {
		return Credentials{}, err
	}
	return result, nil
}

// SaveCredentials каждое значение заменяется целиком
func (c *Cache) SaveCredentials(accessToken, user string) error {
	if err := c.Set(models.SessionKeyAccessToken, accessToken); err != nil {
		return err
	}
	if err := c.Set(models.SessionKeyUser, user); err != nil {
		return err
	}
	return c.Set(models.SessionKeyIsAdmin, models.SessionIsAdminValue)
}

func (c *Cache) PurgeCredentials() error {
	return c.Delete(models.CredentialKeys()...)
}

func (c *Cache) AccessToken() string {
	token, _, err := c.Get(models.SessionKeyAccessToken)
	if err != nil {
		return ""
	}
	return token
}
