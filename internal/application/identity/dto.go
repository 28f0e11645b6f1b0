package identity

import (
	"time"

	"github.com/contractportal/backend/internal/domain/client"
	"github.com/contractportal/backend/internal/infrastructure/auth"
)

// RegisterInput carries new client registration data
type RegisterInput struct {
	Name        string
	Email       string
	Password    string
	Phone       string
	Address     string
	CompanyName string
	TaxCode     string
}

// LoginInput carries login credentials
type LoginInput struct {
	Email    string
	Password string
}

// ClientDTO is the client profile as exposed over the API
type ClientDTO struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone,omitempty"`
	Address     string     `json:"address,omitempty"`
	CompanyName string     `json:"company_name,omitempty"`
	TaxCode     string     `json:"tax_code,omitempty"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// LoginOutput is the result of a successful login or registration
type LoginOutput struct {
	Client ClientDTO       `json:"client"`
	Tokens *auth.TokenPair `json:"tokens"`
}

func toClientDTO(c *client.Client) ClientDTO {
	return ClientDTO{
		ID:          c.ID.String(),
		Name:        c.Name,
		Email:       c.Email,
		Phone:       c.Phone,
		Address:     c.Address,
		CompanyName: c.CompanyName,
		TaxCode:     c.TaxCode,
		LastLoginAt: c.LastLoginAt,
		CreatedAt:   c.CreatedAt,
	}
}
