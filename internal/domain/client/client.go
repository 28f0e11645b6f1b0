package client

import (
	"regexp"
	"strings"
	"time"

	"github.com/contractportal/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Password cost for bcrypt
const bcryptCost = 12

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Client represents a portal account that owns contracts.
// It is the aggregate root for client-related operations.
type Client struct {
	shared.BaseEntity
	Name         string
	Email        string
	PasswordHash string
	Phone        string
	Address      string
	CompanyName  string
	TaxCode      string
	LastLoginAt  *time.Time
}

// NewClient creates a new client with required fields
func NewClient(name, email, password string) (*Client, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	return &Client{
		BaseEntity:   shared.NewBaseEntity(),
		Name:         strings.TrimSpace(name),
		Email:        NormalizeEmail(email),
		PasswordHash: passwordHash,
	}, nil
}

// SetPassword replaces the client's password
func (c *Client) SetPassword(password string) error {
	if err := validatePassword(password); err != nil {
		return err
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	c.PasswordHash = passwordHash
	c.UpdatedAt = time.Now()
	return nil
}

// VerifyPassword checks a plaintext password against the stored hash
func (c *Client) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password))
	return err == nil
}

// SetPhone sets the client's phone number
func (c *Client) SetPhone(phone string) error {
	if phone != "" && len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone cannot exceed 50 characters")
	}

	c.Phone = strings.TrimSpace(phone)
	c.UpdatedAt = time.Now()
	return nil
}

// SetAddress sets the client's address
func (c *Client) SetAddress(address string) {
	c.Address = strings.TrimSpace(address)
	c.UpdatedAt = time.Now()
}

// SetCompany sets the client's company name and tax code
func (c *Client) SetCompany(companyName, taxCode string) error {
	if len(companyName) > 200 {
		return shared.NewDomainError("INVALID_COMPANY_NAME", "Company name cannot exceed 200 characters")
	}
	if len(taxCode) > 50 {
		return shared.NewDomainError("INVALID_TAX_CODE", "Tax code cannot exceed 50 characters")
	}

	c.CompanyName = strings.TrimSpace(companyName)
	c.TaxCode = strings.TrimSpace(taxCode)
	c.UpdatedAt = time.Now()
	return nil
}

// RecordLogin records a successful login timestamp
func (c *Client) RecordLogin() {
	now := time.Now()
	c.LastLoginAt = &now
}

// ValidateEmail validates an email address
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Email format is invalid")
	}
	return nil
}

// NormalizeEmail lowercases and trims an email address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Name cannot exceed 200 characters")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 6 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 6 characters")
	}
	if len(password) > 72 {
		// bcrypt truncates input beyond 72 bytes
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 72 characters")
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
